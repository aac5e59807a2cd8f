package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response helpers for the HTTP error taxonomy. Authentication and not-found
// responses carry deliberately generic messages: 401 never says which
// credential was wrong, and 404 does not distinguish "does not exist" from
// "owned by someone else".

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthenticated"
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request body"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// UnprocessableEntity sends a 422 response with a field-to-messages map
func UnprocessableEntity(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fields})
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
