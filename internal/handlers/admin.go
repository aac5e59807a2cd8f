package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskman-api/internal/errors"
	"github.com/yukikurage/taskman-api/internal/services"
)

// AdminHandler serves the maintenance bulk-delete routes. These are
// unauthenticated by observed behavior, so their registration is gated by
// config rather than middleware.
type AdminHandler struct {
	taskService *services.TaskService
	authService *services.AuthService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(taskService *services.TaskService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		taskService: taskService,
		authService: authService,
	}
}

// DeleteAllTasks removes every task regardless of owner.
func (h *AdminHandler) DeleteAllTasks(c *gin.Context) {
	count, err := h.taskService.DeleteAll()
	if err != nil {
		apierrors.InternalError(c, "Failed to delete tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "All tasks deleted successfully",
		"deleted_count": count,
	})
}

// DeleteAllUsers removes every user together with their tasks and tokens.
func (h *AdminHandler) DeleteAllUsers(c *gin.Context) {
	count, err := h.authService.DeleteAllUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to delete users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "All users deleted successfully",
		"deleted_count": count,
	})
}
