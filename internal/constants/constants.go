package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyUser is the gin context key holding the authenticated user.
	ContextKeyUser = "current_user"

	MinPasswordLength = 8
	MaxTitleLength    = 255
	MaxEmailLength    = 255

	// TokenByteLength is the number of random bytes in a bearer token.
	TokenByteLength = 24
)
