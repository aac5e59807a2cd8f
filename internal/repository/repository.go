package repository

import (
	"github.com/yukikurage/taskman-api/internal/models"
)

// TaskRepository defines the interface for task data access. It holds no
// business rules; ownership and validation live in the service layer.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByOwner finds a task by ID scoped to its owning user
	FindByOwner(id, ownerID uint64) (*models.Task, error)

	// ListByOwner lists a user's tasks, newest first
	ListByOwner(ownerID uint64) ([]models.Task, error)

	// Update persists changes to a task and refreshes its updated_at
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error

	// DeleteAll removes every task regardless of owner and returns the count
	DeleteAll() (int64, error)

	// CountAll counts every task regardless of owner
	CountAll() (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List lists all users
	List() ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// DeleteWithOwnedData deletes a user together with their tasks and tokens
	// within a single transaction.
	DeleteWithOwnedData(id uint64) error

	// DeleteAll removes every user and all owned data, returning the number
	// of users deleted.
	DeleteAll() (int64, error)
}

// TokenRepository defines the interface for bearer token data access
type TokenRepository interface {
	// Create stores a new access token
	Create(token *models.AccessToken) error

	// FindUserByHash resolves a token digest to its owning user
	FindUserByHash(hash string) (*models.User, error)

	// DeleteByHash removes a token by digest; deleting an absent token is
	// not an error.
	DeleteByHash(hash string) error
}
