package repository

import (
	"github.com/yukikurage/taskman-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByOwner finds a task by ID scoped to its owning user. A task owned by
// someone else and a task that does not exist both return
// gorm.ErrRecordNotFound.
func (r *GormTaskRepository) FindByOwner(id, ownerID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByOwner lists a user's tasks ordered by creation time descending, with
// ID as the tiebreak so ties resolve to reverse insertion order.
func (r *GormTaskRepository) ListByOwner(ownerID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	err := r.db.
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// DeleteAll removes every task in a single statement, which the database
// serializes against concurrent inserts.
func (r *GormTaskRepository) DeleteAll() (int64, error) {
	res := r.db.Where("1 = 1").Delete(&models.Task{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// CountAll counts every task regardless of owner
func (r *GormTaskRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Task{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
