package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskman-api/internal/constants"
	"github.com/yukikurage/taskman-api/internal/models"
	"github.com/yukikurage/taskman-api/internal/repository"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned for tasks that do not exist and for tasks owned
// by another user. Conflating the two keeps other users' records invisible.
var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic. Every operation except DeleteAll
// takes the authenticated principal's user ID explicitly.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task. An empty Status means
// the field was omitted and defaults to pending.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
}

// UpdateTaskInput represents a partial task update. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// ListTasks returns the principal's tasks, newest first. It never fails with
// a domain error; a user without tasks gets an empty list.
func (s *TaskService) ListTasks(ownerID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// CreateTask validates the input and creates a task owned by the principal.
func (s *TaskService) CreateTask(ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	v := newValidationError()

	title := validateTitle(v, input.Title)
	validateStatus(v, input.Status)

	if v.hasErrors() {
		return nil, v
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}

	task := &models.Task{
		UserID:      ownerID,
		Title:       title,
		Description: input.Description,
		Status:      status,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns the task if it exists and belongs to the principal.
func (s *TaskService) GetTask(ownerID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByOwner(taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to a task owned by the principal.
// Fields absent from the input keep their current values.
func (s *TaskService) UpdateTask(ownerID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	v := newValidationError()

	var title string
	if input.Title != nil {
		title = validateTitle(v, *input.Title)
	}
	if input.Status != nil {
		validateStatus(v, *input.Status)
	}

	if v.hasErrors() {
		return nil, v
	}

	if input.Title != nil {
		task.Title = title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil && *input.Status != "" {
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task owned by the principal.
func (s *TaskService) DeleteTask(ownerID, taskID uint64) error {
	task, err := s.GetTask(ownerID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// DeleteAll removes every task regardless of owner and returns the count.
// This is the maintenance hook behind the gated admin route, not a per-user
// operation.
func (s *TaskService) DeleteAll() (int64, error) {
	count, err := s.taskRepo.DeleteAll()
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}

	return count, nil
}

// validateTitle returns the trimmed title, accumulating violations into v.
// Whitespace-only titles count as missing.
func validateTitle(v *ValidationError, title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		v.add("title", "The title field is required.")
		return ""
	}
	if len(trimmed) > constants.MaxTitleLength {
		v.add("title", fmt.Sprintf("The title may not be greater than %d characters.", constants.MaxTitleLength))
	}

	return trimmed
}

// validateStatus accepts the empty string (field omitted) and otherwise
// requires membership in the three-value enumeration. There is no transition
// graph: any status may move to any other.
func validateStatus(v *ValidationError, status models.TaskStatus) {
	if status == "" {
		return
	}
	if !models.ValidTaskStatus(status) {
		v.add("status", "The selected status is invalid.")
	}
}
