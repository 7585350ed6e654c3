package service

import (
	"context"
	"strings"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

const greeting = "Hello from task-tracker!"

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Ping never touches storage.
func (s *TaskService) Ping() string {
	return greeting
}

func (s *TaskService) Create(ctx context.Context, p model.TaskPayload) (model.Task, error) {
	if err := s.validate(p); err != nil { // Валидация модели на корректность введенных данных
		return model.Task{}, err
	}
	return s.repo.Create(ctx, p.Record(0))
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Priority != nil && *filter.Priority <= 0 {
		return nil, NewValidationError("priority", "must be greater than 0")
	}
	return s.repo.List(ctx, filter)
}

// Update replaces all mutable fields. The payload is validated before the
// task is looked up, so an invalid body never reports NotFound.
func (s *TaskService) Update(ctx context.Context, id int64, p model.TaskPayload) (model.Task, error) {
	if err := s.validate(p); err != nil {
		return model.Task{}, err
	}
	return s.repo.Update(ctx, p.Record(id))
}

// Delete returns the removed task as it was before deletion.
func (s *TaskService) Delete(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) validate(p model.TaskPayload) error {
	if p.Title == nil {
		return NewValidationError("title", "field required")
	}
	if strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "must not be empty")
	}
	if p.Priority == nil {
		return NewValidationError("priority", "field required")
	}
	if !p.Priority.Valid() {
		return NewValidationError("priority", model.ErrInvalidPriority.Error())
	}
	if p.DueDate == nil {
		return NewValidationError("due_date", "field required")
	}
	return nil
}
