package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// SQLiteTaskRepo stores tasks through gorm. It is used with the SQLite
// dialector but relies only on portable gorm calls.
type SQLiteTaskRepo struct {
	db *gorm.DB
}

func NewSQLiteTaskRepo(db *gorm.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = 0
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return t, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&t).Error
	if err != nil {
		return t, mapGormError("get task", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}

	tasks := make([]model.Task, 0)
	if err := q.Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update writes every mutable column, zero values included.
func (r *SQLiteTaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", t.ID).
		Select("title", "description", "priority", "due_date", "completed").
		Updates(&t)
	if res.Error != nil {
		return t, fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return t, ErrorNotFound
	}
	return t, nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) (model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&t).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{}, id).Error
	})
	if err != nil {
		return t, mapGormError("delete task", err)
	}
	return t, nil
}

func mapGormError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
