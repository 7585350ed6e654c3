package repo

import (
	"context"
	"sync"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// MemoryTaskRepo keeps tasks in process memory. Ids come from a counter that
// only grows, so a deleted id is never handed out again.
type MemoryTaskRepo struct {
	mu     sync.RWMutex
	tasks  []model.Task
	lastID int64
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{
		tasks: make([]model.Task, 0),
	}
}

func (r *MemoryTaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return t, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	t.ID = r.lastID
	t.Description = cloneString(t.Description)
	r.tasks = append(r.tasks, t)
	return copyTask(t), nil
}

func (r *MemoryTaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Task{}, ErrorNotFound
	}
	return copyTask(r.tasks[i]), nil
}

func (r *MemoryTaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		out = append(out, copyTask(t))
	}
	return out, nil
}

func (r *MemoryTaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return t, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(t.ID)
	if i < 0 {
		return t, ErrorNotFound
	}
	t.Description = cloneString(t.Description)
	r.tasks[i] = t
	return copyTask(t), nil
}

func (r *MemoryTaskRepo) Delete(ctx context.Context, id int64) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Task{}, ErrorNotFound
	}
	deleted := r.tasks[i]
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return deleted, nil
}

// indexOf expects the caller to hold mu.
func (r *MemoryTaskRepo) indexOf(id int64) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func copyTask(t model.Task) model.Task {
	t.Description = cloneString(t.Description)
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
