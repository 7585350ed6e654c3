package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// testTaskRepository runs the behavior every backend must share.
func testTaskRepository(t *testing.T, newRepo func(t *testing.T) TaskRepository) {
	due := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	desc := "Get Tea"

	t.Run("create assigns fresh ids", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		first, err := r.Create(ctx, model.Task{Title: "Get Tea", Description: &desc, Priority: 2, DueDate: due})
		require.NoError(t, err)
		second, err := r.Create(ctx, model.Task{Title: "Get Milk", Priority: 1, DueDate: due})
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, "Get Tea", first.Title)
		require.NotNil(t, first.Description)
		assert.Equal(t, desc, *first.Description)
		assert.Equal(t, 2, first.Priority)
		assert.True(t, due.Equal(first.DueDate))
		assert.False(t, first.Completed)
		assert.Nil(t, second.Description)
	})

	t.Run("get returns created task", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		created, err := r.Create(ctx, model.Task{Title: "Read", Priority: 3, DueDate: due, Completed: true})
		require.NoError(t, err)

		got, err := r.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Priority, got.Priority)
		assert.True(t, created.DueDate.Equal(got.DueDate))
		assert.True(t, got.Completed)

		_, err = r.Get(ctx, created.ID+1000)
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("list filters combine with and", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		empty, err := r.List(ctx, model.TaskFilter{})
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		seed := []model.Task{
			{Title: "a", Priority: 1, DueDate: due, Completed: true},
			{Title: "b", Priority: 2, DueDate: due, Completed: true},
			{Title: "c", Priority: 2, DueDate: due, Completed: false},
			{Title: "d", Priority: 3, DueDate: due, Completed: false},
		}
		for _, s := range seed {
			_, err := r.Create(ctx, s)
			require.NoError(t, err)
		}

		all, err := r.List(ctx, model.TaskFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, titles(all))

		done := true
		completed, err := r.List(ctx, model.TaskFilter{Completed: &done})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, titles(completed))

		med := 2
		both, err := r.List(ctx, model.TaskFilter{Completed: &done, Priority: &med})
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, titles(both))

		byPriority, err := r.List(ctx, model.TaskFilter{Priority: &med})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, titles(byPriority))

		unknown := 9
		none, err := r.List(ctx, model.TaskFilter{Priority: &unknown})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update replaces every field", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		created, err := r.Create(ctx, model.Task{Title: "Old", Description: &desc, Priority: 1, DueDate: due, Completed: true})
		require.NoError(t, err)

		newDue := due.Add(48 * time.Hour)
		updated, err := r.Update(ctx, model.Task{ID: created.ID, Title: "New", Priority: 3, DueDate: newDue})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)

		got, err := r.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
		assert.Nil(t, got.Description)
		assert.Equal(t, 3, got.Priority)
		assert.True(t, newDue.Equal(got.DueDate))
		assert.False(t, got.Completed)

		_, err = r.Update(ctx, model.Task{ID: created.ID + 1000, Title: "x", Priority: 1, DueDate: due})
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("delete returns row once", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		created, err := r.Create(ctx, model.Task{Title: "Gone", Priority: 2, DueDate: due})
		require.NoError(t, err)

		deleted, err := r.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)
		assert.Equal(t, "Gone", deleted.Title)

		_, err = r.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrorNotFound)

		_, err = r.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, ErrorNotFound)

		next, err := r.Create(ctx, model.Task{Title: "Next", Priority: 2, DueDate: due})
		require.NoError(t, err)
		assert.Greater(t, next.ID, created.ID, "ids are never reused")
	})
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}
