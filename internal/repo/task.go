package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

var (
	ErrorNotFound   = errors.New("not found")
	ErrorConstraint = errors.New("constraint violation")
)

const taskColumns = `id, title, description, priority, due_date, completed`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, priority, due_date, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+taskColumns,
		t.Title, t.Description, t.Priority, t.DueDate, t.Completed,
	)
	created, err := scanTask(row)
	if err != nil {
		return t, r.mapError("create task", err)
	}
	return created, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id)
	t, err := scanTask(row)
	if err != nil {
		return t, r.mapError("get task", err)
	}
	return t, nil
}

// List returns tasks in insertion order.
func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE ($1::boolean IS NULL OR completed = $1)
		  AND ($2::integer IS NULL OR priority = $2)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, filter.Completed, filter.Priority)
	if err != nil {
		return nil, r.mapError("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, r.mapError("scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError("list tasks", err)
	}
	return tasks, nil
}

// Update replaces every mutable column of the row identified by t.ID.
func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, due_date = $5, completed = $6
		WHERE id = $1
		RETURNING `+taskColumns,
		t.ID, t.Title, t.Description, t.Priority, t.DueDate, t.Completed,
	)
	updated, err := scanTask(row)
	if err != nil {
		return t, r.mapError("update task", err)
	}
	return updated, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM tasks
		WHERE id = $1
		RETURNING `+taskColumns, id)
	t, err := scanTask(row)
	if err != nil {
		return t, r.mapError("delete task", err)
	}
	return t, nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Completed)
	return t, err
}

func (r *TaskRepo) mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502", "23514": // not_null_violation, check_violation
			return fmt.Errorf("%s: %w: %s", op, ErrorConstraint, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
