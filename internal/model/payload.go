package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var ErrNullField = errors.New("value must not be null")

// TaskPayload is the client-supplied body for create and update.
// Pointer fields distinguish a missing field from a zero value.
type TaskPayload struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
	DueDate     *DateTime `json:"due_date"`
	Completed   *bool     `json:"completed"`
}

// UnmarshalJSON keeps the missing-field semantics of the pointer fields but
// rejects an explicit null for completed, which only has a default when absent.
func (p *TaskPayload) UnmarshalJSON(data []byte) error {
	type plain TaskPayload
	var aux struct {
		plain
		Completed json.RawMessage `json:"completed"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			typeErr.Field = strings.TrimPrefix(typeErr.Field, "plain.")
		}
		return err
	}
	*p = TaskPayload(aux.plain)
	p.Completed = nil

	if aux.Completed == nil {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(aux.Completed), []byte("null")) {
		return ErrNullField
	}
	var completed bool
	if err := json.Unmarshal(aux.Completed, &completed); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			typeErr.Field = "completed"
		}
		return err
	}
	p.Completed = &completed
	return nil
}

// Record copies a validated payload onto a storage record with the given id.
func (p TaskPayload) Record(id int64) Task {
	t := Task{ID: id}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		desc := *p.Description
		t.Description = &desc
	}
	if p.Priority != nil {
		t.Priority = p.Priority.Int()
	}
	if p.DueDate != nil {
		t.DueDate = normalizeTime(p.DueDate.Time)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// TaskResponse is the representation returned to callers.
type TaskResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    Priority `json:"priority"`
	DueDate     DateTime `json:"due_date"`
	Completed   bool     `json:"completed"`
}

func NewTaskResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    Priority(t.Priority),
		DueDate:     NewDateTime(t.DueDate),
		Completed:   t.Completed,
	}
}

func NewTaskResponses(tasks []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}
