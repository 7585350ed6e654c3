package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

const (
	msgNotFound = "Task not found"
	msgInternal = "Internal server error"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Ping(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, map[string]string{"message": h.service.Ping()})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r.Body)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Create(r.Context(), payload)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	h.logger.Debug("task created", zap.Int64("task_id", task.ID))
	respond.JSON(w, r, http.StatusOK, model.NewTaskResponse(task))
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	tasks, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, model.NewTaskResponses(tasks))
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, model.NewTaskResponse(task))
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	payload, err := decodePayload(r.Body)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, model.NewTaskResponse(task))
}

// Delete responds with the removed task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	task, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, model.NewTaskResponse(task))
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, msgNotFound)
	case errors.As(err, &verr):
		respond.Error(w, r, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, repo.ErrorConstraint):
		h.logger.Warn("constraint violation", zap.Error(err))
		respond.Error(w, r, http.StatusUnprocessableEntity, "request violates a storage constraint")
	default:
		h.logger.Error("internal error",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		respond.Error(w, r, http.StatusInternalServerError, msgInternal)
	}
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, service.NewValidationError("id", "value is not a valid integer")
	}
	return id, nil
}

func parseFilter(r *http.Request) (model.TaskFilter, error) {
	var filter model.TaskFilter
	q := r.URL.Query()

	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return filter, service.NewValidationError("completed", "value could not be parsed to a boolean")
		}
		filter.Completed = &completed
	}
	if v := q.Get("priority"); v != "" {
		priority, err := strconv.Atoi(v)
		if err != nil {
			return filter, service.NewValidationError("priority", "value is not a valid integer")
		}
		filter.Priority = &priority
	}
	return filter, nil
}

// decodePayload turns every decoding failure into a ValidationError naming
// the offending field where it is known.
func decodePayload(body io.Reader) (model.TaskPayload, error) {
	var p model.TaskPayload
	dec := json.NewDecoder(body)
	err := dec.Decode(&p)
	if err == nil {
		// тело должно содержать ровно один JSON объект
		if dec.Decode(&struct{}{}) != io.EOF {
			return model.TaskPayload{}, service.NewValidationError("body", "invalid json: trailing data")
		}
		return p, nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return p, service.NewValidationError("body", "field required")
	case errors.Is(err, model.ErrInvalidPriority):
		return p, service.NewValidationError("priority", err.Error())
	case errors.Is(err, model.ErrInvalidDateTime):
		return p, service.NewValidationError("due_date", err.Error())
	case errors.Is(err, model.ErrNullField):
		return p, service.NewValidationError("completed", err.Error())
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return p, service.NewValidationError(field, "expected "+typeErr.Type.String())
	case errors.As(err, &syntaxErr):
		return p, service.NewValidationError("body", "invalid json: "+syntaxErr.Error())
	default:
		return p, service.NewValidationError("body", err.Error())
	}
}
