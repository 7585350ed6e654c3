package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	storage Pinger
	logger  *zap.Logger
}

func NewHealthHandler(storage Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{storage: storage, logger: logger}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		h.logger.Error("storage health check failed", zap.Error(err))
		respond.Error(w, r, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
