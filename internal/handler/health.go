package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/segyhp/debt-ledger/internal/repository"
	"github.com/segyhp/debt-ledger/pkg/response"
)

type HealthHandler struct {
	store   repository.Store
	timeout time.Duration
}

func NewHealthHandler(store repository.Store, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthHandler{
		store:   store,
		timeout: timeout,
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic health check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	response.Success(w, status)
}

// Ready checks that the ledger storage is reachable
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if pinger, ok := h.store.(repository.Pinger); ok {
		if err := pinger.Ping(ctx); err != nil {
			status.Status = "error"
			status.Checks["storage"] = "failed: " + err.Error()
		} else {
			status.Checks["storage"] = "ok"
		}
	} else {
		status.Checks["storage"] = "ok"
	}

	if status.Status == "error" {
		LoggerFromContext(r.Context()).Warn("Readiness check failed", "checks", status.Checks)
		response.ServiceUnavailable(w, "Service not ready", nil)
		return
	}

	response.Success(w, status)
}
