package corehandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrcore/internal/domain/directory"
	"hrcore/internal/platform/metrics"
	"hrcore/internal/transport/http/api"
	"hrcore/internal/transport/http/middleware"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Directory *directory.Service
	DB        Pinger
	Metrics   *metrics.Collector
}

func NewHandler(dir *directory.Service, db Pinger, collector *metrics.Collector) *Handler {
	return &Handler{Directory: dir, DB: db, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyz)
	r.Get("/metricsz", h.handleMetricsz)
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Get("/{employeeID}", h.handleGetEmployee)
	})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "ok"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if h.DB != nil {
		if err := h.DB.Ping(r.Context()); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database unreachable", requestID)
			return
		}
	}
	api.Success(w, map[string]string{"status": "ready"}, requestID)
}

func (h *Handler) handleMetricsz(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if h.Metrics == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "metrics disabled", requestID)
		return
	}
	api.Success(w, h.Metrics.Snapshot(), requestID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Directory.ListActive(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	emp, err := h.Directory.FindActiveByID(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}
