package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrcore/internal/domain/attendance"
	"hrcore/internal/domain/directory"
	"hrcore/internal/platform/metrics"
	"hrcore/internal/transport/http/api"
	"hrcore/internal/transport/http/middleware"
	"hrcore/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
	Metrics *metrics.Collector
}

func NewHandler(service *attendance.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
		r.Get("/records/{employeeID}", h.handleListRecords)
		r.Get("/records/{employeeID}/{workDate}", h.handleGetRecord)
		r.Post("/sweep", h.handleSweep)
	})
}

type checkPayload struct {
	EmployeeID string `json:"employeeId"`
	Timestamp  string `json:"timestamp"`
	WorkDate   string `json:"workDate"`
	Location   string `json:"location"`
}

func (p checkPayload) at() (time.Time, error) {
	if p.Timestamp == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, p.Timestamp)
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload checkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	ts, err := payload.at()
	if err != nil {
		v.Add("timestamp", "must be an RFC3339 timestamp")
	}
	if v.Reject(w, requestID) {
		return
	}

	rec, err := h.Service.CheckIn(r.Context(), payload.EmployeeID, ts, payload.Location)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Created(w, rec, requestID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload checkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	ts, err := payload.at()
	if err != nil {
		v.Add("timestamp", "must be an RFC3339 timestamp")
	}
	if v.Reject(w, requestID) {
		return
	}

	rec, err := h.Service.CheckOut(r.Context(), payload.EmployeeID, payload.WorkDate, ts, payload.Location)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rec, err := h.Service.GetRecord(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "workDate"))
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	records, err := h.Service.ListRecords(r.Context(),
		chi.URLParam(r, "employeeID"),
		r.URL.Query().Get("from"),
		r.URL.Query().Get("to"),
	)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, records, requestID)
}

type sweepPayload struct {
	WorkDate string `json:"workDate"`
}

// handleSweep runs the absence sweep synchronously for an explicit work date.
// The scheduled sweep covers the previous day; this exists for backfills.
func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload sweepPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("workDate", payload.WorkDate, "work date is required")
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Service.MarkAbsences(r.Context(), payload.WorkDate)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordSweep(result.Created)
	}
	api.Success(w, result, requestID)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, attendance.ErrRecordNotFound), errors.Is(err, directory.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		api.Fail(w, http.StatusConflict, "already_checked_in", err.Error(), requestID)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		api.Fail(w, http.StatusConflict, "already_checked_out", err.Error(), requestID)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		api.Fail(w, http.StatusConflict, "not_checked_in", err.Error(), requestID)
	case errors.Is(err, attendance.ErrInvalidCheckOut):
		api.Fail(w, http.StatusBadRequest, "invalid_check_out", err.Error(), requestID)
	case errors.Is(err, attendance.ErrInvalidWorkDate):
		api.Fail(w, http.StatusBadRequest, "invalid_work_date", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "attendance operation failed", requestID)
	}
}
