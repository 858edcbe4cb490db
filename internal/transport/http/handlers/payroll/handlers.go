package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrcore/internal/domain/directory"
	"hrcore/internal/domain/payroll"
	"hrcore/internal/platform/metrics"
	"hrcore/internal/transport/http/api"
	"hrcore/internal/transport/http/middleware"
	"hrcore/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Metrics *metrics.Collector
}

func NewHandler(service *payroll.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/records", h.handleListRecords)
		r.Post("/records", h.handleCreateRecord)
		r.Get("/records/{recordID}", h.handleGetRecord)
		r.Put("/records/{recordID}", h.handleUpdateRecord)
		r.Post("/records/{recordID}/approve", h.handleApproveRecord)
		r.Post("/records/{recordID}/pay", h.handleMarkPaid)
		r.Get("/records/{recordID}/payslip", h.handlePayslip)
		r.Post("/generate", h.handleGenerate)
	})
}

type createRecordPayload struct {
	EmployeeID  string  `json:"employeeId"`
	Month       string  `json:"month"`
	BaseSalary  float64 `json:"baseSalary"`
	Allowances  float64 `json:"allowances"`
	Bonuses     float64 `json:"bonuses"`
	OvertimePay float64 `json:"overtimePay"`
	Deductions  float64 `json:"deductions"`
}

func (h *Handler) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createRecordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("month", payload.Month, "payroll month is required")
	if v.Reject(w, requestID) {
		return
	}

	rec, err := h.Service.CreateRecord(r.Context(), payroll.CreateInput{
		EmployeeID:  payload.EmployeeID,
		Month:       payload.Month,
		BaseSalary:  payload.BaseSalary,
		Allowances:  payload.Allowances,
		Bonuses:     payload.Bonuses,
		OvertimePay: payload.OvertimePay,
		Deductions:  payload.Deductions,
	})
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Created(w, rec, requestID)
}

type updateRecordPayload struct {
	BaseSalary  *float64 `json:"baseSalary"`
	Allowances  *float64 `json:"allowances"`
	Bonuses     *float64 `json:"bonuses"`
	OvertimePay *float64 `json:"overtimePay"`
	Deductions  *float64 `json:"deductions"`
}

func (h *Handler) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload updateRecordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	rec, err := h.Service.UpdateRecord(r.Context(), chi.URLParam(r, "recordID"), payroll.UpdateInput{
		BaseSalary:  payload.BaseSalary,
		Allowances:  payload.Allowances,
		Bonuses:     payload.Bonuses,
		OvertimePay: payload.OvertimePay,
		Deductions:  payload.Deductions,
	})
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleApproveRecord(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rec, err := h.Service.ApproveRecord(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rec, err := h.Service.MarkPaid(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	path, err := h.Service.GeneratePayslipPDF(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"path": path}, requestID)
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rec, err := h.Service.GetRecord(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	records, err := h.Service.ListRecords(r.Context(),
		r.URL.Query().Get("month"),
		r.URL.Query().Get("employeeId"),
	)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	api.Success(w, records, requestID)
}

type generatePayload struct {
	Month       string   `json:"month"`
	EmployeeIDs []string `json:"employeeIds"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload generatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("month", payload.Month, "payroll month is required")
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Service.Generate(r.Context(), payload.Month, payload.EmployeeIDs)
	if err != nil {
		h.respondError(w, err, requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordPayrollGenerated(len(result.Created))
	}
	api.Success(w, result, requestID)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, payroll.ErrRecordNotFound), errors.Is(err, directory.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, payroll.ErrDuplicateRecord):
		api.Fail(w, http.StatusConflict, "duplicate_record", err.Error(), requestID)
	case errors.Is(err, payroll.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, payroll.ErrInvalidMonth):
		api.Fail(w, http.StatusBadRequest, "invalid_month", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "payroll operation failed", requestID)
	}
}
