package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hrcore/internal/domain/directory"
)

// Directory is the read-only lookup collaborator the lifecycle depends on.
type Directory interface {
	FindActiveByID(ctx context.Context, employeeID string) (*directory.Employee, error)
	FindActiveLeaveType(ctx context.Context, leaveTypeID string) (*directory.LeaveType, error)
}

type Service struct {
	store     StoreAPI
	directory Directory
}

func NewService(store StoreAPI, dir Directory) *Service {
	return &Service{store: store, directory: dir}
}

type CreateRequestInput struct {
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

// CreateRequest validates the request and persists it pending. The ledger row
// for (employee, type, start-year) is seeded lazily from the type's annual
// quota; no days are spent until approval.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*LeaveRequest, error) {
	input.StartDate = CalendarDay(input.StartDate)
	input.EndDate = CalendarDay(input.EndDate)

	if _, err := s.directory.FindActiveByID(ctx, input.EmployeeID); err != nil {
		return nil, err
	}
	leaveType, err := s.directory.FindActiveLeaveType(ctx, input.LeaveTypeID)
	if err != nil {
		return nil, err
	}

	days, err := CalculateDays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	check, err := s.ValidateOverlap(ctx, input.EmployeeID, input.StartDate, input.EndDate, "")
	if err != nil {
		return nil, err
	}
	if check.Conflict {
		return nil, fmt.Errorf("%w: %s", ErrOverlap, check.Message)
	}

	balance, err := s.store.EnsureBalance(ctx, input.EmployeeID, input.LeaveTypeID, input.StartDate.Year(), leaveType.AnnualQuota)
	if err != nil {
		return nil, err
	}
	if balance.RemainingDays < days {
		return nil, fmt.Errorf("%w: requested %v days, %v remaining", ErrInsufficientBalance, days, balance.RemainingDays)
	}

	req := &LeaveRequest{
		EmployeeID:  input.EmployeeID,
		LeaveTypeID: input.LeaveTypeID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		TotalDays:   days,
		Reason:      input.Reason,
		Status:      StatusPending,
	}
	id, err := s.store.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id
	return req, nil
}

// ValidateOverlap checks a candidate range against the employee's pending and
// approved requests. Rejected and cancelled requests never block; an update
// can exclude its own prior record via excludeRequestID.
func (s *Service) ValidateOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeRequestID string) (OverlapCheck, error) {
	start, end = CalendarDay(start), CalendarDay(end)
	if end.Before(start) {
		return OverlapCheck{}, ErrInvalidRange
	}
	conflict, err := s.store.FindOverlapping(ctx, employeeID, start, end, excludeRequestID)
	if err != nil {
		return OverlapCheck{}, err
	}
	if conflict == nil {
		return OverlapCheck{}, nil
	}
	return OverlapCheck{
		Conflict: true,
		Message: fmt.Sprintf("dates conflict with %s request %s (%s to %s)",
			conflict.Status, conflict.ID,
			conflict.StartDate.Format("2006-01-02"), conflict.EndDate.Format("2006-01-02")),
	}, nil
}

// ApproveRequest spends the request's days from the start-year ledger row,
// transactionally with the status change.
func (s *Service) ApproveRequest(ctx context.Context, requestID, approvedBy string) (*LeaveRequest, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidState, req.Status)
	}

	if err := s.store.ApproveRequest(ctx, req, approvedBy); err != nil {
		return nil, err
	}
	return s.store.GetRequest(ctx, requestID)
}

func (s *Service) RejectRequest(ctx context.Context, requestID, reason string) (*LeaveRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidState, req.Status)
	}

	if err := s.store.RejectRequest(ctx, requestID, reason); err != nil {
		return nil, err
	}
	return s.store.GetRequest(ctx, requestID)
}

// CancelRequest cancels a pending or approved request owned by employeeID.
// Cancelling an approved request reverses its ledger spend.
func (s *Service) CancelRequest(ctx context.Context, requestID, employeeID string) (*LeaveRequest, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.EmployeeID != employeeID {
		return nil, ErrForbidden
	}

	switch req.Status {
	case StatusPending:
		err = s.store.CancelPendingRequest(ctx, requestID)
	case StatusApproved:
		err = s.store.CancelApprovedRequest(ctx, req)
	default:
		return nil, fmt.Errorf("%w: request is %s", ErrInvalidState, req.Status)
	}
	if err != nil {
		return nil, err
	}
	return s.store.GetRequest(ctx, requestID)
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (*LeaveRequest, error) {
	return s.store.GetRequest(ctx, requestID)
}

func (s *Service) ListRequests(ctx context.Context, employeeID, status string, limit, offset int) ([]LeaveRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListRequests(ctx, employeeID, status, limit, offset)
}

func (s *Service) ListBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	if _, err := s.directory.FindActiveByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.store.ListBalances(ctx, employeeID, year)
}
