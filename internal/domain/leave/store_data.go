package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const requestColumns = `
    id, employee_id, leave_type_id, start_date, end_date, total_days,
    COALESCE(reason, ''), status, COALESCE(approved_by::text, ''), approved_at,
    COALESCE(rejection_reason, ''), created_at`

func scanRequest(row pgx.Row) (*LeaveRequest, error) {
	var req LeaveRequest
	if err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
		&req.TotalDays, &req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt,
		&req.RejectionReason, &req.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (*LeaveRequest, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *Store) FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeRequestID string) (*LeaveRequest, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE employee_id = $1
      AND status IN ($2, $3)
      AND start_date <= $5
      AND end_date >= $4
      AND ($6 = '' OR id::text <> $6)
    ORDER BY start_date
    LIMIT 1
  `, employeeID, StatusPending, StatusApproved, start, end, excludeRequestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

func (s *Store) CreateRequest(ctx context.Context, req *LeaveRequest) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, total_days, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate, req.TotalDays, req.Reason, req.Status).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListRequests(ctx context.Context, employeeID, status string, limit, offset int) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE ($1 = '' OR employee_id::text = $1)
      AND ($2 = '' OR status = $2)
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, employeeID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// EnsureBalance lazily creates the ledger row seeded from the annual quota.
// The unique index on (employee_id, leave_type_id, year) makes concurrent
// first-touch creation safe.
func (s *Store) EnsureBalance(ctx context.Context, employeeID, leaveTypeID string, year int, allocated float64) (*LeaveBalance, error) {
	if _, err := s.DB.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, leave_type_id, year, total_allocated, used_days, remaining_days)
    VALUES ($1,$2,$3,$4,0,$4)
    ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
  `, employeeID, leaveTypeID, year, allocated); err != nil {
		return nil, err
	}
	return s.GetBalance(ctx, employeeID, leaveTypeID, year)
}

func (s *Store) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var bal LeaveBalance
	if err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, leave_type_id, year, total_allocated, used_days, remaining_days, updated_at
    FROM leave_balances
    WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
  `, employeeID, leaveTypeID, year).Scan(
		&bal.ID, &bal.EmployeeID, &bal.LeaveTypeID, &bal.Year,
		&bal.TotalAllocated, &bal.UsedDays, &bal.RemainingDays, &bal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &bal, nil
}

func (s *Store) ListBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, leave_type_id, year, total_allocated, used_days, remaining_days, updated_at
    FROM leave_balances
    WHERE employee_id = $1 AND ($2 = 0 OR year = $2)
    ORDER BY year DESC, leave_type_id
  `, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []LeaveBalance
	for rows.Next() {
		var bal LeaveBalance
		if err := rows.Scan(
			&bal.ID, &bal.EmployeeID, &bal.LeaveTypeID, &bal.Year,
			&bal.TotalAllocated, &bal.UsedDays, &bal.RemainingDays, &bal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, bal)
	}
	return balances, rows.Err()
}

// ApproveRequest links the status transition and the ledger spend in one
// transaction. The WHERE guards are the storage-level backstop against
// concurrent approvals double-spending the same balance row.
func (s *Store) ApproveRequest(ctx context.Context, req *LeaveRequest, approvedBy string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, approved_by = $2, approved_at = now()
    WHERE id = $3 AND status = $4
  `, StatusApproved, approvedBy, req.ID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}

	tag, err = tx.Exec(ctx, `
    UPDATE leave_balances
    SET used_days = used_days + $1, remaining_days = remaining_days - $1, updated_at = now()
    WHERE employee_id = $2 AND leave_type_id = $3 AND year = $4 AND remaining_days >= $1
  `, req.TotalDays, req.EmployeeID, req.LeaveTypeID, req.StartDate.Year())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientBalance
	}

	return tx.Commit(ctx)
}

func (s *Store) RejectRequest(ctx context.Context, requestID, reason string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, rejection_reason = $2
    WHERE id = $3 AND status = $4
  `, StatusRejected, reason, requestID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

func (s *Store) CancelPendingRequest(ctx context.Context, requestID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1
    WHERE id = $2 AND status = $3
  `, StatusCancelled, requestID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

// CancelApprovedRequest reverses the ledger spend made at approval time,
// transactionally with the status change.
func (s *Store) CancelApprovedRequest(ctx context.Context, req *LeaveRequest) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1
    WHERE id = $2 AND status = $3
  `, StatusCancelled, req.ID, StatusApproved)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}

	tag, err = tx.Exec(ctx, `
    UPDATE leave_balances
    SET used_days = used_days - $1, remaining_days = remaining_days + $1, updated_at = now()
    WHERE employee_id = $2 AND leave_type_id = $3 AND year = $4 AND used_days >= $1
  `, req.TotalDays, req.EmployeeID, req.LeaveTypeID, req.StartDate.Year())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}

	return tx.Commit(ctx)
}
