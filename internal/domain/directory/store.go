package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrcore/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id,
           COALESCE(employee_number, ''),
           first_name, last_name, email,
           COALESCE(base_salary, 0),
           status, start_date, end_date, created_at
    FROM employees
    WHERE id = $1 AND status = $2 AND deleted_at IS NULL
  `, employeeID, EmployeeStatusActive)

	var emp Employee
	if err := row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.BaseSalary, &emp.Status, &emp.StartDate, &emp.EndDate, &emp.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (s *Store) ListActiveEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id,
           COALESCE(employee_number, ''),
           first_name, last_name, email,
           COALESCE(base_salary, 0),
           status, start_date, end_date, created_at
    FROM employees
    WHERE status = $1 AND deleted_at IS NULL
    ORDER BY employee_number, last_name
  `, EmployeeStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(
			&emp.ID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
			&emp.BaseSalary, &emp.Status, &emp.StartDate, &emp.EndDate, &emp.CreatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) FindActiveLeaveType(ctx context.Context, leaveTypeID string) (*LeaveType, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, name, code, annual_quota, is_paid, is_active, created_at
    FROM leave_types
    WHERE id = $1 AND is_active = true
  `, leaveTypeID)

	var lt LeaveType
	if err := row.Scan(&lt.ID, &lt.Name, &lt.Code, &lt.AnnualQuota, &lt.IsPaid, &lt.IsActive, &lt.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeaveTypeNotFound
		}
		return nil, err
	}
	return &lt, nil
}
