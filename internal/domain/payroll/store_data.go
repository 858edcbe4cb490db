package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const recordColumns = `
    id, employee_id, payroll_month, base_salary, allowances, bonuses,
    overtime_pay, deductions, net_salary, status, created_at, updated_at`

func scanRecord(row pgx.Row) (*PayrollRecord, error) {
	var rec PayrollRecord
	if err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.BaseSalary, &rec.Allowances,
		&rec.Bonuses, &rec.OvertimePay, &rec.Deductions, &rec.NetSalary,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) GetRecord(ctx context.Context, recordID string) (*PayrollRecord, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+`
    FROM payroll_records
    WHERE id = $1
  `, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// CreateRecord persists the record with its derived net salary in one insert.
// The (employee_id, payroll_month) unique index is the backstop against
// concurrent creation for the same period.
func (s *Store) CreateRecord(ctx context.Context, rec *PayrollRecord) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_records (employee_id, payroll_month, base_salary, allowances, bonuses, overtime_pay, deductions, net_salary, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, rec.EmployeeID, rec.Month, rec.BaseSalary, rec.Allowances, rec.Bonuses,
		rec.OvertimePay, rec.Deductions, rec.NetSalary, rec.Status).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateRecord
		}
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateComponents(ctx context.Context, rec *PayrollRecord) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET base_salary = $1, allowances = $2, bonuses = $3, overtime_pay = $4,
        deductions = $5, net_salary = $6, updated_at = now()
    WHERE id = $7 AND status <> $8
  `, rec.BaseSalary, rec.Allowances, rec.Bonuses, rec.OvertimePay,
		rec.Deductions, rec.NetSalary, rec.ID, StatusPaid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

func (s *Store) ApproveRecord(ctx context.Context, recordID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET status = $1, updated_at = now()
    WHERE id = $2 AND status IN ($3, $1)
  `, StatusApproved, recordID, StatusDraft)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

func (s *Store) MarkPaid(ctx context.Context, recordID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET status = $1, updated_at = now()
    WHERE id = $2 AND status = $3
  `, StatusPaid, recordID, StatusApproved)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

func (s *Store) ListRecords(ctx context.Context, month, employeeID string) ([]PayrollRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+`
    FROM payroll_records
    WHERE ($1 = '' OR payroll_month = $1)
      AND ($2 = '' OR employee_id::text = $2)
    ORDER BY payroll_month DESC, employee_id
  `, month, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PayrollRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
