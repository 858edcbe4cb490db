package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const recordColumns = `
    id, employee_id, work_date, check_in_time, check_out_time, work_hours,
    status, COALESCE(check_in_location, ''), COALESCE(check_out_location, ''),
    created_at, updated_at`

func scanRecord(row pgx.Row) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	if err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.WorkHours, &rec.Status, &rec.CheckInLocation, &rec.CheckOutLocation,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) GetRecord(ctx context.Context, employeeID, workDate string) (*AttendanceRecord, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+`
    FROM attendance_records
    WHERE employee_id = $1 AND work_date = $2
  `, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// CreateCheckIn relies on the (employee_id, work_date) unique index as the
// backstop against two concurrent check-ins for the same day.
func (s *Store) CreateCheckIn(ctx context.Context, rec *AttendanceRecord) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (employee_id, work_date, check_in_time, status, check_in_location)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, rec.EmployeeID, rec.WorkDate, rec.CheckInTime, rec.Status, rec.CheckInLocation).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrAlreadyCheckedIn
		}
		return "", err
	}
	return id, nil
}

func (s *Store) CompleteCheckOut(ctx context.Context, recordID string, checkOut time.Time, workHours float64, status, location string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_records
    SET check_out_time = $1, work_hours = $2, status = $3, check_out_location = $4, updated_at = now()
    WHERE id = $5 AND check_out_time IS NULL
  `, checkOut, workHours, status, location, recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyCheckedOut
	}
	return nil
}

// InsertAbsent creates an absent row only when no record exists for the day,
// so the sweep stays idempotent and never clobbers a check-in.
func (s *Store) InsertAbsent(ctx context.Context, employeeID, workDate string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO attendance_records (employee_id, work_date, status)
    VALUES ($1,$2,$3)
    ON CONFLICT (employee_id, work_date) DO NOTHING
  `, employeeID, workDate, StatusAbsent)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListRecords(ctx context.Context, employeeID, from, to string) ([]AttendanceRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+`
    FROM attendance_records
    WHERE employee_id = $1
      AND ($2 = '' OR work_date >= $2)
      AND ($3 = '' OR work_date <= $3)
    ORDER BY work_date DESC
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
