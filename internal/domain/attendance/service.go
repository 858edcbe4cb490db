package attendance

import (
	"context"
	"time"

	"hrcore/internal/domain/directory"
)

// Roster is the active-employee lookup the deriver and sweeper depend on.
type Roster interface {
	FindActiveByID(ctx context.Context, employeeID string) (*directory.Employee, error)
	ListActive(ctx context.Context) ([]directory.Employee, error)
}

type Service struct {
	store    StoreAPI
	roster   Roster
	schedule ShiftSchedule
}

func NewService(store StoreAPI, roster Roster, schedule ShiftSchedule) *Service {
	return &Service{store: store, roster: roster, schedule: schedule}
}

func (s *Service) Schedule() ShiftSchedule {
	return s.schedule
}

// CheckIn creates the day's record with a provisional status derived from the
// check-in time alone; hours are unknown until check-out.
func (s *Service) CheckIn(ctx context.Context, employeeID string, ts time.Time, location string) (*AttendanceRecord, error) {
	if _, err := s.roster.FindActiveByID(ctx, employeeID); err != nil {
		return nil, err
	}

	workDate := WorkDate(ts, s.schedule.Location)
	rec := &AttendanceRecord{
		EmployeeID:      employeeID,
		WorkDate:        workDate,
		CheckInTime:     &ts,
		Status:          DetermineStatus(ts, nil, s.schedule),
		CheckInLocation: location,
	}
	id, err := s.store.CreateCheckIn(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return rec, nil
}

// CheckOut finalizes the day's record: computes work hours and re-derives the
// status from both the original check-in time and the new total.
func (s *Service) CheckOut(ctx context.Context, employeeID, workDate string, ts time.Time, location string) (*AttendanceRecord, error) {
	if workDate == "" {
		workDate = WorkDate(ts, s.schedule.Location)
	}

	rec, err := s.store.GetRecord(ctx, employeeID, workDate)
	if err != nil {
		return nil, err
	}
	if rec.CheckInTime == nil {
		return nil, ErrNotCheckedIn
	}
	if rec.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}
	if ts.Before(*rec.CheckInTime) {
		return nil, ErrInvalidCheckOut
	}

	hours := CalculateWorkHours(*rec.CheckInTime, ts)
	status := DetermineStatus(*rec.CheckInTime, &hours, s.schedule)
	if err := s.store.CompleteCheckOut(ctx, rec.ID, ts, hours, status, location); err != nil {
		return nil, err
	}
	return s.store.GetRecord(ctx, employeeID, workDate)
}

// MarkAbsences creates an absent record for every active employee with no
// record for the work date. Idempotent: reruns create nothing new.
func (s *Service) MarkAbsences(ctx context.Context, workDate string) (SweepResult, error) {
	if _, err := time.Parse(WorkDateFormat, workDate); err != nil {
		return SweepResult{}, ErrInvalidWorkDate
	}

	employees, err := s.roster.ListActive(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	created := 0
	for _, emp := range employees {
		inserted, err := s.store.InsertAbsent(ctx, emp.ID, workDate)
		if err != nil {
			return SweepResult{WorkDate: workDate, Created: created}, err
		}
		if inserted {
			created++
		}
	}
	return SweepResult{WorkDate: workDate, Created: created}, nil
}

func (s *Service) GetRecord(ctx context.Context, employeeID, workDate string) (*AttendanceRecord, error) {
	return s.store.GetRecord(ctx, employeeID, workDate)
}

func (s *Service) ListRecords(ctx context.Context, employeeID, from, to string) ([]AttendanceRecord, error) {
	if _, err := s.roster.FindActiveByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.store.ListRecords(ctx, employeeID, from, to)
}
