package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hrcore/internal/domain/directory"
)

type recordKey struct {
	employeeID string
	workDate   string
}

type fakeStore struct {
	records map[recordKey]*AttendanceRecord
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[recordKey]*AttendanceRecord)}
}

func (f *fakeStore) GetRecord(ctx context.Context, employeeID, workDate string) (*AttendanceRecord, error) {
	rec, ok := f.records[recordKey{employeeID, workDate}]
	if !ok {
		return nil, ErrRecordNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) CreateCheckIn(ctx context.Context, rec *AttendanceRecord) (string, error) {
	key := recordKey{rec.EmployeeID, rec.WorkDate}
	if _, ok := f.records[key]; ok {
		return "", ErrAlreadyCheckedIn
	}
	f.nextID++
	stored := *rec
	stored.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[key] = &stored
	return stored.ID, nil
}

func (f *fakeStore) CompleteCheckOut(ctx context.Context, recordID string, checkOut time.Time, workHours float64, status, location string) error {
	for _, rec := range f.records {
		if rec.ID != recordID {
			continue
		}
		if rec.CheckOutTime != nil {
			return ErrAlreadyCheckedOut
		}
		out := checkOut
		hours := workHours
		rec.CheckOutTime = &out
		rec.WorkHours = &hours
		rec.Status = status
		rec.CheckOutLocation = location
		return nil
	}
	return ErrRecordNotFound
}

func (f *fakeStore) InsertAbsent(ctx context.Context, employeeID, workDate string) (bool, error) {
	key := recordKey{employeeID, workDate}
	if _, ok := f.records[key]; ok {
		return false, nil
	}
	f.nextID++
	f.records[key] = &AttendanceRecord{
		ID:         fmt.Sprintf("att-%d", f.nextID),
		EmployeeID: employeeID,
		WorkDate:   workDate,
		Status:     StatusAbsent,
	}
	return true, nil
}

func (f *fakeStore) ListRecords(ctx context.Context, employeeID, from, to string) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeRoster struct {
	employees []directory.Employee
}

func (f *fakeRoster) FindActiveByID(ctx context.Context, employeeID string) (*directory.Employee, error) {
	for i := range f.employees {
		if f.employees[i].ID == employeeID {
			return &f.employees[i], nil
		}
	}
	return nil, directory.ErrEmployeeNotFound
}

func (f *fakeRoster) ListActive(ctx context.Context) ([]directory.Employee, error) {
	return f.employees, nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	roster := &fakeRoster{employees: []directory.Employee{
		{ID: "emp-1", Status: directory.EmployeeStatusActive},
		{ID: "emp-2", Status: directory.EmployeeStatusActive},
		{ID: "emp-3", Status: directory.EmployeeStatusActive},
	}}
	return NewService(store, roster, testSchedule(t)), store
}

func TestCheckInCreatesProvisionalRecord(t *testing.T) {
	svc, _ := newTestService(t)

	rec, err := svc.CheckIn(context.Background(), "emp-1", at(8, 10), "HQ")
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if rec.WorkDate != "2024-06-10" {
		t.Fatalf("unexpected work date %s", rec.WorkDate)
	}
	if rec.Status != StatusPresent {
		t.Fatalf("expected provisional present, got %s", rec.Status)
	}
	if rec.WorkHours != nil {
		t.Fatalf("no hours may be set before check-out")
	}
}

func TestCheckInTwiceSameDayConflicts(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CheckIn(context.Background(), "emp-1", at(8, 0), ""); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if _, err := svc.CheckIn(context.Background(), "emp-1", at(9, 0), ""); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestCheckInUnknownEmployee(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.CheckIn(context.Background(), "ghost", at(8, 0), ""); !errors.Is(err, directory.ErrEmployeeNotFound) {
		t.Fatalf("expected employee not found, got %v", err)
	}
}

func TestCheckOutFinalizesHoursAndStatus(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CheckIn(context.Background(), "emp-1", at(8, 20), ""); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	rec, err := svc.CheckOut(context.Background(), "emp-1", "2024-06-10", at(17, 20), "HQ")
	if err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	if rec.WorkHours == nil || *rec.WorkHours != 9 {
		t.Fatalf("expected 9 work hours, got %v", rec.WorkHours)
	}
	if rec.Status != StatusLate {
		t.Fatalf("late check-in with a full day must stay late, got %s", rec.Status)
	}
}

func TestCheckOutShortDayBecomesHalfDay(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CheckIn(context.Background(), "emp-1", at(8, 0), ""); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	rec, err := svc.CheckOut(context.Background(), "emp-1", "2024-06-10", at(11, 30), "")
	if err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	if rec.Status != StatusHalfDay {
		t.Fatalf("on-time short day must be half_day, got %s", rec.Status)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.CheckOut(context.Background(), "emp-1", "2024-06-10", at(17, 0), ""); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCheckOutTwiceConflicts(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CheckIn(context.Background(), "emp-1", at(8, 0), ""); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if _, err := svc.CheckOut(context.Background(), "emp-1", "2024-06-10", at(17, 0), ""); err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	if _, err := svc.CheckOut(context.Background(), "emp-1", "2024-06-10", at(18, 0), ""); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Fatalf("expected ErrAlreadyCheckedOut, got %v", err)
	}
}

func TestCheckOutBeforeCheckIn(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CheckIn(context.Background(), "emp-1", at(9, 0), ""); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if _, err := svc.CheckOut(context.Background(), "emp-1", "2024-06-10", at(8, 0), ""); !errors.Is(err, ErrInvalidCheckOut) {
		t.Fatalf("expected ErrInvalidCheckOut, got %v", err)
	}
}

func TestCheckOutOnSweptAbsenceFails(t *testing.T) {
	svc, store := newTestService(t)

	if _, err := store.InsertAbsent(context.Background(), "emp-1", "2024-06-10"); err != nil {
		t.Fatalf("insert absent failed: %v", err)
	}
	if _, err := svc.CheckOut(context.Background(), "emp-1", "2024-06-10", at(17, 0), ""); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("expected ErrNotCheckedIn, got %v", err)
	}
}

func TestMarkAbsencesSkipsCheckedInEmployees(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CheckIn(context.Background(), "emp-1", at(8, 0), ""); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	result, err := svc.MarkAbsences(context.Background(), "2024-06-10")
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("expected 2 absences created, got %d", result.Created)
	}

	rec, err := svc.GetRecord(context.Background(), "emp-2", "2024-06-10")
	if err != nil {
		t.Fatalf("absent record missing: %v", err)
	}
	if rec.Status != StatusAbsent {
		t.Fatalf("expected absent status, got %s", rec.Status)
	}
}

func TestMarkAbsencesIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.MarkAbsences(context.Background(), "2024-06-10")
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if first.Created != 3 {
		t.Fatalf("expected 3 absences on first run, got %d", first.Created)
	}

	second, err := svc.MarkAbsences(context.Background(), "2024-06-10")
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if second.Created != 0 {
		t.Fatalf("expected 0 on rerun, got %d", second.Created)
	}
}

func TestMarkAbsencesRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.MarkAbsences(context.Background(), "June 10"); !errors.Is(err, ErrInvalidWorkDate) {
		t.Fatalf("expected ErrInvalidWorkDate, got %v", err)
	}
}
