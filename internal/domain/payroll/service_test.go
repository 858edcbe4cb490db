package payroll

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
	month      string
}

type fakeStore struct {
	records map[string]*PayrollRecord
	byKey   map[recordKey]string
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]*PayrollRecord),
		byKey:   make(map[recordKey]string),
	}
}

func (f *fakeStore) GetRecord(ctx context.Context, recordID string) (*PayrollRecord, error) {
	rec, ok := f.records[recordID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeStore) CreateRecord(ctx context.Context, rec *PayrollRecord) (string, error) {
	key := recordKey{rec.EmployeeID, rec.Month}
	if _, ok := f.byKey[key]; ok {
		return "", ErrDuplicateRecord
	}
	f.nextID++
	id := fmt.Sprintf("pay-%d", f.nextID)
	stored := *rec
	stored.ID = id
	stored.CreatedAt = time.Now()
	f.records[id] = &stored
	f.byKey[key] = id
	return id, nil
}

func (f *fakeStore) UpdateComponents(ctx context.Context, rec *PayrollRecord) error {
	stored, ok := f.records[rec.ID]
	if !ok || stored.Status == StatusPaid {
		return ErrInvalidState
	}
	stored.BaseSalary = rec.BaseSalary
	stored.Allowances = rec.Allowances
	stored.Bonuses = rec.Bonuses
	stored.OvertimePay = rec.OvertimePay
	stored.Deductions = rec.Deductions
	stored.NetSalary = rec.NetSalary
	return nil
}

func (f *fakeStore) ApproveRecord(ctx context.Context, recordID string) error {
	stored, ok := f.records[recordID]
	if !ok || stored.Status == StatusPaid {
		return ErrInvalidState
	}
	stored.Status = StatusApproved
	return nil
}

func (f *fakeStore) MarkPaid(ctx context.Context, recordID string) error {
	stored, ok := f.records[recordID]
	if !ok || stored.Status != StatusApproved {
		return ErrInvalidState
	}
	stored.Status = StatusPaid
	return nil
}

func (f *fakeStore) ListRecords(ctx context.Context, month, employeeID string) ([]PayrollRecord, error) {
	var out []PayrollRecord
	for _, rec := range f.records {
		if month != "" && rec.Month != month {
			continue
		}
		if employeeID != "" && rec.EmployeeID != employeeID {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

type fakeDirectory struct {
	employees map[string]*directory.Employee
}

func (f *fakeDirectory) FindActiveByID(ctx context.Context, employeeID string) (*directory.Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return nil, directory.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeDirectory) ListActive(ctx context.Context) ([]directory.Employee, error) {
	var out []directory.Employee
	for _, emp := range f.employees {
		out = append(out, *emp)
	}
	return out, nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	dir := &fakeDirectory{employees: map[string]*directory.Employee{
		"emp-1": {ID: "emp-1", BaseSalary: 2000, Status: directory.EmployeeStatusActive},
		"emp-2": {ID: "emp-2", BaseSalary: 3000, Status: directory.EmployeeStatusActive},
	}}
	return NewService(store, dir, "storage/payslips"), store
}

func mustCreate(t *testing.T, svc *Service, employeeID, month string) *PayrollRecord {
	t.Helper()
	rec, err := svc.CreateRecord(context.Background(), CreateInput{
		EmployeeID:  employeeID,
		Month:       month,
		BaseSalary:  2000,
		Allowances:  300,
		Bonuses:     500,
		OvertimePay: 200,
		Deductions:  400,
	})
	if err != nil {
		t.Fatalf("create payroll failed: %v", err)
	}
	return rec
}

func TestCreateRecordDerivesNet(t *testing.T) {
	svc, _ := newTestService()
	rec := mustCreate(t, svc, "emp-1", "2024-06")
	if rec.NetSalary != 2600 {
		t.Fatalf("expected net 2600, got %v", rec.NetSalary)
	}
	if rec.Status != StatusDraft {
		t.Fatalf("expected draft, got %s", rec.Status)
	}
}

func TestCreateRecordDuplicateMonthConflicts(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, "emp-1", "2024-06")

	_, err := svc.CreateRecord(context.Background(), CreateInput{EmployeeID: "emp-1", Month: "2024-06", BaseSalary: 2000})
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}
}

func TestCreateRecordInvalidMonth(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateRecord(context.Background(), CreateInput{EmployeeID: "emp-1", Month: "2024/06"})
	if !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestCreateRecordUnknownEmployee(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateRecord(context.Background(), CreateInput{EmployeeID: "ghost", Month: "2024-06"})
	if !errors.Is(err, directory.ErrEmployeeNotFound) {
		t.Fatalf("expected employee not found, got %v", err)
	}
}

func TestUpdateRecordRecomputesNet(t *testing.T) {
	svc, _ := newTestService()
	rec := mustCreate(t, svc, "emp-1", "2024-06")

	bonuses := 1000.0
	updated, err := svc.UpdateRecord(context.Background(), rec.ID, UpdateInput{Bonuses: &bonuses})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Bonuses != 1000 {
		t.Fatalf("expected bonuses 1000, got %v", updated.Bonuses)
	}
	if updated.NetSalary != 3100 {
		t.Fatalf("net must be recomputed from the full component set, got %v", updated.NetSalary)
	}
	if updated.Allowances != 300 {
		t.Fatalf("untouched fields must survive the merge, got %v", updated.Allowances)
	}
}

func TestUpdatePaidRecordFails(t *testing.T) {
	svc, _ := newTestService()
	rec := mustCreate(t, svc, "emp-1", "2024-06")
	if _, err := svc.ApproveRecord(context.Background(), rec.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := svc.MarkPaid(context.Background(), rec.ID); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	deductions := 0.0
	if _, err := svc.UpdateRecord(context.Background(), rec.ID, UpdateInput{Deductions: &deductions}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for paid record, got %v", err)
	}
}

func TestApproveIsIdempotentUntilPaid(t *testing.T) {
	svc, _ := newTestService()
	rec := mustCreate(t, svc, "emp-1", "2024-06")

	first, err := svc.ApproveRecord(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if first.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", first.Status)
	}

	second, err := svc.ApproveRecord(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("re-approve of approved must be a no-op, got %v", err)
	}
	if second.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", second.Status)
	}

	if _, err := svc.MarkPaid(context.Background(), rec.ID); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if _, err := svc.ApproveRecord(context.Background(), rec.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState re-approving a paid record, got %v", err)
	}
}

func TestMarkPaidRequiresApproved(t *testing.T) {
	svc, _ := newTestService()
	rec := mustCreate(t, svc, "emp-1", "2024-06")

	if _, err := svc.MarkPaid(context.Background(), rec.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState paying a draft, got %v", err)
	}
}

func TestGeneratePartitionsOutcomes(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, "emp-1", "2024-06")

	result, err := svc.Generate(context.Background(), "2024-06", []string{"emp-1", "emp-2", "ghost"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(result.Created) != 1 || result.Created[0] != "emp-2" {
		t.Fatalf("expected emp-2 created, got %v", result.Created)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "emp-1" {
		t.Fatalf("expected emp-1 skipped, got %v", result.Skipped)
	}
	if len(result.Errors) != 1 || result.Errors[0].EmployeeID != "ghost" {
		t.Fatalf("expected ghost in errors, got %v", result.Errors)
	}
}

func TestGenerateSeedsBaseSalary(t *testing.T) {
	svc, store := newTestService()

	result, err := svc.Generate(context.Background(), "2024-07", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected both employees created, got %v", result.Created)
	}

	records, _ := store.ListRecords(context.Background(), "2024-07", "emp-2")
	if len(records) != 1 {
		t.Fatalf("expected one record for emp-2, got %d", len(records))
	}
	rec := records[0]
	if rec.BaseSalary != 3000 || rec.NetSalary != 3000 {
		t.Fatalf("expected base and net seeded to 3000, got %+v", rec)
	}
	if rec.Allowances != 0 || rec.Bonuses != 0 || rec.OvertimePay != 0 || rec.Deductions != 0 {
		t.Fatalf("variable components must be zeroed, got %+v", rec)
	}
}

func TestGenerateInvalidMonth(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Generate(context.Background(), "Jun-2024", nil); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
