package payroll

import (
	"context"
	"errors"
	"fmt"

	"hrcore/internal/domain/directory"
)

// Directory supplies the roster and base salaries for bulk generation.
type Directory interface {
	FindActiveByID(ctx context.Context, employeeID string) (*directory.Employee, error)
	ListActive(ctx context.Context) ([]directory.Employee, error)
}

type Service struct {
	store      StoreAPI
	directory  Directory
	payslipDir string
}

func NewService(store StoreAPI, dir Directory, payslipDir string) *Service {
	return &Service{store: store, directory: dir, payslipDir: payslipDir}
}

type CreateInput struct {
	EmployeeID  string
	Month       string
	BaseSalary  float64
	Allowances  float64
	Bonuses     float64
	OvertimePay float64
	Deductions  float64
}

func (s *Service) CreateRecord(ctx context.Context, input CreateInput) (*PayrollRecord, error) {
	if err := ValidateMonth(input.Month); err != nil {
		return nil, err
	}
	if _, err := s.directory.FindActiveByID(ctx, input.EmployeeID); err != nil {
		return nil, err
	}

	rec := &PayrollRecord{
		EmployeeID:  input.EmployeeID,
		Month:       input.Month,
		BaseSalary:  input.BaseSalary,
		Allowances:  input.Allowances,
		Bonuses:     input.Bonuses,
		OvertimePay: input.OvertimePay,
		Deductions:  input.Deductions,
		NetSalary:   ComputeNetSalary(input.BaseSalary, input.Allowances, input.Bonuses, input.OvertimePay, input.Deductions),
		Status:      StatusDraft,
	}
	id, err := s.store.CreateRecord(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return rec, nil
}

// UpdateInput carries a partial component set; nil fields keep their stored
// value.
type UpdateInput struct {
	BaseSalary  *float64
	Allowances  *float64
	Bonuses     *float64
	OvertimePay *float64
	Deductions  *float64
}

// UpdateRecord merges the provided fields and recomputes net_salary from the
// full component set; the stored derived value is never trusted.
func (s *Service) UpdateRecord(ctx context.Context, recordID string, input UpdateInput) (*PayrollRecord, error) {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec.Status == StatusPaid {
		return nil, fmt.Errorf("%w: record is paid", ErrInvalidState)
	}

	if input.BaseSalary != nil {
		rec.BaseSalary = *input.BaseSalary
	}
	if input.Allowances != nil {
		rec.Allowances = *input.Allowances
	}
	if input.Bonuses != nil {
		rec.Bonuses = *input.Bonuses
	}
	if input.OvertimePay != nil {
		rec.OvertimePay = *input.OvertimePay
	}
	if input.Deductions != nil {
		rec.Deductions = *input.Deductions
	}
	rec.NetSalary = ComputeNetSalary(rec.BaseSalary, rec.Allowances, rec.Bonuses, rec.OvertimePay, rec.Deductions)

	if err := s.store.UpdateComponents(ctx, rec); err != nil {
		return nil, err
	}
	return s.store.GetRecord(ctx, recordID)
}

// ApproveRecord moves a draft to approved. Approving an approved record is an
// idempotent no-op; approving a paid record fails.
func (s *Service) ApproveRecord(ctx context.Context, recordID string) (*PayrollRecord, error) {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec.Status == StatusPaid {
		return nil, fmt.Errorf("%w: record is paid", ErrInvalidState)
	}
	if rec.Status == StatusApproved {
		return rec, nil
	}

	if err := s.store.ApproveRecord(ctx, recordID); err != nil {
		return nil, err
	}
	return s.store.GetRecord(ctx, recordID)
}

// MarkPaid freezes an approved record.
func (s *Service) MarkPaid(ctx context.Context, recordID string) (*PayrollRecord, error) {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec.Status != StatusApproved {
		return nil, fmt.Errorf("%w: record is %s", ErrInvalidState, rec.Status)
	}

	if err := s.store.MarkPaid(ctx, recordID); err != nil {
		return nil, err
	}
	return s.store.GetRecord(ctx, recordID)
}

// Generate attempts a draft record per roster employee, seeded with the
// current base salary and zeroed variable components. Outcomes are
// partitioned per employee; duplicates are skips, anything else an error.
func (s *Service) Generate(ctx context.Context, month string, employeeIDs []string) (GenerateResult, error) {
	result := GenerateResult{Month: month}
	if err := ValidateMonth(month); err != nil {
		return result, err
	}

	var roster []directory.Employee
	if len(employeeIDs) == 0 {
		listed, err := s.directory.ListActive(ctx)
		if err != nil {
			return result, err
		}
		roster = listed
	} else {
		for _, employeeID := range employeeIDs {
			emp, err := s.directory.FindActiveByID(ctx, employeeID)
			if err != nil {
				result.Errors = append(result.Errors, GenerateError{EmployeeID: employeeID, Reason: err.Error()})
				continue
			}
			roster = append(roster, *emp)
		}
	}

	for _, emp := range roster {
		_, err := s.CreateRecord(ctx, CreateInput{
			EmployeeID: emp.ID,
			Month:      month,
			BaseSalary: emp.BaseSalary,
		})
		switch {
		case err == nil:
			result.Created = append(result.Created, emp.ID)
		case errors.Is(err, ErrDuplicateRecord):
			result.Skipped = append(result.Skipped, emp.ID)
		default:
			result.Errors = append(result.Errors, GenerateError{EmployeeID: emp.ID, Reason: err.Error()})
		}
	}
	return result, nil
}

func (s *Service) GetRecord(ctx context.Context, recordID string) (*PayrollRecord, error) {
	return s.store.GetRecord(ctx, recordID)
}

func (s *Service) ListRecords(ctx context.Context, month, employeeID string) ([]PayrollRecord, error) {
	if month != "" {
		if err := ValidateMonth(month); err != nil {
			return nil, err
		}
	}
	return s.store.ListRecords(ctx, month, employeeID)
}
