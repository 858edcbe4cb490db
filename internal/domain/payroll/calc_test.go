package payroll

import (
	"errors"
	"testing"
)

func TestComputeNetSalary(t *testing.T) {
	if net := ComputeNetSalary(2000, 300, 500, 200, 400); net != 2600 {
		t.Fatalf("expected net 2600, got %v", net)
	}
	if net := ComputeNetSalary(1000, 0, 0, 0, 0); net != 1000 {
		t.Fatalf("expected net 1000, got %v", net)
	}
}

func TestComputeNetSalaryDoesNotClamp(t *testing.T) {
	if net := ComputeNetSalary(1000, 0, 0, 0, 1500); net != -500 {
		t.Fatalf("expected net -500, got %v", net)
	}
}

func TestValidateMonth(t *testing.T) {
	if err := ValidateMonth("2024-06"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, month := range []string{"2024-13", "2024-6", "June 2024", "2024-06-01", ""} {
		if err := ValidateMonth(month); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth for %q, got %v", month, err)
		}
	}
}
