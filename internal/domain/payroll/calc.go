package payroll

import "time"

// ComputeNetSalary is the single derivation for net pay. No clamping: callers
// are responsible for non-negative component inputs.
func ComputeNetSalary(baseSalary, allowances, bonuses, overtimePay, deductions float64) float64 {
	return baseSalary + allowances + bonuses + overtimePay - deductions
}

func ValidateMonth(month string) error {
	if _, err := time.Parse(MonthFormat, month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}
