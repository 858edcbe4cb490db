package payroll

import "time"

// PayrollRecord holds one row per employee per payroll month. net_salary is
// derived and recomputed from the full component set on every mutation.
type PayrollRecord struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Month       string    `json:"payrollMonth"`
	BaseSalary  float64   `json:"baseSalary"`
	Allowances  float64   `json:"allowances"`
	Bonuses     float64   `json:"bonuses"`
	OvertimePay float64   `json:"overtimePay"`
	Deductions  float64   `json:"deductions"`
	NetSalary   float64   `json:"netSalary"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GenerateResult partitions a bulk run per employee; one employee's failure
// never aborts the batch.
type GenerateResult struct {
	Month   string          `json:"month"`
	Created []string        `json:"created"`
	Skipped []string        `json:"skipped"`
	Errors  []GenerateError `json:"errors"`
}

type GenerateError struct {
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}
