package payroll

import "errors"

var (
	ErrRecordNotFound  = errors.New("payroll record not found")
	ErrDuplicateRecord = errors.New("payroll record already exists for this employee and month")
	ErrInvalidState    = errors.New("payroll record not in required status")
	ErrInvalidMonth    = errors.New("payroll month must be in YYYY-MM format")
)
