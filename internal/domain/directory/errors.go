package directory

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found or inactive")
	ErrLeaveTypeNotFound = errors.New("leave type not found or inactive")
)
