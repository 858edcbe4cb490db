package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrInvalidRange        = errors.New("end date before start date")
	ErrOverlap             = errors.New("overlapping leave request exists")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrInvalidState        = errors.New("leave request not in required status")
	ErrReasonRequired      = errors.New("rejection reason is required")
	ErrForbidden           = errors.New("leave request belongs to another employee")
)
