package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrAlreadyCheckedIn  = errors.New("already checked in for this work date")
	ErrAlreadyCheckedOut = errors.New("already checked out for this work date")
	ErrNotCheckedIn      = errors.New("no check-in recorded for this work date")
	ErrInvalidCheckOut   = errors.New("check-out time before check-in time")
	ErrInvalidWorkDate   = errors.New("work date must be in YYYY-MM-DD format")
)
