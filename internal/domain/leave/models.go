package leave

import "time"

type LeaveRequest struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employeeId"`
	LeaveTypeID     string     `json:"leaveTypeId"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         time.Time  `json:"endDate"`
	TotalDays       float64    `json:"totalDays"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// LeaveBalance is the per (employee, leave type, year) ledger row. Rows are
// created lazily on the first request touching the key and are never deleted;
// remaining_days always equals total_allocated - used_days.
type LeaveBalance struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employeeId"`
	LeaveTypeID    string    `json:"leaveTypeId"`
	Year           int       `json:"year"`
	TotalAllocated float64   `json:"totalAllocated"`
	UsedDays       float64   `json:"usedDays"`
	RemainingDays  float64   `json:"remainingDays"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// OverlapCheck reports whether a candidate range collides with an existing
// pending or approved request.
type OverlapCheck struct {
	Conflict bool   `json:"conflict"`
	Message  string `json:"message,omitempty"`
}
