package attendance

import "time"

// AttendanceRecord holds one row per employee per work date. Sweeper-created
// absence rows carry no check-in time.
type AttendanceRecord struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employeeId"`
	WorkDate         string     `json:"workDate"`
	CheckInTime      *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime     *time.Time `json:"checkOutTime,omitempty"`
	WorkHours        *float64   `json:"workHours,omitempty"`
	Status           string     `json:"status"`
	CheckInLocation  string     `json:"checkInLocation,omitempty"`
	CheckOutLocation string     `json:"checkOutLocation,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// SweepResult reports one absence-marking run.
type SweepResult struct {
	WorkDate string `json:"workDate"`
	Created  int    `json:"created"`
}
