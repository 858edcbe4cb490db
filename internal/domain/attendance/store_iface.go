package attendance

import (
	"context"
	"time"
)

type StoreAPI interface {
	GetRecord(ctx context.Context, employeeID, workDate string) (*AttendanceRecord, error)
	CreateCheckIn(ctx context.Context, rec *AttendanceRecord) (string, error)
	CompleteCheckOut(ctx context.Context, recordID string, checkOut time.Time, workHours float64, status, location string) error
	InsertAbsent(ctx context.Context, employeeID, workDate string) (bool, error)
	ListRecords(ctx context.Context, employeeID, from, to string) ([]AttendanceRecord, error)
}
