package leave

import (
	"context"
	"time"
)

type StoreAPI interface {
	GetRequest(ctx context.Context, requestID string) (*LeaveRequest, error)
	FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeRequestID string) (*LeaveRequest, error)
	CreateRequest(ctx context.Context, req *LeaveRequest) (string, error)
	ListRequests(ctx context.Context, employeeID, status string, limit, offset int) ([]LeaveRequest, error)
	EnsureBalance(ctx context.Context, employeeID, leaveTypeID string, year int, allocated float64) (*LeaveBalance, error)
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	ListBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	ApproveRequest(ctx context.Context, req *LeaveRequest, approvedBy string) error
	RejectRequest(ctx context.Context, requestID, reason string) error
	CancelPendingRequest(ctx context.Context, requestID string) error
	CancelApprovedRequest(ctx context.Context, req *LeaveRequest) error
}
