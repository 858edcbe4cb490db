package directory

import (
	"context"
	"time"

	"hrcore/internal/platform/refcache"
)

// Service is the read-only lookup collaborator consumed by the leave,
// attendance, and payroll engines. Point lookups go through injected
// read-through caches; the active roster is always read fresh.
type Service struct {
	store      *Store
	employees  *refcache.Cache[*Employee]
	leaveTypes *refcache.Cache[*LeaveType]
}

func NewService(store *Store, cacheTTL time.Duration) *Service {
	return &Service{
		store: store,
		employees: refcache.New(cacheTTL, func(ctx context.Context, id string) (*Employee, error) {
			return store.FindActiveEmployee(ctx, id)
		}),
		leaveTypes: refcache.New(cacheTTL, func(ctx context.Context, id string) (*LeaveType, error) {
			return store.FindActiveLeaveType(ctx, id)
		}),
	}
}

func (s *Service) FindActiveByID(ctx context.Context, employeeID string) (*Employee, error) {
	return s.employees.Get(ctx, employeeID)
}

func (s *Service) ListActive(ctx context.Context) ([]Employee, error) {
	return s.store.ListActiveEmployees(ctx)
}

func (s *Service) FindActiveLeaveType(ctx context.Context, leaveTypeID string) (*LeaveType, error) {
	return s.leaveTypes.Get(ctx, leaveTypeID)
}
