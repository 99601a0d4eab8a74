package leave

import (
	"context"
	"time"
)

// StatusCounts is the per-employee summary shown on the dashboard.
type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	// GetBlocking returns the employee's requests whose status still blocks
	// their dates (pending or approved). The overlap scan runs over these.
	GetBlocking(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	GetPending(ctx context.Context) ([]LeaveRequest, error)
	GetApprovedOnDate(ctx context.Context, day time.Time) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, decidedBy *string) error
	CountByStatus(ctx context.Context, employeeID string) (StatusCounts, error)
}

// TxManager runs fn atomically. The submit path wraps its overlap check and
// insert in one transaction so two concurrent submissions for the same
// employee cannot both pass the check.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
