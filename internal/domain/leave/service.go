package leave

import (
	"context"
	"time"

	"github.com/squad-internal/hr-backend-go/internal/domain/user"
)

// LeaveService is the leave request lifecycle: submit, decide, cancel, plus
// the read views the frontend renders. All identity arguments are the login
// principal's user id; the service resolves the employee row itself.
type LeaveService interface {
	// Submit validates and records a new request. Admins applying for
	// themselves skip the approval queue and land directly in approved.
	Submit(ctx context.Context, userID string, role user.Role, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, approverUserID string, requestID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, approverUserID string, requestID string) (LeaveRequestResponse, error)
	// Cancel withdraws the caller's own pending request.
	Cancel(ctx context.Context, userID string, role user.Role, requestID string) (LeaveRequestResponse, error)

	GetMyRequests(ctx context.Context, userID string) ([]LeaveRequestResponse, error)
	GetPendingApprovals(ctx context.Context) ([]LeaveRequestResponse, error)
	// GetBlockedDates lists every date already held by a pending or approved
	// request, for disabling in the date picker.
	GetBlockedDates(ctx context.Context, userID string) ([]time.Time, error)
	GetSummary(ctx context.Context, userID string) (StatusCounts, error)
}
