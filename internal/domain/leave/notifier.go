package leave

import (
	"context"
	"time"
)

// Notification carries the structured data the dispatcher renders into an
// email. The ledger never builds presentation itself.
type Notification struct {
	RequestID     string
	EmployeeName  string
	EmployeeEmail string
	FromDate      time.Time
	ToDate        time.Time
	LeaveType     string
	Reason        string
	AppliedOn     time.Time
}

// Notifier sends leave lifecycle emails. Every call is best-effort: a failure
// is reported back as a warning and never rolls back the state transition
// that triggered it.
type Notifier interface {
	// LeaveApplied notifies the approver that a request awaits review.
	LeaveApplied(ctx context.Context, to string, n Notification) error
	// LeaveDecided notifies the employee of an approval or rejection.
	LeaveDecided(ctx context.Context, to string, n Notification, approved bool) error
	// LeaveCancelled notifies the approver that a pending request was withdrawn.
	LeaveCancelled(ctx context.Context, to string, n Notification) error
}
