package leave

import "errors"

var (
	ErrInvalidDateRange             = errors.New("To date cannot be earlier than from date")
	ErrOverlappingLeave             = errors.New("Leave already applied for the selected dates")
	ErrLeaveRequestNotFound         = errors.New("Leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("Leave request already processed")
	ErrOnlyPendingCancellable       = errors.New("Only pending leaves can be cancelled")
)
