package employee

import "context"

// EmployeeRepository - interface for the employees table. Lookups return only
// rows that are active and not soft-deleted unless stated otherwise; callers
// never re-filter.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetActiveByUserID resolves the active employee behind a login principal.
	GetActiveByUserID(ctx context.Context, userID string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	// Deactivate soft-deletes: flips is_active off, leaves the row in place.
	Deactivate(ctx context.Context, id string) error
}
