package employee

import "context"

type EmployeeService interface {
	// Create provisions the login user and the employee row in one
	// transaction.
	Create(ctx context.Context, addedByUserID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	// Deactivate soft-deletes the employee and disables their login.
	Deactivate(ctx context.Context, id string) error
}
