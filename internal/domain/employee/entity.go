package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the HR record behind a login principal. Rows are never removed;
// deactivation keeps historical leave intact.
type Employee struct {
	ID                string
	UserID            string
	FirstName         string
	LastName          string
	Gender            *string
	DateOfBirth       *time.Time
	DateOfJoining     *time.Time
	Salary            *decimal.Decimal
	IsActive          bool
	IsDeleted         bool
	AddedBy           *string
	ReportingToUserID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined for responses
	Email *string
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
