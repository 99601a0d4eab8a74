package employee

import (
	"time"

	"github.com/squad-internal/hr-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Email             string  `json:"email"`
	Password          string  `json:"password"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Gender            *string `json:"gender,omitempty"`
	DateOfBirth       *string `json:"date_of_birth,omitempty"`
	DateOfJoining     *string `json:"date_of_joining,omitempty"`
	Salary            *string `json:"salary,omitempty"`
	ReportingToUserID *string `json:"reporting_to_user_id,omitempty"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Email format is invalid"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "First name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "Last name is required"})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "Date must be in YYYY-MM-DD format"})
		}
	}
	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "Date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                string     `json:"-"`
	FirstName         *string    `json:"first_name,omitempty"`
	LastName          *string    `json:"last_name,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	DateOfJoining     *time.Time `json:"date_of_joining,omitempty"`
	Salary            *string    `json:"salary,omitempty"`
	ReportingToUserID *string    `json:"reporting_to_user_id,omitempty"`
}

type EmployeeResponse struct {
	ID            string     `json:"id"`
	FullName      string     `json:"full_name"`
	Email         *string    `json:"email,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`
	Salary        *string    `json:"salary,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
}
