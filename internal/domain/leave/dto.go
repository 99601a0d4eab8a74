package leave

import (
	"time"

	"github.com/squad-internal/hr-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	FromDate  string  `json:"from_date"`
	ToDate    string  `json:"to_date"`
	LeaveType string  `json:"leave_type"`
	Reason    *string `json:"reason,omitempty"`
}

func (r CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FromDate) {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "From date is required"})
	} else if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "Date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.ToDate) {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "To date is required"})
	} else if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "Date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "Leave type is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequestRequest struct {
	RequestID string `json:"request_id"`
}

func (r DecideRequestRequest) Validate() error {
	if validator.IsEmpty(r.RequestID) {
		return validator.ValidationErrors{{Field: "request_id", Message: "Request ID is required"}}
	}
	return nil
}

type LeaveRequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name,omitempty"`
	FromDate     time.Time  `json:"from_date"`
	ToDate       time.Time  `json:"to_date"`
	Days         int        `json:"days"`
	LeaveType    string     `json:"leave_type"`
	Reason       *string    `json:"reason,omitempty"`
	Status       string     `json:"status"`
	AppliedOn    time.Time  `json:"applied_on"`
	DecidedBy    *string    `json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`

	// NotificationWarning is set when the request went through but the
	// follow-up email could not be delivered.
	NotificationWarning *string `json:"notification_warning,omitempty"`
}

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		FromDate:   r.FromDate,
		ToDate:     r.ToDate,
		Days:       r.Range().Days(),
		LeaveType:  r.LeaveType,
		Reason:     r.Reason,
		Status:     string(r.Status),
		AppliedOn:  r.AppliedOn,
		DecidedBy:  r.DecidedBy,
		DecidedAt:  r.DecidedAt,
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	return resp
}
