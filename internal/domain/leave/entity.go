package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// IsTerminal reports whether no further transition is permitted.
func (s LeaveRequestStatus) IsTerminal() bool {
	switch s {
	case LeaveRequestStatusApproved, LeaveRequestStatusRejected, LeaveRequestStatusCancelled:
		return true
	}
	return false
}

// IsBlocking reports whether the request counts toward the per-employee
// non-overlap invariant. Rejected and cancelled requests free their dates.
func (s LeaveRequestStatus) IsBlocking() bool {
	return s == LeaveRequestStatusPending || s == LeaveRequestStatusApproved
}

// LeaveRequest entity. Rows are never deleted; rejected and cancelled
// requests stay as audit trail.
type LeaveRequest struct {
	ID         string
	EmployeeID string

	FromDate time.Time
	ToDate   time.Time

	LeaveType string
	Reason    *string

	Status LeaveRequestStatus

	AppliedOn time.Time
	// DecidedBy is set iff status is approved or rejected.
	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	EmployeeName *string
}

// Range returns the inclusive calendar range of the request.
func (r LeaveRequest) Range() DateRange {
	return DateRange{From: TruncateToDate(r.FromDate), To: TruncateToDate(r.ToDate)}
}

// DateRange is an inclusive range of calendar dates. Time-of-day is
// irrelevant; construct via TruncateToDate.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Overlaps reports whether two inclusive ranges share at least one calendar
// date: f1 <= t2 && f2 <= t1.
func (d DateRange) Overlaps(other DateRange) bool {
	return !d.From.After(other.To) && !other.From.After(d.To)
}

// Contains reports whether day falls inside the range.
func (d DateRange) Contains(day time.Time) bool {
	day = TruncateToDate(day)
	return !day.Before(d.From) && !day.After(d.To)
}

// Days returns the number of calendar days covered, endpoints inclusive.
func (d DateRange) Days() int {
	return int(d.To.Sub(d.From).Hours()/24) + 1
}

// TruncateToDate strips the time component, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpandDates returns every calendar date from from to to inclusive, in
// order. Used to block already-taken dates in the picker and to answer
// "on leave today".
func ExpandDates(from, to time.Time) []time.Time {
	from = TruncateToDate(from)
	to = TruncateToDate(to)

	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
