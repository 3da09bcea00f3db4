package domain

// LeaveStatus enumerates lifecycle states for leave requests.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
)

// Terminal reports whether no further transition is permitted.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// LeaveTypes lists the recognized leave categories.
var LeaveTypes = []string{"Sick", "Vacation", "Personal"}

// KnownLeaveType reports whether the category is recognized.
func KnownLeaveType(leaveType string) bool {
	for _, t := range LeaveTypes {
		if t == leaveType {
			return true
		}
	}
	return false
}

// LeaveRequest is an employee's request for time off. It is owned by the
// employee who created it and visible to managers and admins for approval.
type LeaveRequest struct {
	ID              int64       `json:"id"`
	EmployeeID      int64       `json:"employeeId"`
	LeaveType       string      `json:"leaveType"`
	StartDate       Date        `json:"startDate"`
	EndDate         Date        `json:"endDate"`
	Reason          string      `json:"reason,omitempty"`
	Status          LeaveStatus `json:"status"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
}

// DurationDays is the inclusive day count displayed for a request. A request
// spanning a single day counts as 1.
func (l LeaveRequest) DurationDays() int {
	return InclusiveDays(l.StartDate, l.EndDate)
}

// InclusiveDays counts calendar days between start and end, both ends
// included. Zero when either date is absent.
func InclusiveDays(start, end Date) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	diff := end.Time.Sub(start.Time)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff.Hours() / 24)
	return days + 1
}
