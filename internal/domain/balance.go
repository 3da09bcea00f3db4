package domain

// LeaveBalance tracks remaining days per leave category for a user. The
// backend owns the arithmetic; the portal only displays and forwards edits.
type LeaveBalance struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	LeaveType     string `json:"leaveType"`
	TotalDays     int    `json:"totalDays"`
	UsedDays      int    `json:"usedDays"`
	RemainingDays int    `json:"remainingDays"`
}
