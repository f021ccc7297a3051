package leave

import "time"

type LeaveType string

const (
	LeaveTypeVacation LeaveType = "vacation"
	LeaveTypeSick     LeaveType = "sick"
)

// LeaveTypes lists every leave type in display order.
var LeaveTypes = []LeaveType{LeaveTypeVacation, LeaveTypeSick}

func (t LeaveType) IsValid() bool {
	return t == LeaveTypeVacation || t == LeaveTypeSick
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected, LeaveRequestStatusCancelled:
		return true
	}
	return false
}

// LeaveRequest entity
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	TenantID     string
	LeaveType    LeaveType

	StartDate time.Time
	EndDate   time.Time
	TotalDays int // weekdays in [StartDate, EndDate]

	Reason         string
	ApproverID     string
	AttachmentName *string
	AttachmentPath *string

	Status          LeaveRequestStatus
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string
	CancelledAt     *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Range returns the request's closed date interval.
func (r LeaveRequest) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// IsPending reports whether the request can still be decided or cancelled.
func (r LeaveRequest) IsPending() bool {
	return r.Status == LeaveRequestStatusPending
}

// LeaveBalance is one employee's allowance for one leave type in one year.
type LeaveBalance struct {
	ID         string
	EmployeeID string
	TenantID   string
	LeaveType  LeaveType
	Year       int

	Total   int
	Used    int
	Pending int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining is Total - Used - Pending, unclamped.
func (b LeaveBalance) Remaining() int {
	return ComputeRemaining(b.Total, b.Used, b.Pending)
}
