package leave

import (
	"io"
	"mime/multipart"
	"time"

	"github.com/timepulse/timepulse-backend/internal/pkg/validator"
)

const dateLayout = validator.DateLayout

// ValidateLeaveRequestRequest is the dry-run check the form runs before submitting.
type ValidateLeaveRequestRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	start, end time.Time
}

func (r *ValidateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors
	r.start, r.end = parseDates(&errs, r.StartDate, r.EndDate)
	return errs.Err()
}

// Range is only meaningful after a successful Validate.
func (r *ValidateLeaveRequestRequest) Range() DateRange {
	return DateRange{Start: r.start, End: r.end}
}

type OverlapInfo struct {
	Status    LeaveRequestStatus `json:"status"`
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
}

func NewOverlapInfo(r LeaveRequest) OverlapInfo {
	return OverlapInfo{
		Status:    r.Status,
		StartDate: r.StartDate.Format(dateLayout),
		EndDate:   r.EndDate.Format(dateLayout),
	}
}

type ValidateRangeResponse struct {
	IsValid            bool         `json:"isValid"`
	Message            string       `json:"message"`
	TotalDays          int          `json:"totalDays"`
	OverlappingRequest *OverlapInfo `json:"overlappingRequest,omitempty"`
}

type CreateLeaveRequestRequest struct {
	EmployeeID     string    `json:"employeeId"`
	EmployeeName   string    `json:"employeeName"`
	TenantID       string    `json:"tenantId"`
	LeaveType      LeaveType `json:"leaveType"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	TotalDays      int       `json:"totalDays"`
	Reason         string    `json:"reason"`
	ApproverID     string    `json:"approverId"`
	AttachmentName *string   `json:"attachmentName,omitempty"`

	File       io.Reader             `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`

	start, end time.Time
	weekdays   int
}

// Validate checks the payload, including the date range rules. On success
// Range and Weekdays are populated.
func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if validator.IsEmpty(r.TenantID) {
		errs.Add("tenantId", "tenantId is required")
	}
	if !r.LeaveType.IsValid() {
		errs.Add("leaveType", "leaveType must be one of: vacation, sick")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}
	if validator.IsEmpty(r.ApproverID) {
		errs.Add("approverId", "approverId is required")
	} else if r.ApproverID == r.EmployeeID {
		errs.Add("approverId", "approverId cannot be the requesting employee")
	}
	if r.AttachmentName != nil && len(*r.AttachmentName) > 255 {
		errs.Add("attachmentName", "attachmentName must not exceed 255 characters")
	}

	r.start, r.end = parseDates(&errs, r.StartDate, r.EndDate)
	if !r.start.IsZero() && !r.end.IsZero() {
		result := ValidateRange(r.start, r.end)
		if !result.IsValid {
			errs.Add("dateRange", result.Message)
		}
		r.weekdays = result.Weekdays
	}

	return errs.Err()
}

func (r *CreateLeaveRequestRequest) Range() DateRange {
	return DateRange{Start: r.start, End: r.end}
}

// Weekdays is the server-computed totalDays.
func (r *CreateLeaveRequestRequest) Weekdays() int {
	return r.weekdays
}

type RejectLeaveRequestRequest struct {
	RequestID string `json:"-"`
	Reason    string `json:"reason"`
}

func (r *RejectLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RequestID) {
		errs.Add("id", "id is required")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	return errs.Err()
}

type LeaveRequestFilter struct {
	Status     *LeaveRequestStatus
	EmployeeID *string
	Page       int
	Limit      int
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Status != nil && !f.Status.IsValid() {
		errs.Add("status", "status must be one of: pending, approved, rejected, cancelled")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Page < 1 {
		errs.Add("page", "page must be a positive integer")
	}
	if f.Limit < 1 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	return errs.Err()
}

// Offset is the row offset for the current page.
func (f LeaveRequestFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type LeaveRequestResponse struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employeeId"`
	EmployeeName    string             `json:"employeeName"`
	TenantID        string             `json:"tenantId"`
	LeaveType       LeaveType          `json:"leaveType"`
	StartDate       string             `json:"startDate"`
	EndDate         string             `json:"endDate"`
	TotalDays       int                `json:"totalDays"`
	Reason          string             `json:"reason"`
	ApproverID      string             `json:"approverId"`
	AttachmentName  *string            `json:"attachmentName,omitempty"`
	AttachmentURL   *string            `json:"attachmentUrl,omitempty"`
	Status          LeaveRequestStatus `json:"status"`
	DecidedBy       *string            `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time         `json:"decidedAt,omitempty"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	CancelledAt     *time.Time         `json:"cancelledAt,omitempty"`
	SubmittedAt     time.Time          `json:"submittedAt"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		TenantID:        r.TenantID,
		LeaveType:       r.LeaveType,
		StartDate:       r.StartDate.Format(dateLayout),
		EndDate:         r.EndDate.Format(dateLayout),
		TotalDays:       r.TotalDays,
		Reason:          r.Reason,
		ApproverID:      r.ApproverID,
		AttachmentName:  r.AttachmentName,
		Status:          r.Status,
		DecidedBy:       r.DecidedBy,
		DecidedAt:       r.DecidedAt,
		RejectionReason: r.RejectionReason,
		CancelledAt:     r.CancelledAt,
		SubmittedAt:     r.SubmittedAt,
	}
}

type ListLeaveRequestResponse struct {
	Requests   []LeaveRequestResponse `json:"requests"`
	TotalItems int64                  `json:"-"`
	Page       int                    `json:"-"`
	Limit      int                    `json:"-"`
}

type LeaveBalanceResponse struct {
	LeaveType   LeaveType `json:"leaveType"`
	Year        int       `json:"year"`
	Total       int       `json:"total"`
	Used        int       `json:"used"`
	Pending     int       `json:"pending"`
	Remaining   int       `json:"remaining"`
	Overdrawn   bool      `json:"overdrawn"`
	UsedPercent float64   `json:"usedPercent"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	remaining := b.Remaining()
	return LeaveBalanceResponse{
		LeaveType:   b.LeaveType,
		Year:        b.Year,
		Total:       b.Total,
		Used:        b.Used,
		Pending:     b.Pending,
		Remaining:   remaining,
		Overdrawn:   remaining < 0,
		UsedPercent: percentOf(b.Used, b.Total),
	}
}

type MyBalancesResponse struct {
	Year     int                    `json:"year"`
	Balances []LeaveBalanceResponse `json:"balances"`
	Summary  BalanceSummary         `json:"summary"`
}

type SetBalanceRequest struct {
	EmployeeID string    `json:"employeeId"`
	TenantID   string    `json:"-"`
	LeaveType  LeaveType `json:"leaveType"`
	Year       int       `json:"year"`
	Total      int       `json:"total"`
}

func (r *SetBalanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if !r.LeaveType.IsValid() {
		errs.Add("leaveType", "leaveType must be one of: vacation, sick")
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	if r.Total < 0 {
		errs.Add("total", "total must not be negative")
	}
	return errs.Err()
}

func parseDates(errs *validator.ValidationErrors, startStr, endStr string) (time.Time, time.Time) {
	var start, end time.Time
	if validator.IsEmpty(startStr) {
		errs.Add("startDate", "startDate is required")
	} else if d, ok := validator.IsValidDate(startStr); !ok {
		errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
	} else {
		start = d
	}
	if validator.IsEmpty(endStr) {
		errs.Add("endDate", "endDate is required")
	} else if d, ok := validator.IsValidDate(endStr); !ok {
		errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
	} else {
		end = d
	}
	return start, end
}
