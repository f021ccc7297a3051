package timesheet

import (
	"math"
	"time"

	"github.com/timepulse/timepulse-backend/internal/pkg/validator"
)

const dateLayout = validator.DateLayout

// ClassifyRequest previews which days of a week would need a comment.
type ClassifyRequest struct {
	WeekStart  string     `json:"weekStart"`
	DailyHours DailyHours `json:"dailyHours"`

	weekStart time.Time
}

func (r *ClassifyRequest) Validate() error {
	var errs validator.ValidationErrors
	r.weekStart = parseWeekStart(&errs, r.WeekStart)
	validateHours(&errs, r.DailyHours)
	return errs.Err()
}

func (r *ClassifyRequest) Week() time.Time {
	return r.weekStart
}

type ClassifyResponse struct {
	WeekStart       string       `json:"weekStart"`
	WeekEnd         string       `json:"weekEnd"`
	TotalHours      float64      `json:"totalHours"`
	OvertimeDays    []FlaggedDay `json:"overtimeDays"`
	RequiresComment bool         `json:"requiresComment"`
}

type SubmitWeeklyHoursRequest struct {
	ClientID        string       `json:"clientId"`
	WeekStart       string       `json:"weekStart"`
	WeekEnd         string       `json:"weekEnd"`
	DailyHours      DailyHours   `json:"dailyHours"`
	OvertimeComment *string      `json:"overtimeComment,omitempty"`
	OvertimeDays    []FlaggedDay `json:"overtimeDays,omitempty"`
	// Draft saves the hours without submitting them for approval.
	Draft bool `json:"draft"`

	weekStart time.Time
}

func (r *SubmitWeeklyHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientID) {
		errs.Add("clientId", "clientId is required")
	}

	r.weekStart = parseWeekStart(&errs, r.WeekStart)
	if validator.IsEmpty(r.WeekEnd) {
		errs.Add("weekEnd", "weekEnd is required")
	} else if end, ok := validator.IsValidDate(r.WeekEnd); !ok {
		errs.Add("weekEnd", "weekEnd must be in YYYY-MM-DD format")
	} else if !r.weekStart.IsZero() && !end.Equal(r.weekStart.AddDate(0, 0, DaysPerWeek-1)) {
		errs.Add("weekEnd", "weekEnd must be the Friday after weekStart")
	}

	validateHours(&errs, r.DailyHours)

	if r.OvertimeComment != nil && len(*r.OvertimeComment) > 2000 {
		errs.Add("overtimeComment", "overtimeComment must not exceed 2000 characters")
	}

	return errs.Err()
}

func (r *SubmitWeeklyHoursRequest) Week() time.Time {
	return r.weekStart
}

// Comment returns the overtime comment or "".
func (r *SubmitWeeklyHoursRequest) Comment() string {
	if r.OvertimeComment == nil {
		return ""
	}
	return *r.OvertimeComment
}

type RejectWeeklyHoursRequest struct {
	EntryID string `json:"-"`
	Reason  string `json:"reason"`
}

func (r *RejectWeeklyHoursRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EntryID) {
		errs.Add("id", "id is required")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	return errs.Err()
}

type WeeklyHoursFilter struct {
	Status     *WeeklyHoursStatus
	EmployeeID *string
	ClientID   *string
	Page       int
	Limit      int
}

func (f *WeeklyHoursFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Status != nil && !f.Status.IsValid() {
		errs.Add("status", "status must be one of: draft, submitted, approved, rejected")
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

func (f WeeklyHoursFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type WeeklyHoursResponse struct {
	ID              string            `json:"id"`
	EmployeeID      string            `json:"employeeId"`
	EmployeeName    string            `json:"employeeName"`
	TenantID        string            `json:"tenantId"`
	ClientID        string            `json:"clientId"`
	WeekStart       string            `json:"weekStart"`
	WeekEnd         string            `json:"weekEnd"`
	DailyHours      DailyHours        `json:"dailyHours"`
	TotalHours      float64           `json:"totalHours"`
	OvertimeComment *string           `json:"overtimeComment"`
	OvertimeDays    []FlaggedDay      `json:"overtimeDays"`
	Status          WeeklyHoursStatus `json:"status"`
	DecidedBy       *string           `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time        `json:"decidedAt,omitempty"`
	RejectionReason *string           `json:"rejectionReason,omitempty"`
	SubmittedAt     *time.Time        `json:"submittedAt"`
}

func NewWeeklyHoursResponse(e WeeklyHoursEntry) WeeklyHoursResponse {
	days := e.OvertimeDays
	if days == nil {
		days = []FlaggedDay{}
	}
	return WeeklyHoursResponse{
		ID:              e.ID,
		EmployeeID:      e.EmployeeID,
		EmployeeName:    e.EmployeeName,
		TenantID:        e.TenantID,
		ClientID:        e.ClientID,
		WeekStart:       e.WeekStart.Format(dateLayout),
		WeekEnd:         e.WeekEnd.Format(dateLayout),
		DailyHours:      e.DailyHours,
		TotalHours:      e.DailyHours.Total(),
		OvertimeComment: e.OvertimeComment,
		OvertimeDays:    days,
		Status:          e.Status,
		DecidedBy:       e.DecidedBy,
		DecidedAt:       e.DecidedAt,
		RejectionReason: e.RejectionReason,
		SubmittedAt:     e.SubmittedAt,
	}
}

type ListWeeklyHoursResponse struct {
	Entries    []WeeklyHoursResponse `json:"entries"`
	TotalItems int64                 `json:"-"`
	Page       int                   `json:"-"`
	Limit      int                   `json:"-"`
}

func parseWeekStart(errs *validator.ValidationErrors, s string) time.Time {
	if validator.IsEmpty(s) {
		errs.Add("weekStart", "weekStart is required")
		return time.Time{}
	}
	d, ok := validator.IsValidDate(s)
	if !ok {
		errs.Add("weekStart", "weekStart must be in YYYY-MM-DD format")
		return time.Time{}
	}
	if d.Weekday() != time.Saturday {
		errs.Add("weekStart", "weekStart must be a Saturday")
		return time.Time{}
	}
	return d
}

func validateHours(errs *validator.ValidationErrors, h DailyHours) {
	for i, v := range h.Array() {
		if math.IsNaN(v) || v < 0 || v > 24 {
			key := Day(i).Key()
			errs.Add("dailyHours."+key, "dailyHours."+key+" must be between 0 and 24")
		}
	}
}
