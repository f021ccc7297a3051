package timesheet

import "time"

// Day indexes a TimePulse week, which runs Saturday through Friday.
type Day int

const (
	Saturday Day = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

const DaysPerWeek = 7

var (
	dayKeys  = [DaysPerWeek]string{"sat", "sun", "mon", "tue", "wed", "thu", "fri"}
	dayNames = [DaysPerWeek]string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
)

// Key is the lower-case wire key, e.g. "sat".
func (d Day) Key() string {
	return dayKeys[d]
}

func (d Day) String() string {
	return dayNames[d]
}

// IsWeekend is decided by position in the week, not by the calendar.
func (d Day) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

// DailyHours holds one week of hour totals keyed the way the client sends them.
type DailyHours struct {
	Sat float64 `json:"sat"`
	Sun float64 `json:"sun"`
	Mon float64 `json:"mon"`
	Tue float64 `json:"tue"`
	Wed float64 `json:"wed"`
	Thu float64 `json:"thu"`
	Fri float64 `json:"fri"`
}

// Array returns the hours in Saturday-first index order.
func (h DailyHours) Array() [DaysPerWeek]float64 {
	return [DaysPerWeek]float64{h.Sat, h.Sun, h.Mon, h.Tue, h.Wed, h.Thu, h.Fri}
}

func DailyHoursFromArray(a [DaysPerWeek]float64) DailyHours {
	return DailyHours{Sat: a[0], Sun: a[1], Mon: a[2], Tue: a[3], Wed: a[4], Thu: a[5], Fri: a[6]}
}

func (h DailyHours) Total() float64 {
	var total float64
	for _, v := range h.Array() {
		total += v
	}
	return total
}

type WeeklyHoursStatus string

const (
	WeeklyHoursStatusDraft     WeeklyHoursStatus = "draft"
	WeeklyHoursStatusSubmitted WeeklyHoursStatus = "submitted"
	WeeklyHoursStatusApproved  WeeklyHoursStatus = "approved"
	WeeklyHoursStatusRejected  WeeklyHoursStatus = "rejected"
)

func (s WeeklyHoursStatus) IsValid() bool {
	switch s {
	case WeeklyHoursStatusDraft, WeeklyHoursStatusSubmitted, WeeklyHoursStatusApproved, WeeklyHoursStatusRejected:
		return true
	}
	return false
}

// IsEditable reports whether the employee may still overwrite the hours.
func (s WeeklyHoursStatus) IsEditable() bool {
	return s == WeeklyHoursStatusDraft || s == WeeklyHoursStatusRejected
}

// WeeklyHoursEntry is one employee's hours for one client in one week.
type WeeklyHoursEntry struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	TenantID     string
	ClientID     string

	WeekStart  time.Time
	WeekEnd    time.Time
	DailyHours DailyHours

	OvertimeComment *string
	OvertimeDays    []FlaggedDay

	Status          WeeklyHoursStatus
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
