package leave

import "time"

const (
	MessageEndBeforeStart = "End date cannot be before start date"
	MessageWeekendOnly    = "Leave must include at least one weekday"
	MessageValidRange     = "Valid date range"
)

// DateRange is a closed interval of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// RangeValidation is the outcome of ValidateRange.
type RangeValidation struct {
	IsValid  bool   `json:"isValid"`
	Message  string `json:"message"`
	Weekdays int    `json:"totalDays"`
}

// ValidateRange checks that end is not before start and that the range holds
// at least one weekday. Weekdays is filled whenever end >= start.
func ValidateRange(start, end time.Time) RangeValidation {
	start, end = day(start), day(end)
	if end.Before(start) {
		return RangeValidation{IsValid: false, Message: MessageEndBeforeStart}
	}

	weekdays := CountWeekdays(start, end)
	if weekdays == 0 {
		return RangeValidation{IsValid: false, Message: MessageWeekendOnly}
	}

	return RangeValidation{IsValid: true, Message: MessageValidRange, Weekdays: weekdays}
}

// CountWeekdays counts the days in [start, end] that are not Saturday or
// Sunday. It returns 0 when end is before start.
func CountWeekdays(start, end time.Time) int {
	start, end = day(start), day(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			count++
		}
	}
	return count
}

// YearShare is the part of a range that falls in one calendar year.
type YearShare struct {
	Year     int
	Weekdays int
}

// SplitByYear counts weekdays per calendar year, oldest year first. Years
// that contribute no weekdays are left out.
func (r DateRange) SplitByYear() []YearShare {
	start, end := day(r.Start), day(r.End)
	var shares []YearShare
	for y := start.Year(); y <= end.Year(); y++ {
		from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		if from.Before(start) {
			from = start
		}
		to := time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
		if to.After(end) {
			to = end
		}
		if n := CountWeekdays(from, to); n > 0 {
			shares = append(shares, YearShare{Year: y, Weekdays: n})
		}
	}
	return shares
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Overlaps reports whether two closed intervals share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !day(r.Start).After(day(other.End)) && !day(r.End).Before(day(other.Start))
}

// FindOverlap returns the first non-cancelled request whose range intersects r.
func FindOverlap(r DateRange, existing []LeaveRequest) (LeaveRequest, bool) {
	for _, req := range existing {
		if req.Status == LeaveRequestStatusCancelled {
			continue
		}
		if r.Overlaps(req.Range()) {
			return req, true
		}
	}
	return LeaveRequest{}, false
}

// HasOverlap reports whether r intersects any non-cancelled request.
func HasOverlap(r DateRange, existing []LeaveRequest) bool {
	_, found := FindOverlap(r, existing)
	return found
}

// day drops the clock so comparisons happen on calendar days.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
