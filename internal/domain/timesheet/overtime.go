package timesheet

import (
	"time"

	"github.com/timepulse/timepulse-backend/internal/domain/holiday"
)

// OvertimeThresholdHours is the weekday total above which a day counts as overtime.
const OvertimeThresholdHours = 8.0

// HolidayLookup is satisfied by *holiday.Calendar.
type HolidayLookup interface {
	Lookup(date time.Time) (holiday.Holiday, bool)
}

// FlaggedDay is a day that needs an overtime justification.
type FlaggedDay struct {
	Day         string  `json:"day"`
	Key         string  `json:"key"`
	Date        string  `json:"date,omitempty"`
	Hours       float64 `json:"hours"`
	IsWeekend   bool    `json:"isWeekend"`
	IsHoliday   bool    `json:"isHoliday"`
	HolidayName string  `json:"holidayName,omitempty"`
}

// WeekDates returns the seven calendar dates of the week starting at weekStart.
func WeekDates(weekStart time.Time) [DaysPerWeek]time.Time {
	start := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	var dates [DaysPerWeek]time.Time
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// Classify flags worked days that need justification. Days with no hours are
// never flagged. A worked weekend day is flagged as weekend; otherwise a worked
// holiday is flagged as holiday; otherwise more than OvertimeThresholdHours is
// flagged as overtime. The result is never nil.
func Classify(totals [DaysPerWeek]float64, dates [DaysPerWeek]time.Time, calendar HolidayLookup) []FlaggedDay {
	flagged := make([]FlaggedDay, 0, DaysPerWeek)

	for i, hours := range totals {
		if hours <= 0 {
			continue
		}
		d := Day(i)
		fd := FlaggedDay{Day: d.String(), Key: d.Key(), Hours: hours}
		if !dates[i].IsZero() {
			fd.Date = dates[i].Format(dateLayout)
		}

		if d.IsWeekend() {
			fd.IsWeekend = true
		} else if h, ok := lookupHoliday(calendar, dates[i]); ok {
			fd.IsHoliday = true
			fd.HolidayName = h.Name
		} else if hours <= OvertimeThresholdHours {
			continue
		}
		flagged = append(flagged, fd)
	}

	return flagged
}

func lookupHoliday(calendar HolidayLookup, date time.Time) (holiday.Holiday, bool) {
	if calendar == nil || date.IsZero() {
		return holiday.Holiday{}, false
	}
	return calendar.Lookup(date)
}
