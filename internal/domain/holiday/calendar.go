package holiday

import (
	"fmt"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

type Holiday struct {
	Date time.Time `json:"-"`
	Name string    `json:"name"`
}

// DateString returns the holiday date as YYYY-MM-DD.
func (h Holiday) DateString() string {
	return h.Date.Format(dateLayout)
}

// Calendar is an ordered set of holidays looked up by exact calendar date.
type Calendar struct {
	holidays []Holiday
	byDate   map[string]Holiday
}

// NewCalendar builds a calendar sorted by date. Two entries on the same date
// are rejected.
func NewCalendar(holidays []Holiday) (*Calendar, error) {
	sorted := make([]Holiday, len(holidays))
	copy(sorted, holidays)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	byDate := make(map[string]Holiday, len(sorted))
	for i, h := range sorted {
		if h.Name == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingHolidayName, h.DateString())
		}
		h.Date = truncateDay(h.Date)
		sorted[i] = h
		key := h.DateString()
		if _, dup := byDate[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHoliday, key)
		}
		byDate[key] = h
	}

	return &Calendar{holidays: sorted, byDate: byDate}, nil
}

// Lookup returns the holiday falling on date's calendar day, if any.
func (c *Calendar) Lookup(date time.Time) (Holiday, bool) {
	if c == nil {
		return Holiday{}, false
	}
	h, ok := c.byDate[date.Format(dateLayout)]
	return h, ok
}

// All returns every holiday in date order.
func (c *Calendar) All() []Holiday {
	out := make([]Holiday, len(c.holidays))
	copy(out, c.holidays)
	return out
}

// InYear returns the holidays of one year in date order.
func (c *Calendar) InYear(year int) []Holiday {
	var out []Holiday
	for _, h := range c.holidays {
		if h.Date.Year() == year {
			out = append(out, h)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
