package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) DateRange {
	return DateRange{Start: d(start), End: d(end)}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		valid    bool
		message  string
		weekdays int
	}{
		{"end before start", "2024-10-14", "2024-10-11", false, MessageEndBeforeStart, 0},
		{"single saturday", "2024-10-12", "2024-10-12", false, MessageWeekendOnly, 0},
		{"single sunday", "2024-10-13", "2024-10-13", false, MessageWeekendOnly, 0},
		{"saturday to sunday", "2024-10-12", "2024-10-13", false, MessageWeekendOnly, 0},
		{"single weekday", "2024-10-10", "2024-10-10", true, MessageValidRange, 1},
		{"thursday to saturday", "2024-10-10", "2024-10-12", true, MessageValidRange, 2},
		{"saturday to monday", "2024-10-12", "2024-10-14", true, MessageValidRange, 1},
		{"two weeks", "2024-10-14", "2024-10-27", true, MessageValidRange, 10},
		{"across new year", "2024-12-30", "2025-01-03", true, MessageValidRange, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRange(d(tt.start), d(tt.end))
			assert.Equal(t, tt.valid, got.IsValid)
			assert.Equal(t, tt.message, got.Message)
			assert.Equal(t, tt.weekdays, got.Weekdays)
		})
	}
}

func TestValidateRange_EndBeforeStartAlwaysInvalid(t *testing.T) {
	base := d("2024-01-01")
	for i := 0; i < 60; i++ {
		start := base.AddDate(0, 0, i)
		for gap := 1; gap <= 10; gap++ {
			got := ValidateRange(start, start.AddDate(0, 0, -gap))
			require.False(t, got.IsValid)
			require.Equal(t, MessageEndBeforeStart, got.Message)
		}
	}
}

func TestCountWeekdays_FullWeekIsFive(t *testing.T) {
	base := d("2024-01-01")
	for i := 0; i < 366; i++ {
		start := base.AddDate(0, 0, i)
		require.Equal(t, 5, CountWeekdays(start, start.AddDate(0, 0, 6)), "week starting %s", start.Format(dateLayout))
	}
}

func TestCountWeekdays_IgnoresClock(t *testing.T) {
	start := time.Date(2024, 10, 10, 23, 0, 0, 0, time.UTC)
	end := time.Date(2024, 10, 11, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, CountWeekdays(start, end))
	assert.Equal(t, 0, CountWeekdays(end, start))
}

func TestOverlaps_LiteralCases(t *testing.T) {
	existing := rng("2024-10-10", "2024-10-20")

	tests := []struct {
		name string
		new  DateRange
		want bool
	}{
		{"new start inside existing", rng("2024-10-15", "2024-10-25"), true},
		{"new end inside existing", rng("2024-10-01", "2024-10-10"), true},
		{"new contains existing", rng("2024-10-01", "2024-10-31"), true},
		{"existing contains new", rng("2024-10-12", "2024-10-13"), true},
		{"touching on last day", rng("2024-10-20", "2024-10-22"), true},
		{"day before", rng("2024-10-01", "2024-10-09"), false},
		{"day after", rng("2024-10-21", "2024-10-25"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.new.Overlaps(existing))
		})
	}
}

func TestOverlaps_MatchesThreeClauseForm(t *testing.T) {
	within := func(x time.Time, r DateRange) bool { return !x.Before(r.Start) && !x.After(r.End) }
	literal := func(n, e DateRange) bool {
		return within(n.Start, e) || within(n.End, e) || (!n.Start.After(e.Start) && !n.End.Before(e.End))
	}

	base := d("2024-10-01")
	var ranges []DateRange
	for s := 0; s < 8; s++ {
		for l := 0; l < 5; l++ {
			ranges = append(ranges, DateRange{Start: base.AddDate(0, 0, s), End: base.AddDate(0, 0, s+l)})
		}
	}
	for _, a := range ranges {
		for _, b := range ranges {
			require.Equal(t, literal(a, b), a.Overlaps(b))
			require.Equal(t, a.Overlaps(b), b.Overlaps(a), "overlap must be symmetric")
		}
	}
}

func TestHasOverlap_Example(t *testing.T) {
	a := LeaveRequest{ID: "a", StartDate: d("2024-10-10"), EndDate: d("2024-10-12"), Status: LeaveRequestStatusPending}
	b := rng("2024-10-12", "2024-10-14")

	assert.True(t, HasOverlap(b, []LeaveRequest{a}))

	got, ok := FindOverlap(b, []LeaveRequest{a})
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestHasOverlap_SkipsCancelled(t *testing.T) {
	existing := []LeaveRequest{
		{ID: "cancelled", StartDate: d("2024-10-10"), EndDate: d("2024-10-12"), Status: LeaveRequestStatusCancelled},
		{ID: "approved", StartDate: d("2024-11-01"), EndDate: d("2024-11-05"), Status: LeaveRequestStatusApproved},
	}

	assert.False(t, HasOverlap(rng("2024-10-11", "2024-10-11"), existing))
	assert.True(t, HasOverlap(rng("2024-11-05", "2024-11-06"), existing))

	rejected := []LeaveRequest{{ID: "rejected", StartDate: d("2024-10-10"), EndDate: d("2024-10-12"), Status: LeaveRequestStatusRejected}}
	assert.True(t, HasOverlap(rng("2024-10-11", "2024-10-11"), rejected))
}

func TestHasOverlap_ReleasedAfterCancel(t *testing.T) {
	first := LeaveRequest{ID: "first", StartDate: d("2024-10-14"), EndDate: d("2024-10-18"), Status: LeaveRequestStatusPending}
	requests := []LeaveRequest{first}
	retry := rng("2024-10-16", "2024-10-17")

	require.True(t, HasOverlap(retry, requests))

	requests[0].Status = LeaveRequestStatusCancelled
	assert.False(t, HasOverlap(retry, requests))
	assert.False(t, HasOverlap(retry, requests), "re-validation after cancel is idempotent")
}

func TestOverlapError(t *testing.T) {
	err := &OverlapError{Existing: LeaveRequest{Status: LeaveRequestStatusApproved, StartDate: d("2024-10-10"), EndDate: d("2024-10-12")}}

	assert.ErrorIs(t, err, ErrOverlappingLeave)
	assert.Contains(t, err.Error(), "approved request from 2024-10-10 to 2024-10-12")
	assert.Equal(t, OverlapInfo{Status: LeaveRequestStatusApproved, StartDate: "2024-10-10", EndDate: "2024-10-12"}, err.Info())
}

func TestSplitByYear(t *testing.T) {
	tests := []struct {
		name string
		r    DateRange
		want []YearShare
	}{
		{"single year", rng("2024-10-14", "2024-10-18"), []YearShare{{Year: 2024, Weekdays: 5}}},
		{"crosses new year", rng("2024-12-30", "2025-01-03"), []YearShare{{Year: 2024, Weekdays: 2}, {Year: 2025, Weekdays: 3}}},
		{"weekend-only year left out", rng("2022-12-31", "2023-01-02"), []YearShare{{Year: 2023, Weekdays: 1}}},
		{"three years", rng("2024-12-31", "2026-01-01"), []YearShare{{Year: 2024, Weekdays: 1}, {Year: 2025, Weekdays: 261}, {Year: 2026, Weekdays: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.SplitByYear()
			assert.Equal(t, tt.want, got)

			total := 0
			for _, s := range got {
				total += s.Weekdays
			}
			assert.Equal(t, CountWeekdays(tt.r.Start, tt.r.End), total)
		})
	}
}
