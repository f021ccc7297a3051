package holiday

// defaultHolidays is the compiled-in calendar used when no calendar file is
// configured. It covers 2024 and 2025 only.
var defaultHolidays = []struct {
	date string
	name string
}{
	{"2024-01-01", "New Year's Day"},
	{"2024-01-15", "Martin Luther King Jr. Day"},
	{"2024-02-19", "Presidents' Day"},
	{"2024-05-27", "Memorial Day"},
	{"2024-06-19", "Juneteenth"},
	{"2024-07-04", "Independence Day"},
	{"2024-09-02", "Labor Day"},
	{"2024-10-14", "Columbus Day"},
	{"2024-11-11", "Veterans Day"},
	{"2024-11-28", "Thanksgiving Day"},
	{"2024-12-25", "Christmas Day"},
	{"2025-01-01", "New Year's Day"},
	{"2025-01-20", "Martin Luther King Jr. Day"},
	{"2025-02-17", "Presidents' Day"},
	{"2025-05-26", "Memorial Day"},
	{"2025-06-19", "Juneteenth"},
	{"2025-07-04", "Independence Day"},
	{"2025-09-01", "Labor Day"},
	{"2025-10-13", "Columbus Day"},
	{"2025-11-11", "Veterans Day"},
	{"2025-11-27", "Thanksgiving Day"},
	{"2025-12-25", "Christmas Day"},
}

// Default returns the compiled-in calendar.
func Default() *Calendar {
	entries := make([]Entry, len(defaultHolidays))
	for i, h := range defaultHolidays {
		entries[i] = Entry{Date: h.date, Name: h.name}
	}
	cal, err := fromEntries(entries)
	if err != nil {
		panic("holiday: invalid compiled-in calendar: " + err.Error())
	}
	return cal
}
