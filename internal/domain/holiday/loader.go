package holiday

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is the on-disk form of a holiday.
//
//	holidays:
//	  - date: "2025-01-20"
//	    name: Martin Luther King Jr. Day
type Entry struct {
	Date string `yaml:"date" json:"date"`
	Name string `yaml:"name" json:"name"`
}

type file struct {
	Holidays []Entry `yaml:"holidays"`
}

// Load returns the calendar at path, or the compiled-in calendar when path is empty.
func Load(path string) (*Calendar, error) {
	if path == "" {
		slog.Info("using compiled-in holiday calendar")
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open holiday calendar: %w", err)
	}
	defer f.Close()

	cal, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("holiday calendar %s: %w", path, err)
	}
	slog.Info("loaded holiday calendar", "path", path, "holidays", len(cal.holidays))
	return cal, nil
}

// Decode reads a YAML calendar document.
func Decode(r io.Reader) (*Calendar, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return fromEntries(doc.Holidays)
}

func fromEntries(entries []Entry) (*Calendar, error) {
	holidays := make([]Holiday, 0, len(entries))
	for _, e := range entries {
		d, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHolidayDate, e.Date)
		}
		holidays = append(holidays, Holiday{Date: d, Name: e.Name})
	}
	return NewCalendar(holidays)
}
