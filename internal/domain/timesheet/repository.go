package timesheet

import (
	"context"
	"time"
)

// WeeklyHoursRepository - interface for weekly_hours table
type WeeklyHoursRepository interface {
	Create(ctx context.Context, entry WeeklyHoursEntry) (WeeklyHoursEntry, error)
	// Update overwrites hours, overtime fields and status of an existing entry.
	Update(ctx context.Context, entry WeeklyHoursEntry) (WeeklyHoursEntry, error)
	GetByID(ctx context.Context, tenantID, id string) (WeeklyHoursEntry, error)
	// GetByWeek locks and returns the employee's entry for one client and week.
	GetByWeek(ctx context.Context, employeeID, clientID string, weekStart time.Time) (WeeklyHoursEntry, error)
	List(ctx context.Context, tenantID string, filter WeeklyHoursFilter) ([]WeeklyHoursEntry, int64, error)
	// UpdateDecision persists the decision only if the stored status is still submitted.
	UpdateDecision(ctx context.Context, entry WeeklyHoursEntry) error
}
