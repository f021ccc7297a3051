package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timepulse/timepulse-backend/internal/domain/holiday"
	"github.com/timepulse/timepulse-backend/internal/domain/timesheet"
	"github.com/timepulse/timepulse-backend/internal/repository/postgresql"
)

func newWeeklyHours(t *testing.T, tenantID, employeeID, clientID string) timesheet.WeeklyHoursEntry {
	t.Helper()
	start := mustDate(t, "2024-10-19")
	hours := timesheet.DailyHours{Sat: 3, Mon: 9, Tue: 8}
	comment := "release weekend"
	submittedAt := time.Now().UTC()
	return timesheet.WeeklyHoursEntry{
		ID:              uuid.NewString(),
		EmployeeID:      employeeID,
		TenantID:        tenantID,
		ClientID:        clientID,
		WeekStart:       start,
		WeekEnd:         start.AddDate(0, 0, 6),
		DailyHours:      hours,
		OvertimeComment: &comment,
		OvertimeDays:    timesheet.Classify(hours.Array(), timesheet.WeekDates(start), holiday.Default()),
		Status:          timesheet.WeeklyHoursStatusSubmitted,
		SubmittedAt:     &submittedAt,
	}
}

func TestWeeklyHoursRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewWeeklyHoursRepository(setup.DB)

	tenantID, employeeID := uuid.NewString(), uuid.NewString()
	setup.CreateUser(t, tenantID, employeeID, "Sam Lee", "sam@example.com", "", "employee")

	created, err := repo.Create(ctx, newWeeklyHours(t, tenantID, employeeID, "acme"))
	require.NoError(t, err)
	assert.Equal(t, "Sam Lee", created.EmployeeName)
	assert.Equal(t, 9.0, created.DailyHours.Mon)

	require.Len(t, created.OvertimeDays, 2)
	assert.Equal(t, "Saturday", created.OvertimeDays[0].Day)
	assert.True(t, created.OvertimeDays[0].IsWeekend)
	assert.Equal(t, "Monday", created.OvertimeDays[1].Day)

	got, err := repo.GetByWeek(ctx, employeeID, "acme", mustDate(t, "2024-10-19"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByWeek(ctx, employeeID, "other-client", mustDate(t, "2024-10-19"))
	assert.ErrorIs(t, err, timesheet.ErrWeeklyHoursNotFound)

	_, err = repo.GetByID(ctx, uuid.NewString(), created.ID)
	assert.ErrorIs(t, err, timesheet.ErrWeeklyHoursNotFound)
}

func TestWeeklyHoursRepository_NilOvertimeDaysStoredAsEmptyArray(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewWeeklyHoursRepository(setup.DB)

	entry := newWeeklyHours(t, uuid.NewString(), uuid.NewString(), "acme")
	entry.DailyHours = timesheet.DailyHours{Mon: 8}
	entry.OvertimeComment = nil
	entry.OvertimeDays = nil
	entry.Status = timesheet.WeeklyHoursStatusDraft

	created, err := repo.Create(ctx, entry)
	require.NoError(t, err)
	assert.NotNil(t, created.OvertimeDays)
	assert.Empty(t, created.OvertimeDays)
}

func TestWeeklyHoursRepository_UpdateAndDecision(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewWeeklyHoursRepository(setup.DB)

	tenantID, employeeID, approverID := uuid.NewString(), uuid.NewString(), uuid.NewString()
	created, err := repo.Create(ctx, newWeeklyHours(t, tenantID, employeeID, "acme"))
	require.NoError(t, err)

	now := time.Now().UTC()
	reason := "missing client code"
	created.Status = timesheet.WeeklyHoursStatusRejected
	created.DecidedBy = &approverID
	created.DecidedAt = &now
	created.RejectionReason = &reason
	require.NoError(t, repo.UpdateDecision(ctx, created))

	err = repo.UpdateDecision(ctx, created)
	assert.ErrorIs(t, err, timesheet.ErrWeeklyHoursAlreadyProcessed)

	// A rejected week can be resubmitted; the previous decision is cleared.
	created.DailyHours = timesheet.DailyHours{Mon: 8, Tue: 8}
	created.OvertimeComment = nil
	created.OvertimeDays = nil
	created.Status = timesheet.WeeklyHoursStatusSubmitted
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, timesheet.WeeklyHoursStatusSubmitted, updated.Status)
	assert.Nil(t, updated.DecidedBy)
	assert.Nil(t, updated.RejectionReason)
	assert.Equal(t, 16.0, updated.DailyHours.Total())
}

func TestWeeklyHoursRepository_List(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewWeeklyHoursRepository(setup.DB)

	tenantID, employeeID := uuid.NewString(), uuid.NewString()
	_, err := repo.Create(ctx, newWeeklyHours(t, tenantID, employeeID, "acme"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newWeeklyHours(t, tenantID, employeeID, "globex"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newWeeklyHours(t, tenantID, uuid.NewString(), "acme"))
	require.NoError(t, err)

	client := "acme"
	filter := timesheet.WeeklyHoursFilter{EmployeeID: &employeeID, ClientID: &client}
	require.NoError(t, filter.Validate())

	entries, total, err := repo.List(ctx, tenantID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, "acme", entries[0].ClientID)
}

func TestWeeklyHoursRepository_DuplicateWeekConflicts(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewWeeklyHoursRepository(setup.DB)

	tenantID, employeeID := uuid.NewString(), uuid.NewString()
	_, err := repo.Create(ctx, newWeeklyHours(t, tenantID, employeeID, "acme"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newWeeklyHours(t, tenantID, employeeID, "acme"))
	assert.ErrorIs(t, err, timesheet.ErrWeekAlreadySubmitted)
}
