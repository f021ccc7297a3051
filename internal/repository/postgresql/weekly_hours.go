package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/timepulse/timepulse-backend/internal/domain/timesheet"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
)

// uniqueViolation is the SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

type weeklyHoursRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyHoursRepository(db *database.DB) timesheet.WeeklyHoursRepository {
	return &weeklyHoursRepositoryImpl{db: db}
}

const weeklyHoursColumns = `
	wh.id, wh.employee_id, wh.employee_name, wh.tenant_id, wh.client_id, wh.week_start, wh.week_end,
	wh.sat_hours, wh.sun_hours, wh.mon_hours, wh.tue_hours, wh.wed_hours, wh.thu_hours, wh.fri_hours,
	wh.overtime_comment, wh.overtime_days, wh.status, wh.decided_by, wh.decided_at, wh.rejection_reason,
	wh.submitted_at, wh.created_at, wh.updated_at`

func scanWeeklyHours(row pgx.Row) (timesheet.WeeklyHoursEntry, error) {
	var e timesheet.WeeklyHoursEntry
	err := row.Scan(
		&e.ID,
		&e.EmployeeID,
		&e.EmployeeName,
		&e.TenantID,
		&e.ClientID,
		&e.WeekStart,
		&e.WeekEnd,
		&e.DailyHours.Sat,
		&e.DailyHours.Sun,
		&e.DailyHours.Mon,
		&e.DailyHours.Tue,
		&e.DailyHours.Wed,
		&e.DailyHours.Thu,
		&e.DailyHours.Fri,
		&e.OvertimeComment,
		&e.OvertimeDays,
		&e.Status,
		&e.DecidedBy,
		&e.DecidedAt,
		&e.RejectionReason,
		&e.SubmittedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return timesheet.WeeklyHoursEntry{}, timesheet.ErrWeeklyHoursNotFound
	}
	return e, err
}

// Create implements timesheet.WeeklyHoursRepository.
func (r *weeklyHoursRepositoryImpl) Create(ctx context.Context, e timesheet.WeeklyHoursEntry) (timesheet.WeeklyHoursEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH wh AS (
			INSERT INTO weekly_hours (
				id, employee_id, employee_name, tenant_id, client_id, week_start, week_end,
				sat_hours, sun_hours, mon_hours, tue_hours, wed_hours, thu_hours, fri_hours,
				overtime_comment, overtime_days, status, submitted_at
			)
			VALUES (
				$1, $2,
				COALESCE(NULLIF($3, ''), (SELECT u.employee_name FROM users u WHERE u.employee_id = $2 LIMIT 1), ''),
				$4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
			)
			RETURNING *
		)
		SELECT ` + weeklyHoursColumns + ` FROM wh
	`

	h := e.DailyHours
	created, err := scanWeeklyHours(q.QueryRow(ctx, query,
		e.ID, e.EmployeeID, e.EmployeeName, e.TenantID, e.ClientID, e.WeekStart, e.WeekEnd,
		h.Sat, h.Sun, h.Mon, h.Tue, h.Wed, h.Thu, h.Fri,
		e.OvertimeComment, overtimeDaysParam(e.OvertimeDays), e.Status, e.SubmittedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return timesheet.WeeklyHoursEntry{}, timesheet.ErrWeekAlreadySubmitted
		}
		return timesheet.WeeklyHoursEntry{}, fmt.Errorf("failed to insert weekly hours: %w", err)
	}
	return created, nil
}

// Update implements timesheet.WeeklyHoursRepository.
func (r *weeklyHoursRepositoryImpl) Update(ctx context.Context, e timesheet.WeeklyHoursEntry) (timesheet.WeeklyHoursEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE weekly_hours wh
		SET sat_hours = $1, sun_hours = $2, mon_hours = $3, tue_hours = $4,
			wed_hours = $5, thu_hours = $6, fri_hours = $7,
			overtime_comment = $8, overtime_days = $9, status = $10, submitted_at = $11,
			decided_by = NULL, decided_at = NULL, rejection_reason = NULL,
			updated_at = NOW()
		WHERE wh.id = $12 AND wh.tenant_id = $13
		RETURNING ` + weeklyHoursColumns

	h := e.DailyHours
	updated, err := scanWeeklyHours(q.QueryRow(ctx, query,
		h.Sat, h.Sun, h.Mon, h.Tue, h.Wed, h.Thu, h.Fri,
		e.OvertimeComment, overtimeDaysParam(e.OvertimeDays), e.Status, e.SubmittedAt,
		e.ID, e.TenantID,
	))
	if err != nil {
		return timesheet.WeeklyHoursEntry{}, fmt.Errorf("failed to update weekly hours: %w", err)
	}
	return updated, nil
}

// GetByID implements timesheet.WeeklyHoursRepository.
func (r *weeklyHoursRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (timesheet.WeeklyHoursEntry, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + weeklyHoursColumns + ` FROM weekly_hours wh WHERE wh.id = $1 AND wh.tenant_id = $2`
	return scanWeeklyHours(q.QueryRow(ctx, query, id, tenantID))
}

// GetByWeek implements timesheet.WeeklyHoursRepository.
func (r *weeklyHoursRepositoryImpl) GetByWeek(ctx context.Context, employeeID, clientID string, weekStart time.Time) (timesheet.WeeklyHoursEntry, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + weeklyHoursColumns + `
		FROM weekly_hours wh
		WHERE wh.employee_id = $1 AND wh.client_id = $2 AND wh.week_start = $3
		FOR UPDATE
	`
	return scanWeeklyHours(q.QueryRow(ctx, query, employeeID, clientID, weekStart))
}

// List implements timesheet.WeeklyHoursRepository.
func (r *weeklyHoursRepositoryImpl) List(ctx context.Context, tenantID string, filter timesheet.WeeklyHoursFilter) ([]timesheet.WeeklyHoursEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"wh.tenant_id = $1"}
	args := []interface{}{tenantID}
	paramCount := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		paramCount++
		whereClauses = append(whereClauses, fmt.Sprintf("wh.employee_id = $%d", paramCount))
		args = append(args, *filter.EmployeeID)
	}

	if filter.ClientID != nil && *filter.ClientID != "" {
		paramCount++
		whereClauses = append(whereClauses, fmt.Sprintf("wh.client_id = $%d", paramCount))
		args = append(args, *filter.ClientID)
	}

	if filter.Status != nil && *filter.Status != "" {
		paramCount++
		whereClauses = append(whereClauses, fmt.Sprintf("wh.status = $%d", paramCount))
		args = append(args, *filter.Status)
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM weekly_hours wh WHERE %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count weekly hours: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM weekly_hours wh
		WHERE %s
		ORDER BY wh.week_start DESC, wh.id DESC
		LIMIT $%d OFFSET $%d
	`, weeklyHoursColumns, whereClause, paramCount+1, paramCount+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query weekly hours: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.WeeklyHoursEntry
	for rows.Next() {
		e, err := scanWeeklyHours(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan weekly hours: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// UpdateDecision implements timesheet.WeeklyHoursRepository.
func (r *weeklyHoursRepositoryImpl) UpdateDecision(ctx context.Context, e timesheet.WeeklyHoursEntry) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE weekly_hours
		SET status = $1, decided_by = $2, decided_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND tenant_id = $6 AND status = 'submitted'
	`

	tag, err := q.Exec(ctx, query, e.Status, e.DecidedBy, e.DecidedAt, e.RejectionReason, e.ID, e.TenantID)
	if err != nil {
		return fmt.Errorf("failed to update weekly hours decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrWeeklyHoursAlreadyProcessed
	}
	return nil
}

// overtimeDaysParam keeps the jsonb column an array rather than null.
func overtimeDaysParam(days []timesheet.FlaggedDay) []timesheet.FlaggedDay {
	if days == nil {
		return []timesheet.FlaggedDay{}
	}
	return days
}
