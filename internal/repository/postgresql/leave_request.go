package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/timepulse/timepulse-backend/internal/domain/leave"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.employee_name, lr.tenant_id, lr.leave_type,
	lr.start_date, lr.end_date, lr.total_days, lr.reason, lr.approver_id,
	lr.attachment_name, lr.attachment_path, lr.status, lr.decided_by, lr.decided_at,
	lr.rejection_reason, lr.cancelled_at, lr.submitted_at, lr.created_at, lr.updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.EmployeeName,
		&lr.TenantID,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.TotalDays,
		&lr.Reason,
		&lr.ApproverID,
		&lr.AttachmentName,
		&lr.AttachmentPath,
		&lr.Status,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.RejectionReason,
		&lr.CancelledAt,
		&lr.SubmittedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()
	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository. An empty employee name is
// filled from the user record.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH lr AS (
			INSERT INTO leave_requests (
				id, employee_id, employee_name, tenant_id, leave_type, start_date, end_date,
				total_days, reason, approver_id, attachment_name, attachment_path, status, submitted_at
			)
			VALUES (
				$1, $2,
				COALESCE(NULLIF($3, ''), (SELECT u.employee_name FROM users u WHERE u.employee_id = $2 LIMIT 1), ''),
				$4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
			)
			RETURNING *
		)
		SELECT ` + leaveRequestColumns + ` FROM lr
	`

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.EmployeeName,
		request.TenantID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.TotalDays,
		request.Reason,
		request.ApproverID,
		request.AttachmentName,
		request.AttachmentPath,
		request.Status,
		request.SubmittedAt,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests lr WHERE lr.id = $1 AND lr.tenant_id = $2`
	return scanLeaveRequest(q.QueryRow(ctx, query, id, tenantID))
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, tenantID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"lr.tenant_id = $1"}
	args := []interface{}{tenantID}
	paramCount := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		paramCount++
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", paramCount))
		args = append(args, *filter.EmployeeID)
	}

	if filter.Status != nil && *filter.Status != "" {
		paramCount++
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", paramCount))
		args = append(args, *filter.Status)
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leave_requests lr WHERE %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests lr
		WHERE %s
		ORDER BY lr.submitted_at DESC, lr.id DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, whereClause, paramCount+1, paramCount+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan leave requests: %w", err)
	}

	return requests, total, nil
}

// ListOverlapCandidates implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListOverlapCandidates(ctx context.Context, employeeID string, dr leave.DateRange) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
			AND lr.status <> 'cancelled'
			AND lr.start_date <= $3
			AND lr.end_date >= $2
		ORDER BY lr.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, dr.Start, dr.End)
	if err != nil {
		return nil, err
	}
	return collectLeaveRequests(rows)
}

// LockEmployee implements leave.LeaveRequestRepository. The lock is released
// when the surrounding transaction ends.
func (r *leaveRequestRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('leave:' || $1::text))`, employeeID)
	return err
}

// UpdateDecision implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
			decided_by = $2,
			decided_at = $3,
			rejection_reason = $4,
			cancelled_at = $5,
			updated_at = NOW()
		WHERE id = $6 AND tenant_id = $7 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query,
		request.Status,
		request.DecidedBy,
		request.DecidedAt,
		request.RejectionReason,
		request.CancelledAt,
		request.ID,
		request.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	return nil
}
