package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/timepulse/timepulse-backend/internal/domain/leave"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `id, employee_id, tenant_id, leave_type, year, total, used, pending, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID,
		&b.EmployeeID,
		&b.TenantID,
		&b.LeaveType,
		&b.Year,
		&b.Total,
		&b.Used,
		&b.Pending,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, err
}

// GetForUpdate implements leave.LeaveBalanceRepository. The row stays locked
// until the surrounding transaction ends.
func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
		FOR UPDATE
	`
	return scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveType, year))
}

// ListByEmployeeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// Upsert implements leave.LeaveBalanceRepository. Only the total of an
// existing row changes.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balances (employee_id, tenant_id, leave_type, year, total)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type, year)
		DO UPDATE SET total = EXCLUDED.total, updated_at = NOW()
		RETURNING ` + leaveBalanceColumns

	saved, err := scanLeaveBalance(q.QueryRow(ctx, query,
		balance.EmployeeID,
		balance.TenantID,
		balance.LeaveType,
		balance.Year,
		balance.Total,
	))
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to upsert leave balance: %w", err)
	}
	return saved, nil
}

// UpdateUsage implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) UpdateUsage(ctx context.Context, balance leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances
		SET used = $1, pending = $2, updated_at = NOW()
		WHERE employee_id = $3 AND leave_type = $4 AND year = $5
	`

	tag, err := q.Exec(ctx, query, balance.Used, balance.Pending, balance.EmployeeID, balance.LeaveType, balance.Year)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
