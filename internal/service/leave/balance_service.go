package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timepulse/timepulse-backend/internal/domain/leave"
)

// BalanceService moves days between the pending and used buckets of a
// leave balance. Callers run it inside a transaction.
type BalanceService struct {
	leave.LeaveBalanceRepository
}

func NewBalanceService(leaveBalanceRepository leave.LeaveBalanceRepository) *BalanceService {
	return &BalanceService{LeaveBalanceRepository: leaveBalanceRepository}
}

// Reserve adds days to pending after checking the remaining balance.
func (b *BalanceService) Reserve(ctx context.Context, employeeID string, leaveType leave.LeaveType, year, days int) error {
	balance, err := b.LeaveBalanceRepository.GetForUpdate(ctx, employeeID, leaveType, year)
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	if balance.Remaining() < days {
		return leave.ErrInsufficientBalance
	}

	balance.Pending += days
	if err := b.LeaveBalanceRepository.UpdateUsage(ctx, balance); err != nil {
		return fmt.Errorf("failed to reserve balance: %w", err)
	}

	slog.Info("Reserved leave balance",
		"employee_id", employeeID,
		"leave_type", leaveType,
		"year", year,
		"days", days,
		"remaining", balance.Remaining(),
	)
	return nil
}

// Commit turns pending days into used days when a request is approved.
func (b *BalanceService) Commit(ctx context.Context, employeeID string, leaveType leave.LeaveType, year, days int) error {
	balance, err := b.LeaveBalanceRepository.GetForUpdate(ctx, employeeID, leaveType, year)
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	balance.Pending = releasePending(balance, days)
	balance.Used += days
	if err := b.LeaveBalanceRepository.UpdateUsage(ctx, balance); err != nil {
		return fmt.Errorf("failed to commit balance: %w", err)
	}

	slog.Info("Committed leave balance", "employee_id", employeeID, "leave_type", leaveType, "year", year, "days", days)
	return nil
}

// Release drops pending days when a request is rejected or cancelled.
func (b *BalanceService) Release(ctx context.Context, employeeID string, leaveType leave.LeaveType, year, days int) error {
	balance, err := b.LeaveBalanceRepository.GetForUpdate(ctx, employeeID, leaveType, year)
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}

	balance.Pending = releasePending(balance, days)
	if err := b.LeaveBalanceRepository.UpdateUsage(ctx, balance); err != nil {
		return fmt.Errorf("failed to release balance: %w", err)
	}

	slog.Info("Released leave balance", "employee_id", employeeID, "leave_type", leaveType, "year", year, "days", days)
	return nil
}

func releasePending(balance leave.LeaveBalance, days int) int {
	pending := balance.Pending - days
	if pending < 0 {
		slog.Warn("Pending leave went negative, resetting to zero",
			"employee_id", balance.EmployeeID,
			"leave_type", balance.LeaveType,
			"year", balance.Year,
			"pending", balance.Pending,
			"days", days,
		)
		return 0
	}
	return pending
}
