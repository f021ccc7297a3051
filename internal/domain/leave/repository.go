package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, tenantID, id string) (LeaveRequest, error)
	List(ctx context.Context, tenantID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// ListOverlapCandidates returns the employee's non-cancelled requests intersecting r.
	ListOverlapCandidates(ctx context.Context, employeeID string, r DateRange) ([]LeaveRequest, error)
	// LockEmployee serializes leave writes for one employee until the transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error
	// UpdateDecision persists status and audit fields, only if the stored status is still pending.
	UpdateDecision(ctx context.Context, request LeaveRequest) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	GetForUpdate(ctx context.Context, employeeID string, leaveType LeaveType, year int) (LeaveBalance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	Upsert(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	UpdateUsage(ctx context.Context, balance LeaveBalance) error
}
