package leave

import (
	"context"
)

// LeaveService reads the caller's auth.AuthorizationContext from ctx.
type LeaveService interface {
	// Request
	ValidateLeaveRequest(ctx context.Context, req ValidateLeaveRequestRequest) (ValidateRangeResponse, error)
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, req RejectLeaveRequestRequest) (LeaveRequestResponse, error)
	CancelLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	// Balance
	GetMyBalances(ctx context.Context, year int) (MyBalancesResponse, error)
	SetBalance(ctx context.Context, req SetBalanceRequest) (LeaveBalanceResponse, error)
}
