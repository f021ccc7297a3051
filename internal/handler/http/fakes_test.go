package http

import (
	"context"

	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/domain/leave"
	"github.com/timepulse/timepulse-backend/internal/domain/timesheet"
)

type fakeAuthService struct {
	LoginFunc        func(ctx context.Context, req auth.LoginRequest, client auth.ClientInfo) (auth.TokenResponse, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error)
	LogoutFunc       func(ctx context.Context, userID, accessToken, refreshToken string) error
	MeFunc           func(ctx context.Context, authz *auth.AuthorizationContext) (auth.SessionResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, client auth.ClientInfo) (auth.TokenResponse, error) {
	return f.LoginFunc(ctx, req, client)
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	return f.RefreshTokenFunc(ctx, refreshToken)
}

func (f *fakeAuthService) Logout(ctx context.Context, userID, accessToken, refreshToken string) error {
	return f.LogoutFunc(ctx, userID, accessToken, refreshToken)
}

func (f *fakeAuthService) Me(ctx context.Context, authz *auth.AuthorizationContext) (auth.SessionResponse, error) {
	return f.MeFunc(ctx, authz)
}

type fakeLeaveService struct {
	ValidateFunc func(ctx context.Context, req leave.ValidateLeaveRequestRequest) (leave.ValidateRangeResponse, error)
	CreateFunc   func(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	ApproveFunc  func(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error)
	RejectFunc   func(ctx context.Context, req leave.RejectLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	CancelFunc   func(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error)
	GetFunc      func(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error)
	ListMyFunc   func(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error)
	ListFunc     func(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error)
	BalancesFunc func(ctx context.Context, year int) (leave.MyBalancesResponse, error)
	SetFunc      func(ctx context.Context, req leave.SetBalanceRequest) (leave.LeaveBalanceResponse, error)
}

func (f *fakeLeaveService) ValidateLeaveRequest(ctx context.Context, req leave.ValidateLeaveRequestRequest) (leave.ValidateRangeResponse, error) {
	return f.ValidateFunc(ctx, req)
}

func (f *fakeLeaveService) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return f.CreateFunc(ctx, req)
}

func (f *fakeLeaveService) ApproveLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return f.ApproveFunc(ctx, requestID)
}

func (f *fakeLeaveService) RejectLeaveRequest(ctx context.Context, req leave.RejectLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return f.RejectFunc(ctx, req)
}

func (f *fakeLeaveService) CancelLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return f.CancelFunc(ctx, requestID)
}

func (f *fakeLeaveService) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return f.GetFunc(ctx, requestID)
}

func (f *fakeLeaveService) ListMyLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	return f.ListMyFunc(ctx, filter)
}

func (f *fakeLeaveService) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	return f.ListFunc(ctx, filter)
}

func (f *fakeLeaveService) GetMyBalances(ctx context.Context, year int) (leave.MyBalancesResponse, error) {
	return f.BalancesFunc(ctx, year)
}

func (f *fakeLeaveService) SetBalance(ctx context.Context, req leave.SetBalanceRequest) (leave.LeaveBalanceResponse, error) {
	return f.SetFunc(ctx, req)
}

type fakeTimesheetService struct {
	ClassifyFunc func(ctx context.Context, req timesheet.ClassifyRequest) (timesheet.ClassifyResponse, error)
	SubmitFunc   func(ctx context.Context, req timesheet.SubmitWeeklyHoursRequest) (timesheet.WeeklyHoursResponse, error)
	GetFunc      func(ctx context.Context, id string) (timesheet.WeeklyHoursResponse, error)
	ListMyFunc   func(ctx context.Context, filter timesheet.WeeklyHoursFilter) (timesheet.ListWeeklyHoursResponse, error)
	ListFunc     func(ctx context.Context, filter timesheet.WeeklyHoursFilter) (timesheet.ListWeeklyHoursResponse, error)
	ApproveFunc  func(ctx context.Context, id string) (timesheet.WeeklyHoursResponse, error)
	RejectFunc   func(ctx context.Context, req timesheet.RejectWeeklyHoursRequest) (timesheet.WeeklyHoursResponse, error)
}

func (f *fakeTimesheetService) Classify(ctx context.Context, req timesheet.ClassifyRequest) (timesheet.ClassifyResponse, error) {
	return f.ClassifyFunc(ctx, req)
}

func (f *fakeTimesheetService) Submit(ctx context.Context, req timesheet.SubmitWeeklyHoursRequest) (timesheet.WeeklyHoursResponse, error) {
	return f.SubmitFunc(ctx, req)
}

func (f *fakeTimesheetService) GetWeeklyHours(ctx context.Context, id string) (timesheet.WeeklyHoursResponse, error) {
	return f.GetFunc(ctx, id)
}

func (f *fakeTimesheetService) ListMyWeeklyHours(ctx context.Context, filter timesheet.WeeklyHoursFilter) (timesheet.ListWeeklyHoursResponse, error) {
	return f.ListMyFunc(ctx, filter)
}

func (f *fakeTimesheetService) ListWeeklyHours(ctx context.Context, filter timesheet.WeeklyHoursFilter) (timesheet.ListWeeklyHoursResponse, error) {
	return f.ListFunc(ctx, filter)
}

func (f *fakeTimesheetService) Approve(ctx context.Context, id string) (timesheet.WeeklyHoursResponse, error) {
	return f.ApproveFunc(ctx, id)
}

func (f *fakeTimesheetService) Reject(ctx context.Context, req timesheet.RejectWeeklyHoursRequest) (timesheet.WeeklyHoursResponse, error) {
	return f.RejectFunc(ctx, req)
}
