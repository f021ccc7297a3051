package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timepulse/timepulse-backend/internal/domain/leave"
)

// RequestService holds the leave request state transitions. Every method
// expects to run inside a transaction.
type RequestService struct {
	leave.LeaveRequestRepository
	balances *BalanceService
	now      func() time.Time
}

func NewRequestService(leaveRequestRepository leave.LeaveRequestRepository, balances *BalanceService) *RequestService {
	return &RequestService{
		LeaveRequestRepository: leaveRequestRepository,
		balances:               balances,
		now:                    time.Now,
	}
}

// CheckOverlap returns an *leave.OverlapError when r intersects one of the
// employee's non-cancelled requests.
func (r *RequestService) CheckOverlap(ctx context.Context, employeeID string, dr leave.DateRange) error {
	candidates, err := r.LeaveRequestRepository.ListOverlapCandidates(ctx, employeeID, dr)
	if err != nil {
		return fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if existing, found := leave.FindOverlap(dr, candidates); found {
		return &leave.OverlapError{Existing: existing}
	}
	return nil
}

// CreateRequest locks the employee, re-checks overlap, reserves balance and
// inserts the request. req must already be validated.
func (r *RequestService) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest, attachmentPath *string) (leave.LeaveRequest, error) {
	if err := r.LeaveRequestRepository.LockEmployee(ctx, req.EmployeeID); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to lock employee: %w", err)
	}

	dr := req.Range()
	if err := r.CheckOverlap(ctx, req.EmployeeID, dr); err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := eachYear(dr, func(year, days int) error {
		return r.balances.Reserve(ctx, req.EmployeeID, req.LeaveType, year, days)
	}); err != nil {
		return leave.LeaveRequest{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	now := r.now()
	request := leave.LeaveRequest{
		ID:             id.String(),
		EmployeeID:     req.EmployeeID,
		EmployeeName:   req.EmployeeName,
		TenantID:       req.TenantID,
		LeaveType:      req.LeaveType,
		StartDate:      dr.Start,
		EndDate:        dr.End,
		TotalDays:      req.Weekdays(),
		Reason:         req.Reason,
		ApproverID:     req.ApproverID,
		AttachmentName: req.AttachmentName,
		AttachmentPath: attachmentPath,
		Status:         leave.LeaveRequestStatusPending,
		SubmittedAt:    now,
	}

	created, err := r.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *RequestService) Approve(ctx context.Context, request leave.LeaveRequest, approverID string) (leave.LeaveRequest, error) {
	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := r.now()
	request.Status = leave.LeaveRequestStatusApproved
	request.DecidedBy = &approverID
	request.DecidedAt = &now

	if err := r.LeaveRequestRepository.UpdateDecision(ctx, request); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := eachYear(request.Range(), func(year, days int) error {
		return r.balances.Commit(ctx, request.EmployeeID, request.LeaveType, year, days)
	}); err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

func (r *RequestService) Reject(ctx context.Context, request leave.LeaveRequest, approverID, reason string) (leave.LeaveRequest, error) {
	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := r.now()
	request.Status = leave.LeaveRequestStatusRejected
	request.DecidedBy = &approverID
	request.DecidedAt = &now
	request.RejectionReason = &reason

	if err := r.LeaveRequestRepository.UpdateDecision(ctx, request); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := eachYear(request.Range(), func(year, days int) error {
		return r.balances.Release(ctx, request.EmployeeID, request.LeaveType, year, days)
	}); err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// Cancel withdraws a pending request, which drops it from later overlap checks.
func (r *RequestService) Cancel(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := r.now()
	request.Status = leave.LeaveRequestStatusCancelled
	request.CancelledAt = &now

	if err := r.LeaveRequestRepository.UpdateDecision(ctx, request); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := eachYear(request.Range(), func(year, days int) error {
		return r.balances.Release(ctx, request.EmployeeID, request.LeaveType, year, days)
	}); err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// eachYear applies a balance move to every calendar year the range touches.
func eachYear(dr leave.DateRange, move func(year, days int) error) error {
	for _, share := range dr.SplitByYear() {
		if err := move(share.Year, share.Weekdays); err != nil {
			return err
		}
	}
	return nil
}
