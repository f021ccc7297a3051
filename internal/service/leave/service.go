package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/domain/leave"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
	"github.com/timepulse/timepulse-backend/internal/service/file"
)

const maxAttachmentSize = 5 << 20

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	requestService *RequestService
	balanceService *BalanceService
	fileService    file.FileService
	now            func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	fileService file.FileService,
) leave.LeaveService {
	balanceService := NewBalanceService(leaveBalanceRepository)
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		requestService:         NewRequestService(leaveRequestRepository, balanceService),
		balanceService:         balanceService,
		fileService:            fileService,
		now:                    time.Now,
	}
}

func authorize(ctx context.Context, perm auth.Permission) (*auth.AuthorizationContext, error) {
	authz, ok := auth.FromContext(ctx)
	if !ok || !authz.Has(perm) {
		return nil, auth.ErrPermissionDenied
	}
	return authz, nil
}

// ValidateLeaveRequest implements leave.LeaveService. It is a dry run: date
// rule failures come back in the response body, not as errors.
func (l *LeaveServiceImpl) ValidateLeaveRequest(ctx context.Context, req leave.ValidateLeaveRequestRequest) (leave.ValidateRangeResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveCreate)
	if err != nil {
		return leave.ValidateRangeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.ValidateRangeResponse{}, err
	}

	dr := req.Range()
	result := leave.ValidateRange(dr.Start, dr.End)
	response := leave.ValidateRangeResponse{
		IsValid:   result.IsValid,
		Message:   result.Message,
		TotalDays: result.Weekdays,
	}
	if !result.IsValid {
		return response, nil
	}

	err = l.requestService.CheckOverlap(ctx, authz.EmployeeID, dr)
	var overlap *leave.OverlapError
	if errors.As(err, &overlap) {
		info := overlap.Info()
		response.IsValid = false
		response.Message = leave.ErrOverlappingLeave.Error()
		response.OverlappingRequest = &info
		return response, nil
	}
	if err != nil {
		return leave.ValidateRangeResponse{}, err
	}

	return response, nil
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveCreate)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	req.EmployeeID = authz.EmployeeID
	req.TenantID = authz.TenantID
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if req.TotalDays != 0 && req.TotalDays != req.Weekdays() {
		slog.Warn("Client totalDays differs from server count",
			"employee_id", req.EmployeeID,
			"client_total_days", req.TotalDays,
			"server_total_days", req.Weekdays(),
		)
	}

	var attachmentPath *string
	if req.File != nil && req.FileHeader != nil {
		if req.FileHeader.Size > maxAttachmentSize {
			return leave.LeaveRequestResponse{}, leave.ErrAttachmentTooLarge
		}
		path, err := l.fileService.UploadLeaveAttachment(ctx, req.EmployeeID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		attachmentPath = &path
		if req.AttachmentName == nil {
			name := req.FileHeader.Filename
			req.AttachmentName = &name
		}
	}

	var created leave.LeaveRequest
	err = l.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = l.requestService.CreateRequest(txCtx, req, attachmentPath)
		return err
	})
	if err != nil {
		if attachmentPath != nil {
			if delErr := l.fileService.DeleteFile(ctx, *attachmentPath); delErr != nil {
				slog.Error("failed to clean up leave attachment", "path", *attachmentPath, "error", delErr)
			}
		}
		return leave.LeaveRequestResponse{}, err
	}

	return l.toResponse(ctx, created), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveApprove)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var decided leave.LeaveRequest
	err = l.tx.WithinTx(ctx, func(txCtx context.Context) error {
		request, err := l.loadForDecision(txCtx, authz, requestID)
		if err != nil {
			return err
		}
		decided, err = l.requestService.Approve(txCtx, request, authz.EmployeeID)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return l.toResponse(ctx, decided), nil
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, req leave.RejectLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveApprove)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var decided leave.LeaveRequest
	err = l.tx.WithinTx(ctx, func(txCtx context.Context) error {
		request, err := l.loadForDecision(txCtx, authz, req.RequestID)
		if err != nil {
			return err
		}
		decided, err = l.requestService.Reject(txCtx, request, authz.EmployeeID, req.Reason)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return l.toResponse(ctx, decided), nil
}

// CancelLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveCreate)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var cancelled leave.LeaveRequest
	err = l.tx.WithinTx(ctx, func(txCtx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByID(txCtx, authz.TenantID, requestID)
		if err != nil {
			return err
		}
		if request.EmployeeID != authz.EmployeeID {
			return leave.ErrNotRequestOwner
		}
		cancelled, err = l.requestService.Cancel(txCtx, request)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return l.toResponse(ctx, cancelled), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveViewOwn)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, authz.TenantID, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !authz.Has(auth.PermissionLeaveViewAll) &&
		request.EmployeeID != authz.EmployeeID &&
		request.ApproverID != authz.EmployeeID {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}

	return l.toResponse(ctx, request), nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveViewOwn)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	filter.EmployeeID = &authz.EmployeeID
	return l.list(ctx, authz.TenantID, filter)
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveViewAll)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return l.list(ctx, authz.TenantID, filter)
}

func (l *LeaveServiceImpl) list(ctx context.Context, tenantID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, tenantID, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, l.toResponse(ctx, r))
	}

	return leave.ListLeaveRequestResponse{
		Requests:   responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// GetMyBalances implements leave.LeaveService. Leave types without a
// balance row are reported with a zero total.
func (l *LeaveServiceImpl) GetMyBalances(ctx context.Context, year int) (leave.MyBalancesResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveViewOwn)
	if err != nil {
		return leave.MyBalancesResponse{}, err
	}
	if year == 0 {
		year = l.now().Year()
	}

	stored, err := l.LeaveBalanceRepository.ListByEmployeeYear(ctx, authz.EmployeeID, year)
	if err != nil {
		return leave.MyBalancesResponse{}, fmt.Errorf("failed to list leave balances: %w", err)
	}

	byType := make(map[leave.LeaveType]leave.LeaveBalance, len(stored))
	for _, b := range stored {
		byType[b.LeaveType] = b
	}

	balances := make([]leave.LeaveBalance, 0, len(leave.LeaveTypes))
	responses := make([]leave.LeaveBalanceResponse, 0, len(leave.LeaveTypes))
	for _, t := range leave.LeaveTypes {
		b, ok := byType[t]
		if !ok {
			b = leave.LeaveBalance{EmployeeID: authz.EmployeeID, TenantID: authz.TenantID, LeaveType: t, Year: year}
		}
		balances = append(balances, b)
		responses = append(responses, leave.NewLeaveBalanceResponse(b))
	}

	return leave.MyBalancesResponse{
		Year:     year,
		Balances: responses,
		Summary:  leave.Aggregate(balances),
	}, nil
}

// SetBalance implements leave.LeaveService. Used and pending days are kept.
func (l *LeaveServiceImpl) SetBalance(ctx context.Context, req leave.SetBalanceRequest) (leave.LeaveBalanceResponse, error) {
	authz, err := authorize(ctx, auth.PermissionLeaveManageBalance)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	req.TenantID = authz.TenantID
	if err := req.Validate(); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	balance, err := l.LeaveBalanceRepository.Upsert(ctx, leave.LeaveBalance{
		EmployeeID: req.EmployeeID,
		TenantID:   req.TenantID,
		LeaveType:  req.LeaveType,
		Year:       req.Year,
		Total:      req.Total,
	})
	if err != nil {
		return leave.LeaveBalanceResponse{}, fmt.Errorf("failed to set leave balance: %w", err)
	}

	if balance.Remaining() < 0 {
		slog.Warn("Leave balance is overdrawn",
			"employee_id", balance.EmployeeID,
			"leave_type", balance.LeaveType,
			"year", balance.Year,
			"remaining", balance.Remaining(),
		)
	}

	return leave.NewLeaveBalanceResponse(balance), nil
}

// loadForDecision fetches a request and checks the caller may decide it.
func (l *LeaveServiceImpl) loadForDecision(ctx context.Context, authz *auth.AuthorizationContext, requestID string) (leave.LeaveRequest, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, authz.TenantID, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.EmployeeID == authz.EmployeeID {
		return leave.LeaveRequest{}, leave.ErrSelfApproval
	}
	if authz.Role != auth.RoleAdmin && request.ApproverID != authz.EmployeeID {
		return leave.LeaveRequest{}, leave.ErrNotDesignatedApprover
	}
	return request, nil
}

func (l *LeaveServiceImpl) toResponse(ctx context.Context, r leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.NewLeaveRequestResponse(r)
	if r.AttachmentPath != nil && *r.AttachmentPath != "" {
		url, err := l.fileService.GetFileURL(ctx, *r.AttachmentPath)
		if err == nil {
			resp.AttachmentURL = &url
		}
	}
	return resp
}
