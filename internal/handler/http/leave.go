package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/timepulse/timepulse-backend/internal/domain/leave"
	"github.com/timepulse/timepulse-backend/internal/handler/http/response"
)

// maxMultipartMemory bounds the in-memory part of a leave submission form.
const maxMultipartMemory = 10 << 20

type LeaveHandler interface {
	ValidateRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)

	GetMyBalances(w http.ResponseWriter, r *http.Request)
	SetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	now          func() time.Time
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		now:          time.Now,
	}
}

// ValidateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ValidateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.ValidateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ValidateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.ValidateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateRequest implements LeaveHandler. It accepts either a JSON body or a
// multipart form with the JSON payload in "data" and an optional "attachment".
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, fileHeader, err := r.FormFile("attachment")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		if file != nil {
			defer file.Close()
			req.File = file
			req.FileHeader = fileHeader
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveRequest, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leaveRequest)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseLeaveFilter(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.ListMyLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, response.NewMeta(result.Page, result.Limit, result.TotalItems))
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseLeaveFilter(w, r)
	if !ok {
		return
	}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	result, err := l.leaveService.ListLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, response.NewMeta(result.Page, result.Limit, result.TotalItems))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	leaveRequest, err := l.leaveService.GetLeaveRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveRequest)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	leaveRequest, err := l.leaveService.ApproveLeaveRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", leaveRequest)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveRequest, err := l.leaveService.RejectLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", leaveRequest)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	leaveRequest, err := l.leaveService.CancelLeaveRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", leaveRequest)
}

// GetMyBalances implements LeaveHandler. The year defaults to the current one.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	year := l.now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1 {
			response.BadRequest(w, "Invalid year", map[string]string{"year": "year must be a positive integer"})
			return
		}
		year = y
	}

	balances, err := l.leaveService.GetMyBalances(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// SetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) SetBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.SetBalanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := l.leaveService.SetBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance updated successfully", balance)
}

func parseLeaveFilter(w http.ResponseWriter, r *http.Request) (leave.LeaveRequestFilter, bool) {
	filter := leave.LeaveRequestFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := leave.LeaveRequestStatus(status)
		filter.Status = &s
	}
	filter.Page, filter.Limit = parsePagination(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return filter, false
	}
	return filter, true
}

// parsePagination returns zero for missing or malformed values so the
// filter's Validate applies its defaults.
func parsePagination(r *http.Request) (page, limit int) {
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	return page, limit
}
