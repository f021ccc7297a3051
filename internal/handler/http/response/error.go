package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/domain/leave"
	"github.com/timepulse/timepulse-backend/internal/domain/timesheet"
	"github.com/timepulse/timepulse-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var overlapErr *leave.OverlapError
	if errors.As(err, &overlapErr) {
		LeaveOverlap(w, overlapErr.Info())
		return
	}

	var overtimeErr *timesheet.OvertimeJustificationError
	if errors.As(err, &overtimeErr) {
		OvertimeCommentRequired(w, overtimeErr.Days)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenMissing):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrPermissionDenied):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, auth.ErrTenantRequired):
		Forbidden(w, "Tenant is required")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrSessionNotFound):
		Unauthorized(w, "Session not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrInsufficientBalance):
		UnprocessableEntity(w, "Insufficient leave balance", map[string]string{"totalDays": "exceeds the remaining balance"})
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")
	case errors.Is(err, leave.ErrNotDesignatedApprover):
		Forbidden(w, "Only the designated approver can decide this request")
	case errors.Is(err, leave.ErrSelfApproval):
		Forbidden(w, "Approvers cannot decide their own leave requests")
	case errors.Is(err, leave.ErrAttachmentTooLarge):
		PayloadTooLarge(w, "Attachment exceeds the 5MB limit")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrWeeklyHoursNotFound):
		NotFound(w, "Weekly hours entry not found")
	case errors.Is(err, timesheet.ErrWeekAlreadySubmitted):
		Conflict(w, "Hours for this week have already been submitted")
	case errors.Is(err, timesheet.ErrWeeklyHoursAlreadyProcessed):
		Conflict(w, "Weekly hours entry already processed")
	case errors.Is(err, timesheet.ErrNotEntryOwner):
		Forbidden(w, "Weekly hours entry belongs to another employee")
	case errors.Is(err, timesheet.ErrSelfApproval):
		Forbidden(w, "Approvers cannot decide their own timesheets")
	case errors.Is(err, timesheet.ErrOvertimeCommentRequired):
		OvertimeCommentRequired(w, nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
