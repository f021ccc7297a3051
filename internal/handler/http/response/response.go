package response

import (
	"encoding/json"
	"net/http"

	"github.com/timepulse/timepulse-backend/internal/domain/leave"
	"github.com/timepulse/timepulse-backend/internal/domain/timesheet"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	TotalItems int64 `json:"total_items,omitempty"`
	TotalPages int   `json:"total_pages,omitempty"`
}

// NewMeta builds pagination metadata.
func NewMeta(page, limit int, totalItems int64) *Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((totalItems + int64(limit) - 1) / int64(limit))
	}
	return &Meta{Page: page, Limit: limit, TotalItems: totalItems, TotalPages: totalPages}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, data interface{}, meta *Meta) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "BAD_REQUEST",
			Message: message,
			Details: details,
		},
	})
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: details,
		},
	})
}

// UnprocessableEntity is a 422 for well-formed requests that break a business rule.
func UnprocessableEntity(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "UNPROCESSABLE_ENTITY",
			Message: message,
			Details: details,
		},
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
}

func Forbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "FORBIDDEN",
			Message: message,
		},
	})
}

func NotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "NOT_FOUND",
			Message: message,
		},
	})
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "INTERNAL_SERVER_ERROR",
			Message: message,
		},
	})
}

func Conflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "CONFLICT",
			Message: message,
		},
	})
}

func PayloadTooLarge(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusRequestEntityTooLarge, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "PAYLOAD_TOO_LARGE",
			Message: message,
		},
	})
}

type overlapResponse struct {
	Response
	OverlappingRequest leave.OverlapInfo `json:"overlappingRequest"`
}

// LeaveOverlap reports the existing request a submission collides with.
func LeaveOverlap(w http.ResponseWriter, existing leave.OverlapInfo) {
	writeJSON(w, http.StatusConflict, overlapResponse{
		Response: Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "LEAVE_OVERLAP",
				Message: "Leave request overlaps an existing request",
			},
		},
		OverlappingRequest: existing,
	})
}

type overtimeResponse struct {
	Response
	OvertimeDays []timesheet.FlaggedDay `json:"overtimeDays"`
}

// OvertimeCommentRequired is a validation failure that echoes the flagged days.
func OvertimeCommentRequired(w http.ResponseWriter, days []timesheet.FlaggedDay) {
	if days == nil {
		days = []timesheet.FlaggedDay{}
	}
	writeJSON(w, http.StatusUnprocessableEntity, overtimeResponse{
		Response: Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: "Validation failed",
				Details: map[string]string{
					"overtimeComment": "a comment is required when overtime, weekend or holiday work is reported",
				},
			},
		},
		OvertimeDays: days,
	})
}
