package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/timepulse/timepulse-backend/internal/domain/timesheet"
	"github.com/timepulse/timepulse-backend/internal/handler/http/response"
)

type TimesheetHandler interface {
	Classify(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyWeeklyHours(w http.ResponseWriter, r *http.Request)
	ListWeeklyHours(w http.ResponseWriter, r *http.Request)
	GetWeeklyHours(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

// Classify implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Classify(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ClassifyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Classify decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := t.timesheetService.Classify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Submit implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SubmitWeeklyHoursRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit weekly hours decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := t.timesheetService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Weekly hours submitted successfully"
	if req.Draft {
		message = "Weekly hours saved as draft"
	}
	response.Created(w, message, entry)
}

// GetMyWeeklyHours implements TimesheetHandler.
func (t *TimesheetHandlerImpl) GetMyWeeklyHours(w http.ResponseWriter, r *http.Request) {
	filter := parseWeeklyHoursFilter(r)

	result, err := t.timesheetService.ListMyWeeklyHours(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, response.NewMeta(result.Page, result.Limit, result.TotalItems))
}

// ListWeeklyHours implements TimesheetHandler.
func (t *TimesheetHandlerImpl) ListWeeklyHours(w http.ResponseWriter, r *http.Request) {
	filter := parseWeeklyHoursFilter(r)
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	result, err := t.timesheetService.ListWeeklyHours(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, response.NewMeta(result.Page, result.Limit, result.TotalItems))
}

// GetWeeklyHours implements TimesheetHandler.
func (t *TimesheetHandlerImpl) GetWeeklyHours(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Weekly hours ID is required", nil)
		return
	}

	entry, err := t.timesheetService.GetWeeklyHours(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entry)
}

// Approve implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Weekly hours ID is required", nil)
		return
	}

	entry, err := t.timesheetService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly hours approved successfully", entry)
}

// Reject implements TimesheetHandler.
func (t *TimesheetHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req timesheet.RejectWeeklyHoursRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject weekly hours decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EntryID = chi.URLParam(r, "id")

	entry, err := t.timesheetService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly hours rejected successfully", entry)
}

func parseWeeklyHoursFilter(r *http.Request) timesheet.WeeklyHoursFilter {
	filter := timesheet.WeeklyHoursFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := timesheet.WeeklyHoursStatus(status)
		filter.Status = &s
	}
	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		filter.ClientID = &clientID
	}
	filter.Page, filter.Limit = parsePagination(r)
	return filter
}
