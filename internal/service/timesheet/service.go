package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/domain/timesheet"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
	"github.com/timepulse/timepulse-backend/internal/pkg/validator"
)

type TimesheetServiceImpl struct {
	tx database.Transactor
	timesheet.WeeklyHoursRepository
	calendar timesheet.HolidayLookup
	now      func() time.Time
}

func NewTimesheetService(tx database.Transactor, weeklyHoursRepository timesheet.WeeklyHoursRepository, calendar timesheet.HolidayLookup) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		tx:                    tx,
		WeeklyHoursRepository: weeklyHoursRepository,
		calendar:              calendar,
		now:                   time.Now,
	}
}

func authorize(ctx context.Context, perm auth.Permission) (*auth.AuthorizationContext, error) {
	authz, ok := auth.FromContext(ctx)
	if !ok || !authz.Has(perm) {
		return nil, auth.ErrPermissionDenied
	}
	return authz, nil
}

func (s *TimesheetServiceImpl) classify(weekStart time.Time, hours timesheet.DailyHours) []timesheet.FlaggedDay {
	return timesheet.Classify(hours.Array(), timesheet.WeekDates(weekStart), s.calendar)
}

// Classify implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Classify(ctx context.Context, req timesheet.ClassifyRequest) (timesheet.ClassifyResponse, error) {
	if _, err := authorize(ctx, auth.PermissionTimesheetSubmit); err != nil {
		return timesheet.ClassifyResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return timesheet.ClassifyResponse{}, err
	}

	week := req.Week()
	flagged := s.classify(week, req.DailyHours)
	return timesheet.ClassifyResponse{
		WeekStart:       week.Format(validator.DateLayout),
		WeekEnd:         week.AddDate(0, 0, timesheet.DaysPerWeek-1).Format(validator.DateLayout),
		TotalHours:      req.DailyHours.Total(),
		OvertimeDays:    flagged,
		RequiresComment: len(flagged) > 0,
	}, nil
}

// Submit implements timesheet.TimesheetService. Flagged days are recomputed
// here; whatever overtimeDays the client sent is ignored. Drafts skip the
// comment requirement.
func (s *TimesheetServiceImpl) Submit(ctx context.Context, req timesheet.SubmitWeeklyHoursRequest) (timesheet.WeeklyHoursResponse, error) {
	authz, err := authorize(ctx, auth.PermissionTimesheetSubmit)
	if err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}

	week := req.Week()
	flagged := s.classify(week, req.DailyHours)

	gate := timesheet.NewSubmissionGate()
	if _, err := gate.Detect(flagged, req.Comment()); err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}

	var comment *string
	days := flagged
	if gate.CanSubmit() {
		comment, days, err = gate.Payload()
		if err != nil {
			return timesheet.WeeklyHoursResponse{}, err
		}
	} else if !req.Draft {
		return timesheet.WeeklyHoursResponse{}, &timesheet.OvertimeJustificationError{Days: flagged}
	} else if c := strings.TrimSpace(req.Comment()); c != "" {
		comment = &c
	}

	entry := timesheet.WeeklyHoursEntry{
		EmployeeID:      authz.EmployeeID,
		TenantID:        authz.TenantID,
		ClientID:        req.ClientID,
		WeekStart:       week,
		WeekEnd:         week.AddDate(0, 0, timesheet.DaysPerWeek-1),
		DailyHours:      req.DailyHours,
		OvertimeComment: comment,
		OvertimeDays:    days,
		Status:          timesheet.WeeklyHoursStatusDraft,
	}
	if !req.Draft {
		now := s.now()
		entry.Status = timesheet.WeeklyHoursStatusSubmitted
		entry.SubmittedAt = &now
	}

	var saved timesheet.WeeklyHoursEntry
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := s.WeeklyHoursRepository.GetByWeek(txCtx, entry.EmployeeID, entry.ClientID, week)
		switch {
		case errors.Is(err, timesheet.ErrWeeklyHoursNotFound):
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate weekly hours id: %w", err)
			}
			entry.ID = id.String()
			saved, err = s.WeeklyHoursRepository.Create(txCtx, entry)
			if err != nil {
				return fmt.Errorf("failed to create weekly hours: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to get weekly hours: %w", err)
		}

		if !existing.Status.IsEditable() {
			return timesheet.ErrWeekAlreadySubmitted
		}
		entry.ID = existing.ID
		saved, err = s.WeeklyHoursRepository.Update(txCtx, entry)
		if err != nil {
			return fmt.Errorf("failed to update weekly hours: %w", err)
		}
		return nil
	})
	if err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}

	if len(saved.OvertimeDays) > 0 && saved.Status == timesheet.WeeklyHoursStatusSubmitted {
		slog.Info("Weekly hours submitted with overtime",
			"employee_id", saved.EmployeeID,
			"week_start", saved.WeekStart.Format(validator.DateLayout),
			"flagged_days", len(saved.OvertimeDays),
		)
	}

	return timesheet.NewWeeklyHoursResponse(saved), nil
}

// GetWeeklyHours implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetWeeklyHours(ctx context.Context, id string) (timesheet.WeeklyHoursResponse, error) {
	authz, err := authorize(ctx, auth.PermissionTimesheetViewOwn)
	if err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}

	entry, err := s.WeeklyHoursRepository.GetByID(ctx, authz.TenantID, id)
	if err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}
	if entry.EmployeeID != authz.EmployeeID && !authz.Has(auth.PermissionTimesheetViewAll) {
		return timesheet.WeeklyHoursResponse{}, timesheet.ErrNotEntryOwner
	}

	return timesheet.NewWeeklyHoursResponse(entry), nil
}

// ListMyWeeklyHours implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListMyWeeklyHours(ctx context.Context, filter timesheet.WeeklyHoursFilter) (timesheet.ListWeeklyHoursResponse, error) {
	authz, err := authorize(ctx, auth.PermissionTimesheetViewOwn)
	if err != nil {
		return timesheet.ListWeeklyHoursResponse{}, err
	}
	filter.EmployeeID = &authz.EmployeeID
	return s.list(ctx, authz.TenantID, filter)
}

// ListWeeklyHours implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListWeeklyHours(ctx context.Context, filter timesheet.WeeklyHoursFilter) (timesheet.ListWeeklyHoursResponse, error) {
	authz, err := authorize(ctx, auth.PermissionTimesheetViewAll)
	if err != nil {
		return timesheet.ListWeeklyHoursResponse{}, err
	}
	return s.list(ctx, authz.TenantID, filter)
}

func (s *TimesheetServiceImpl) list(ctx context.Context, tenantID string, filter timesheet.WeeklyHoursFilter) (timesheet.ListWeeklyHoursResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListWeeklyHoursResponse{}, err
	}

	entries, total, err := s.WeeklyHoursRepository.List(ctx, tenantID, filter)
	if err != nil {
		return timesheet.ListWeeklyHoursResponse{}, fmt.Errorf("failed to list weekly hours: %w", err)
	}

	responses := make([]timesheet.WeeklyHoursResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timesheet.NewWeeklyHoursResponse(e))
	}

	return timesheet.ListWeeklyHoursResponse{
		Entries:    responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Approve implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Approve(ctx context.Context, id string) (timesheet.WeeklyHoursResponse, error) {
	return s.decide(ctx, id, timesheet.WeeklyHoursStatusApproved, nil)
}

// Reject implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Reject(ctx context.Context, req timesheet.RejectWeeklyHoursRequest) (timesheet.WeeklyHoursResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}
	return s.decide(ctx, req.EntryID, timesheet.WeeklyHoursStatusRejected, &req.Reason)
}

func (s *TimesheetServiceImpl) decide(ctx context.Context, id string, status timesheet.WeeklyHoursStatus, reason *string) (timesheet.WeeklyHoursResponse, error) {
	authz, err := authorize(ctx, auth.PermissionTimesheetApprove)
	if err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}

	entry, err := s.WeeklyHoursRepository.GetByID(ctx, authz.TenantID, id)
	if err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}
	if entry.EmployeeID == authz.EmployeeID {
		return timesheet.WeeklyHoursResponse{}, timesheet.ErrSelfApproval
	}
	if entry.Status != timesheet.WeeklyHoursStatusSubmitted {
		return timesheet.WeeklyHoursResponse{}, timesheet.ErrWeeklyHoursAlreadyProcessed
	}

	now := s.now()
	entry.Status = status
	entry.DecidedBy = &authz.EmployeeID
	entry.DecidedAt = &now
	entry.RejectionReason = reason

	if err := s.WeeklyHoursRepository.UpdateDecision(ctx, entry); err != nil {
		return timesheet.WeeklyHoursResponse{}, err
	}

	return timesheet.NewWeeklyHoursResponse(entry), nil
}
