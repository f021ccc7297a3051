package timesheet

import (
	"errors"
	"fmt"
)

var (
	ErrWeeklyHoursNotFound         = errors.New("weekly hours entry not found")
	ErrWeekAlreadySubmitted        = errors.New("hours for this week have already been submitted")
	ErrWeeklyHoursAlreadyProcessed = errors.New("weekly hours entry already processed")
	ErrNotEntryOwner               = errors.New("weekly hours entry belongs to another employee")
	ErrSelfApproval                = errors.New("approvers cannot decide their own timesheets")
	ErrOvertimeCommentRequired     = errors.New("an overtime comment is required")
	ErrInvalidGateTransition       = errors.New("invalid submission gate transition")
	ErrSubmissionBlocked           = errors.New("submission is blocked until overtime is justified")
)

// OvertimeJustificationError is returned when flagged days arrive without a comment.
type OvertimeJustificationError struct {
	Days []FlaggedDay
}

func (e *OvertimeJustificationError) Error() string {
	return fmt.Sprintf("%s: %d flagged day(s)", ErrOvertimeCommentRequired, len(e.Days))
}

func (e *OvertimeJustificationError) Is(target error) bool {
	return target == ErrOvertimeCommentRequired
}
