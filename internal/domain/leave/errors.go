package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingLeave             = errors.New("leave request overlaps an existing request")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrBalanceNotFound              = errors.New("leave balance not found")
	ErrNotRequestOwner              = errors.New("leave request belongs to another employee")
	ErrNotDesignatedApprover        = errors.New("only the designated approver can decide this request")
	ErrSelfApproval                 = errors.New("approvers cannot decide their own leave requests")
	ErrAttachmentTooLarge           = errors.New("attachment exceeds the 5MB limit")
)

// OverlapError carries the existing request a new submission collides with.
type OverlapError struct {
	Existing LeaveRequest
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s request from %s to %s",
		ErrOverlappingLeave,
		e.Existing.Status,
		e.Existing.StartDate.Format(dateLayout),
		e.Existing.EndDate.Format(dateLayout),
	)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlappingLeave
}

// Info returns the conflict in its wire form.
func (e *OverlapError) Info() OverlapInfo {
	return NewOverlapInfo(e.Existing)
}
