package timesheet

import "context"

// TimesheetService reads the caller's auth.AuthorizationContext from ctx.
type TimesheetService interface {
	Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error)
	Submit(ctx context.Context, req SubmitWeeklyHoursRequest) (WeeklyHoursResponse, error)
	GetWeeklyHours(ctx context.Context, id string) (WeeklyHoursResponse, error)
	ListMyWeeklyHours(ctx context.Context, filter WeeklyHoursFilter) (ListWeeklyHoursResponse, error)
	ListWeeklyHours(ctx context.Context, filter WeeklyHoursFilter) (ListWeeklyHoursResponse, error)
	Approve(ctx context.Context, id string) (WeeklyHoursResponse, error)
	Reject(ctx context.Context, req RejectWeeklyHoursRequest) (WeeklyHoursResponse, error)
}
