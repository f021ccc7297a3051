package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timepulse/timepulse-backend/internal/pkg/validator"
)

func validCreateRequest() CreateLeaveRequestRequest {
	return CreateLeaveRequestRequest{
		EmployeeID: "emp-1",
		TenantID:   "tenant-1",
		LeaveType:  LeaveTypeVacation,
		StartDate:  "2024-10-10",
		EndDate:    "2024-10-15",
		Reason:     "Family trip",
		ApproverID: "emp-2",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.ToMap()
}

func TestCreateLeaveRequestRequest_Valid(t *testing.T) {
	req := validCreateRequest()
	require.NoError(t, req.Validate())
	assert.Equal(t, 4, req.Weekdays())
	assert.Equal(t, d("2024-10-10"), req.Range().Start)
	assert.Equal(t, d("2024-10-15"), req.Range().End)
}

func TestCreateLeaveRequestRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateLeaveRequestRequest)
		field  string
		msg    string
	}{
		{"missing approver", func(r *CreateLeaveRequestRequest) { r.ApproverID = " " }, "approverId", "approverId is required"},
		{"self approver", func(r *CreateLeaveRequestRequest) { r.ApproverID = r.EmployeeID }, "approverId", "approverId cannot be the requesting employee"},
		{"unknown type", func(r *CreateLeaveRequestRequest) { r.LeaveType = "maternity" }, "leaveType", "leaveType must be one of: vacation, sick"},
		{"missing reason", func(r *CreateLeaveRequestRequest) { r.Reason = "" }, "reason", "reason is required"},
		{"bad date", func(r *CreateLeaveRequestRequest) { r.StartDate = "10/10/2024" }, "startDate", "startDate must be in YYYY-MM-DD format"},
		{"end before start", func(r *CreateLeaveRequestRequest) { r.EndDate = "2024-10-09" }, "dateRange", MessageEndBeforeStart},
		{"weekend only", func(r *CreateLeaveRequestRequest) { r.StartDate, r.EndDate = "2024-10-12", "2024-10-13" }, "dateRange", MessageWeekendOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			errs := fieldErrors(t, req.Validate())
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}
}

func TestLeaveRequestFilter_Defaults(t *testing.T) {
	f := LeaveRequestFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 0, f.Offset())

	bad := LeaveRequestStatus("archived")
	f = LeaveRequestFilter{Status: &bad, Limit: 500}
	errs := fieldErrors(t, f.Validate())
	assert.Contains(t, errs, "status")
	assert.Contains(t, errs, "limit")
}

func TestSetBalanceRequest_Validate(t *testing.T) {
	req := SetBalanceRequest{EmployeeID: "emp-1", LeaveType: LeaveTypeSick, Year: 2025, Total: 10}
	require.NoError(t, req.Validate())

	req.Total = -1
	errs := fieldErrors(t, req.Validate())
	assert.Equal(t, "total must not be negative", errs["total"])
}
