package auth

import (
	"context"
	"sort"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Tenant administrator - full access
	RoleApprover Role = "approver" // Approves leave and timesheets
	RoleEmployee Role = "employee" // Regular employee
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

type Permission string

const (
	// Leave
	PermissionLeaveCreate        Permission = "leave.create"
	PermissionLeaveViewOwn       Permission = "leave.view_own"
	PermissionLeaveViewAll       Permission = "leave.view_all"
	PermissionLeaveApprove       Permission = "leave.approve"
	PermissionLeaveManageBalance Permission = "leave.manage_balance"

	// Timesheets
	PermissionTimesheetSubmit  Permission = "timesheet.submit"
	PermissionTimesheetViewOwn Permission = "timesheet.view_own"
	PermissionTimesheetViewAll Permission = "timesheet.view_all"
	PermissionTimesheetApprove Permission = "timesheet.approve"

	// Calendar
	PermissionHolidayView Permission = "holiday.view"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionLeaveManageBalance,
		PermissionTimesheetSubmit,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionTimesheetApprove,
		PermissionHolidayView,
	},
	RoleApprover: {
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionTimesheetSubmit,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionTimesheetApprove,
		PermissionHolidayView,
	},
	RoleEmployee: {
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionTimesheetSubmit,
		PermissionTimesheetViewOwn,
		PermissionHolidayView,
	},
}

// AuthorizationContext is the capability set of one authenticated session.
// It is resolved once from the token and then only queried.
type AuthorizationContext struct {
	UserID     string
	EmployeeID string
	TenantID   string
	Role       Role

	permissions map[Permission]struct{}
}

// NewAuthorizationContext resolves the permission set for role. Unknown
// roles resolve to an empty set.
func NewAuthorizationContext(userID, employeeID, tenantID string, role Role) *AuthorizationContext {
	perms := make(map[Permission]struct{}, len(rolePermissions[role]))
	for _, p := range rolePermissions[role] {
		perms[p] = struct{}{}
	}
	return &AuthorizationContext{
		UserID:      userID,
		EmployeeID:  employeeID,
		TenantID:    tenantID,
		Role:        role,
		permissions: perms,
	}
}

// Has reports whether the session holds permission.
func (a *AuthorizationContext) Has(permission Permission) bool {
	if a == nil {
		return false
	}
	_, ok := a.permissions[permission]
	return ok
}

// Permissions returns the capability set in stable order.
func (a *AuthorizationContext) Permissions() []Permission {
	if a == nil {
		return nil
	}
	out := make([]Permission, 0, len(a.permissions))
	for p := range a.permissions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type authzKey struct{}

// WithAuthorization stores ac on ctx.
func WithAuthorization(ctx context.Context, ac *AuthorizationContext) context.Context {
	return context.WithValue(ctx, authzKey{}, ac)
}

// FromContext returns the AuthorizationContext stored on ctx.
func FromContext(ctx context.Context) (*AuthorizationContext, bool) {
	ac, ok := ctx.Value(authzKey{}).(*AuthorizationContext)
	return ac, ok && ac != nil
}
