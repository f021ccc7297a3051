package auth

import "time"

// User is a login identity bound to exactly one tenant and employee record.
type User struct {
	ID           string
	TenantID     string
	EmployeeID   string
	EmployeeName string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
