package auth

import "github.com/timepulse/timepulse-backend/internal/pkg/validator"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	// Email
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

// SessionResponse is what the frontend bootstraps its session from.
type SessionResponse struct {
	UserID       string       `json:"user_id"`
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	TenantID     string       `json:"tenant_id"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	Permissions  []Permission `json:"permissions"`
}

// ClientInfo is recorded with each refresh token.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
