package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/pkg/database"
	"github.com/timepulse/timepulse-backend/internal/pkg/jwt"
	"github.com/timepulse/timepulse-backend/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	auth.UserRepository
	auth.RefreshTokenRepository
	jwt.Service
	sessions session.Store
}

func NewAuthService(tx database.Transactor, userRepository auth.UserRepository, refreshTokenRepository auth.RefreshTokenRepository, jwtService jwt.Service, sessions session.Store) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
		sessions:               sessions,
	}
}

// HashPassword is used by seeding and tests; there is no signup flow.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, client auth.ClientInfo) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(accessClaims(userData))
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.RefreshTokenRepository.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, client); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	a.sessions.Set(userData.ID, sessionFromUser(userData))
	slog.Info("User logged in", "user_id", userData.ID, "tenant_id", userData.TenantID, "role", userData.Role)

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	if refreshToken == "" {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenMissing
	}

	userID, err := a.Service.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(accessClaims(userData))
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	if _, ok := a.sessions.Get(userData.ID); !ok {
		a.sessions.Set(userData.ID, sessionFromUser(userData))
	}

	return resp, nil
}

// Logout implements auth.AuthService. The session entry is cleared even when
// the refresh token is missing.
func (a *AuthServiceImpl) Logout(ctx context.Context, userID, accessToken, refreshToken string) error {
	defer a.sessions.Clear(userID)

	if accessToken != "" {
		a.Service.RevokeToken(accessToken)
	}
	if refreshToken == "" {
		return nil
	}

	a.Service.RevokeToken(refreshToken)
	err := a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(txCtx, refreshToken)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.RefreshTokenRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("User logged out", "user_id", userID)
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, authz *auth.AuthorizationContext) (auth.SessionResponse, error) {
	if authz == nil {
		return auth.SessionResponse{}, auth.ErrSessionNotFound
	}

	s, ok := a.sessions.Get(authz.UserID)
	if !ok {
		userData, err := a.UserRepository.GetByID(ctx, authz.UserID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				return auth.SessionResponse{}, auth.ErrSessionNotFound
			}
			return auth.SessionResponse{}, fmt.Errorf("failed to get user by id: %w", err)
		}
		s = sessionFromUser(userData)
		a.sessions.Set(userData.ID, s)
	}

	return auth.SessionResponse{
		UserID:       s.UserID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		TenantID:     s.TenantID,
		Email:        s.Email,
		Role:         auth.Role(s.Role),
		Permissions:  authz.Permissions(),
	}, nil
}

func accessClaims(u auth.User) jwt.AccessClaims {
	return jwt.AccessClaims{
		UserID:     u.ID,
		Email:      u.Email,
		EmployeeID: u.EmployeeID,
		TenantID:   u.TenantID,
		Role:       string(u.Role),
	}
}

func sessionFromUser(u auth.User) session.Session {
	return session.Session{
		UserID:       u.ID,
		EmployeeID:   u.EmployeeID,
		EmployeeName: u.EmployeeName,
		TenantID:     u.TenantID,
		Email:        u.Email,
		Role:         string(u.Role),
	}
}
