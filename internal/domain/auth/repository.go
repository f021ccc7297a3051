package auth

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}

// RefreshTokenRepository - interface for refresh_tokens table
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, client ClientInfo) error
	// IsRefreshTokenRevoked reports revoked or expired tokens as revoked.
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}
