package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, client ClientInfo) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (AccessTokenResponse, error)
	Logout(ctx context.Context, userID, accessToken, refreshToken string) error
	Me(ctx context.Context, authz *AuthorizationContext) (SessionResponse, error)
}
