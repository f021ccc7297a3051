package jwt

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AccessClaims are the identity claims carried by an access token.
type AccessClaims struct {
	UserID     string
	Email      string
	EmployeeID string
	TenantID   string
	Role       string
}

type Service interface {
	GenerateAccessToken(claims AccessClaims) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	ParseRefreshToken(token string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpiration  time.Duration
	refreshTokenExpiration time.Duration
	tokenAuth              *jwtauth.JWTAuth
	revokedTokens          map[string]int64
	mu                     sync.RWMutex
	now                    func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) (*JWTService, error) {
	accessExp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("parse access token expiration: %w", err)
	}
	refreshExp, err := time.ParseDuration(refreshTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("parse refresh token expiration: %w", err)
	}

	return &JWTService{
		accessTokenExpiration:  accessExp,
		refreshTokenExpiration: refreshExp,
		tokenAuth:              jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:          make(map[string]int64),
		now:                    time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(c AccessClaims) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":     c.UserID,
		"email":       c.Email,
		"employee_id": c.EmployeeID,
		"tenant_id":   c.TenantID,
		"role":        c.Role,
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.refreshTokenExpiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
	})
	return tokenString, expiresAt, err
}

// ParseRefreshToken verifies a refresh token and returns its subject.
func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	if j.IsTokenRevoked(tokenString) {
		return "", jwt.ErrInvalidJWT()
	}

	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = j.now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PruneRevokedTokens drops revocations older than the longest token lifetime;
// those tokens fail verification on expiry alone.
func (j *JWTService) PruneRevokedTokens() int {
	maxLifetime := j.accessTokenExpiration
	if j.refreshTokenExpiration > maxLifetime {
		maxLifetime = j.refreshTokenExpiration
	}
	cutoff := j.now().Add(-maxLifetime).Unix()

	j.mu.Lock()
	defer j.mu.Unlock()
	removed := 0
	for token, revokedAt := range j.revokedTokens {
		if revokedAt < cutoff {
			delete(j.revokedTokens, token)
			removed++
		}
	}
	return removed
}
