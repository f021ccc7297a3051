package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/pkg/jwt"
	"github.com/timepulse/timepulse-backend/internal/pkg/session"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
	testSessionTTL = time.Hour
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[string]auth.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

type fakeRefreshTokenRepo struct {
	tokens  map[string]bool
	client  auth.ClientInfo
	saveErr error
}

func (f *fakeRefreshTokenRepo) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64, client auth.ClientInfo) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.tokens[token] = false
	f.client = client
	return nil
}

func (f *fakeRefreshTokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	revoked, ok := f.tokens[token]
	if !ok {
		return false, errors.New("no rows in result set")
	}
	return revoked, nil
}

func (f *fakeRefreshTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.tokens[token] = true
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	return 0, nil
}

type authFixture struct {
	svc      *AuthServiceImpl
	jwt      *jwt.JWTService
	tokens   *fakeRefreshTokenRepo
	sessions *session.MemoryStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	hash, err := HashPassword("password123")
	require.NoError(t, err)

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]auth.User{
		"user-1": {
			ID: "user-1", TenantID: "tenant-1", EmployeeID: "emp-1", EmployeeName: "Jane Doe",
			Email: "jane@example.com", PasswordHash: hash, Role: auth.RoleEmployee,
		},
		"user-2": {ID: "user-2", TenantID: "tenant-1", EmployeeID: "emp-2", Email: "sso@example.com", Role: auth.RoleEmployee},
	}}
	tokens := &fakeRefreshTokenRepo{tokens: make(map[string]bool)}
	sessions := session.NewMemoryStore(testSessionTTL)

	svc := NewAuthService(passthroughTx{}, users, tokens, jwtService, sessions).(*AuthServiceImpl)
	return &authFixture{svc: svc, jwt: jwtService, tokens: tokens, sessions: sessions}
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "password123"}, auth.ClientInfo{UserAgent: "test", IPAddress: "127.0.0.1"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Contains(t, f.tokens.tokens, resp.RefreshToken)
	assert.Equal(t, "127.0.0.1", f.tokens.client.IPAddress)

	s, ok := f.sessions.Get("user-1")
	require.True(t, ok)
	assert.Equal(t, "tenant-1", s.TenantID)
	assert.Equal(t, "Jane Doe", s.EmployeeName)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  auth.LoginRequest
	}{
		{"wrong password", auth.LoginRequest{Email: "jane@example.com", Password: "wrong"}},
		{"unknown email", auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}},
		{"no password set", auth.LoginRequest{Email: "sso@example.com", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(ctx, tt.req, auth.ClientInfo{})
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
	assert.Equal(t, 0, f.sessions.Len())
}

func TestLogin_TokenSaveFails(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.saveErr = errors.New("connection refused")

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "jane@example.com", Password: "password123"}, auth.ClientInfo{})
	require.Error(t, err)
	_, ok := f.sessions.Get("user-1")
	assert.False(t, ok, "no session without a stored refresh token")
}

func TestRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "password123"}, auth.ClientInfo{})
	require.NoError(t, err)

	resp, err := f.svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = f.svc.RefreshToken(ctx, "")
	assert.ErrorIs(t, err, auth.ErrRefreshTokenMissing)

	_, err = f.svc.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	f.tokens.tokens[login.RefreshToken] = true
	_, err = f.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout_ClearsSessionAndRevokes(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "password123"}, auth.ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, "user-1", login.AccessToken, login.RefreshToken))

	_, ok := f.sessions.Get("user-1")
	assert.False(t, ok)
	assert.True(t, f.jwt.IsTokenRevoked(login.AccessToken))
	assert.True(t, f.tokens.tokens[login.RefreshToken])

	_, err = f.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_WithoutRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	f.sessions.Set("user-1", session.Session{UserID: "user-1"})

	require.NoError(t, f.svc.Logout(context.Background(), "user-1", "", ""))
	assert.Equal(t, 0, f.sessions.Len())
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	authz := auth.NewAuthorizationContext("user-1", "emp-1", "tenant-1", auth.RoleEmployee)

	resp, err := f.svc.Me(ctx, authz)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, auth.RoleEmployee, resp.Role)
	assert.Len(t, resp.Permissions, 5)
	assert.Equal(t, 1, f.sessions.Len(), "session is restored from the user record")

	_, err = f.svc.Me(ctx, auth.NewAuthorizationContext("user-404", "", "tenant-1", auth.RoleEmployee))
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	_, err = f.svc.Me(ctx, nil)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
