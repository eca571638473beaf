package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dualfin/internal/storage"
	"dualfin/internal/user"
)

func newTestAuthService(t *testing.T) (Service, user.Service) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	userService := user.NewUserService(user.NewRepository(storage.NewMemoryStore()))
	return NewAuthService(userService, NewJWTManager()), userService
}

func TestAuthService_SignupEstablishesSession(t *testing.T) {
	authService, _ := newTestAuthService(t)

	account, accessToken, refreshToken, err := authService.Signup("john@example.com", "Password123!", "John")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", account.Email)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, _, _, err := authService.Signup("john@example.com", "Password123!", "John")
	require.NoError(t, err)

	_, _, _, err = authService.Signup("john@example.com", "OtherPassword!", "Impostor")
	assert.True(t, errors.Is(err, user.ErrEmailAlreadyExists))
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := newTestAuthService(t)

	registered, _, _, err := authService.Signup("john@example.com", "Password123!", "John")
	require.NoError(t, err)

	account, accessToken, refreshToken, err := authService.Login("john@example.com", "Password123!")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	authService, _ := newTestAuthService(t)

	_, _, _, err := authService.Signup("john@example.com", "Password123!", "John")
	require.NoError(t, err)

	// wrong password and unknown email fail with the same error
	_, _, _, err = authService.Login("john@example.com", "wrong-password")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, _, _, err = authService.Login("nobody@example.com", "Password123!")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthService_LogoutInvalidatesRefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userService := user.NewUserService(user.NewRepository(storage.NewMemoryStore()))
	jwtManager := NewJWTManager()
	authService := NewAuthService(userService, jwtManager)

	account, _, refreshToken, err := authService.Signup("john@example.com", "Password123!", "John")
	require.NoError(t, err)

	require.NoError(t, jwtManager.ValidateRefreshToken(refreshToken, account.HashToken))

	require.NoError(t, authService.Logout(refreshToken))

	rotated, err := userService.GetByID(account.ID)
	require.NoError(t, err)
	assert.NotEqual(t, account.HashToken, rotated.HashToken)
	assert.True(t, errors.Is(
		jwtManager.ValidateRefreshToken(refreshToken, rotated.HashToken),
		ErrInvalidJWTToken))
}

func TestAuthService_LogoutIsIdempotent(t *testing.T) {
	authService, _ := newTestAuthService(t)

	assert.NoError(t, authService.Logout(""))
	assert.NoError(t, authService.Logout("not-a-valid-token"))

	_, _, refreshToken, err := authService.Signup("john@example.com", "Password123!", "John")
	require.NoError(t, err)

	assert.NoError(t, authService.Logout(refreshToken))
	// a second logout with the now-dead token still succeeds
	assert.NoError(t, authService.Logout(refreshToken))
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	authService, _ := newTestAuthService(t)

	account, _, _, err := authService.Signup("john@example.com", "Password123!", "John")
	require.NoError(t, err)

	accessToken, refreshToken, err := authService.RefreshAccessToken(account.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	_, _, err = authService.RefreshAccessToken("no-such-user")
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}
