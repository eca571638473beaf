package auth

import (
	"errors"
	"net/http"

	"dualfin/internal/user"
)

var (
	// ErrInvalidCredentials covers both the unknown email and the wrong
	// password, so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInternalError      = errors.New("internal server error")
)

type Service interface {
	Signup(email, password, name string) (*user.Account, string, string, error)
	Login(email, password string) (*user.Account, string, string, error)
	Logout(refreshToken string) error
	RefreshAccessToken(userID string) (string, string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
	JWTRefreshTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Signup registers the account and immediately establishes a session: the
// returned pair is the access token and the refresh token.
func (s *service) Signup(email, password, name string) (*user.Account, string, string, error) {
	account, err := s.userService.Register(email, password, name)
	if err != nil {
		return nil, "", "", err
	}
	accessToken, refreshToken, err := s.issueTokens(account)
	if err != nil {
		return nil, "", "", err
	}
	return account, accessToken, refreshToken, nil
}

func (s *service) Login(email, password string) (*user.Account, string, string, error) {
	account, err := s.userService.GetByEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", ErrInternalError
	}

	if !s.userService.CheckPassword(account, password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(account)
	if err != nil {
		return nil, "", "", err
	}
	return account, accessToken, refreshToken, nil
}

// Logout rotates the account's hash token so every outstanding refresh token
// dies. An absent or unreadable token is not an error: logout is idempotent.
func (s *service) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	userID, err := s.jwtManager.ExtractUserIDFromRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	if _, err := s.userService.RotateHashToken(userID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		return ErrInternalError
	}
	return nil
}

// RefreshAccessToken issues a fresh pair. The refresh middleware has already
// validated the presented token against the stored hash token.
func (s *service) RefreshAccessToken(userID string) (string, string, error) {
	account, err := s.userService.GetByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", "", user.ErrUserNotFound
		}
		return "", "", ErrInternalError
	}
	return s.tokenPair(account)
}

func (s *service) issueTokens(account *user.Account) (string, string, error) {
	accessToken, refreshToken, err := s.tokenPair(account)
	if err != nil {
		return "", "", ErrInternalError
	}
	return accessToken, refreshToken, nil
}

func (s *service) tokenPair(account *user.Account) (string, string, error) {
	accessToken, err := s.jwtManager.GenerateAccessJWT(account.ID, defaultJWTDuration)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(account.ID, account.HashToken, defaultJWTRefreshDuration)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
