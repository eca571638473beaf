package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength = 254
	bcryptCost     = 12
)

var (
	ErrInvalidEmail  = errors.New("email address is not valid")
	ErrInternalError = errors.New("internal server error")
)

// Account is a registered user. The password hash and the hash token never
// leave the package through JSON.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	HashToken    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Service interface {
	Register(email, password, name string) (*Account, error)
	GetByEmail(email string) (*Account, error)
	GetByID(id string) (*Account, error)
	CheckPassword(account *Account, password string) bool
	RotateHashToken(id string) (string, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

// generateHashToken returns the per-account random value refresh tokens are
// bound to; rotating it invalidates every outstanding refresh token.
func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(email, password, name string) (*Account, error) {
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errors.New("password must not be empty")
	}
	if name == "" {
		// Fall back to the local part, the way most signup forms prefill it.
		name = strings.Split(email, "@")[0]
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}
	hashToken, err := generateHashToken()
	if err != nil {
		return nil, ErrInternalError
	}

	account := &Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		HashToken:    hashToken,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.createAccount(account); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, ErrInternalError
	}
	return account, nil
}

func (s *service) GetByEmail(email string) (*Account, error) {
	return s.repo.getAccountByEmail(email)
}

func (s *service) GetByID(id string) (*Account, error) {
	return s.repo.getAccountByID(id)
}

func (s *service) CheckPassword(account *Account, password string) bool {
	return doPasswordsMatch(account.PasswordHash, password)
}

func (s *service) RotateHashToken(id string) (string, error) {
	hashToken, err := generateHashToken()
	if err != nil {
		return "", ErrInternalError
	}
	if err := s.repo.updateHashToken(id, hashToken); err != nil {
		return "", err
	}
	return hashToken, nil
}
