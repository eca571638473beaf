package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dualfin/internal/storage"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// accountsKey holds the whole credential store: one JSON document mapping
// email (case-sensitive) to the stored account.
const accountsKey = "accounts"

type accountRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	HashToken    string    `json:"hash_token"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	createAccount(account *Account) error
	getAccountByEmail(email string) (*Account, error)
	getAccountByID(id string) (*Account, error)
	updateHashToken(id, hashToken string) error
}

type kvRepository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &kvRepository{store: store}
}

// createAccount checks the email and inserts inside one store transaction,
// so two concurrent signups cannot both claim the same email.
func (r *kvRepository) createAccount(account *Account) error {
	return r.store.Update(func(tx storage.Txn) error {
		accounts, err := loadAccounts(tx.Get)
		if err != nil {
			return err
		}
		if _, exists := accounts[account.Email]; exists {
			return ErrEmailAlreadyExists
		}
		accounts[account.Email] = accountRecord{
			ID:           account.ID,
			Email:        account.Email,
			Name:         account.Name,
			PasswordHash: account.PasswordHash,
			HashToken:    account.HashToken,
			CreatedAt:    account.CreatedAt,
		}
		return saveAccounts(tx.Put, accounts)
	})
}

func (r *kvRepository) getAccountByEmail(email string) (*Account, error) {
	accounts, err := loadAccounts(r.store.Get)
	if err != nil {
		return nil, err
	}
	record, exists := accounts[email]
	if !exists {
		return nil, ErrUserNotFound
	}
	return record.toAccount(), nil
}

func (r *kvRepository) getAccountByID(id string) (*Account, error) {
	accounts, err := loadAccounts(r.store.Get)
	if err != nil {
		return nil, err
	}
	for _, record := range accounts {
		if record.ID == id {
			return record.toAccount(), nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *kvRepository) updateHashToken(id, hashToken string) error {
	return r.store.Update(func(tx storage.Txn) error {
		accounts, err := loadAccounts(tx.Get)
		if err != nil {
			return err
		}
		for email, record := range accounts {
			if record.ID == id {
				record.HashToken = hashToken
				accounts[email] = record
				return saveAccounts(tx.Put, accounts)
			}
		}
		return ErrUserNotFound
	})
}

func (record accountRecord) toAccount() *Account {
	return &Account{
		ID:           record.ID,
		Email:        record.Email,
		Name:         record.Name,
		PasswordHash: record.PasswordHash,
		HashToken:    record.HashToken,
		CreatedAt:    record.CreatedAt,
	}
}

func loadAccounts(get func(key string) (string, error)) (map[string]accountRecord, error) {
	doc, err := get(accountsKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return make(map[string]accountRecord), nil
		}
		return nil, err
	}
	accounts := make(map[string]accountRecord)
	if err := json.Unmarshal([]byte(doc), &accounts); err != nil {
		return nil, fmt.Errorf("could not decode accounts document: %v", err)
	}
	return accounts, nil
}

func saveAccounts(put func(key, value string) error, accounts map[string]accountRecord) error {
	doc, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("could not encode accounts document: %v", err)
	}
	return put(accountsKey, string(doc))
}
