package domain

import (
	"time"

	"dualfin/internal/ledger/errors"
)

const (
	ModePersonal = "personal"
	ModeBusiness = "business"

	TypeIncome  = "income"
	TypeExpense = "expense"

	RecurrenceOnce    = "once"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Transaction is a single income or expense entry owned by exactly one user.
// Recurrence is informational only, nothing regenerates recurring entries.
type Transaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Mode         string    `json:"mode"`
	Type         string    `json:"type"`
	Value        float64   `json:"value"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	Recurrence   string    `json:"recurrence"`
	Status       string    `json:"status"`
	Observations string    `json:"observations,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func IsValidMode(mode string) bool {
	return mode == ModePersonal || mode == ModeBusiness
}

func IsValidTransactionType(transactionType string) bool {
	return transactionType == TypeIncome || transactionType == TypeExpense
}

func IsValidRecurrence(recurrence string) bool {
	return recurrence == RecurrenceOnce || recurrence == RecurrenceMonthly || recurrence == RecurrenceYearly
}

func IsValidStatus(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

func (t *Transaction) Validate() error {
	if !IsValidMode(t.Mode) {
		return errors.ErrInvalidMode
	}
	if !IsValidTransactionType(t.Type) {
		return errors.ErrInvalidType
	}
	if t.Value <= 0 {
		return errors.ErrNonPositiveValue
	}
	if !IsValidRecurrence(t.Recurrence) {
		return errors.ErrInvalidRecurrence
	}
	if !IsValidStatus(t.Status) {
		return errors.ErrInvalidStatus
	}
	if len(t.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}

// TransactionUpdate carries a partial update; nil fields keep their value.
type TransactionUpdate struct {
	Mode         *string    `json:"mode"`
	Type         *string    `json:"type"`
	Value        *float64   `json:"value"`
	Date         *time.Time `json:"date"`
	Description  *string    `json:"description"`
	Recurrence   *string    `json:"recurrence"`
	Status       *string    `json:"status"`
	Observations *string    `json:"observations"`
}

func (t *Transaction) Apply(update TransactionUpdate) error {
	if update.Mode != nil {
		t.Mode = *update.Mode
	}
	if update.Type != nil {
		t.Type = *update.Type
	}
	if update.Value != nil {
		t.Value = *update.Value
	}
	if update.Date != nil {
		t.Date = *update.Date
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Recurrence != nil {
		t.Recurrence = *update.Recurrence
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.Observations != nil {
		t.Observations = *update.Observations
	}
	return t.Validate()
}
