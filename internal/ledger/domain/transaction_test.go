package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dualfin/internal/ledger/errors"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "transaction-1",
		UserID:      "user-1",
		Mode:        ModePersonal,
		Type:        TypeExpense,
		Value:       42.50,
		Date:        time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		Description: "Groceries",
		Recurrence:  RecurrenceOnce,
		Status:      StatusConfirmed,
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(t *Transaction) {}, nil},
		{"business monthly pending", func(t *Transaction) {
			t.Mode = ModeBusiness
			t.Recurrence = RecurrenceMonthly
			t.Status = StatusPending
		}, nil},
		{"yearly income", func(t *Transaction) {
			t.Type = TypeIncome
			t.Recurrence = RecurrenceYearly
		}, nil},
		{"unknown mode", func(t *Transaction) { t.Mode = "corporate" }, errors.ErrInvalidMode},
		{"empty mode", func(t *Transaction) { t.Mode = "" }, errors.ErrInvalidMode},
		{"unknown type", func(t *Transaction) { t.Type = "transfer" }, errors.ErrInvalidType},
		{"zero value", func(t *Transaction) { t.Value = 0 }, errors.ErrNonPositiveValue},
		{"negative value", func(t *Transaction) { t.Value = -10 }, errors.ErrNonPositiveValue},
		{"unknown recurrence", func(t *Transaction) { t.Recurrence = "weekly" }, errors.ErrInvalidRecurrence},
		{"unknown status", func(t *Transaction) { t.Status = "cancelled" }, errors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transaction := validTransaction()
			tt.mutate(&transaction)
			err := transaction.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_ValidateLongDescription(t *testing.T) {
	transaction := validTransaction()
	transaction.Description = strings.Repeat("x", 201)
	assert.True(t, errors.IsValidationError(transaction.Validate()))

	transaction.Description = strings.Repeat("x", 200)
	assert.NoError(t, transaction.Validate())
}

func TestTransaction_ApplyMergesOnlySetFields(t *testing.T) {
	transaction := validTransaction()
	newValue := 99.99
	newStatus := StatusPending

	require.NoError(t, transaction.Apply(TransactionUpdate{
		Value:  &newValue,
		Status: &newStatus,
	}))

	assert.Equal(t, 99.99, transaction.Value)
	assert.Equal(t, StatusPending, transaction.Status)
	// untouched fields survive the merge
	assert.Equal(t, ModePersonal, transaction.Mode)
	assert.Equal(t, TypeExpense, transaction.Type)
	assert.Equal(t, "Groceries", transaction.Description)
}

func TestTransaction_ApplyRejectsInvalidResult(t *testing.T) {
	transaction := validTransaction()
	badValue := -5.0

	err := transaction.Apply(TransactionUpdate{Value: &badValue})
	assert.ErrorIs(t, err, errors.ErrNonPositiveValue)
}
