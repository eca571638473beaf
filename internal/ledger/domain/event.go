package domain

import (
	"fmt"
	"time"

	"dualfin/internal/ledger/errors"
)

// CalendarEvent is a planned profit-generating event. It starts not completed
// and transitions exactly once to completed; the transition is not undone.
type CalendarEvent struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Date           time.Time `json:"date"`
	ExpectedProfit float64   `json:"expected_profit"`
	ActualProfit   *float64  `json:"actual_profit,omitempty"`
	Completed      bool      `json:"completed"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (e *CalendarEvent) Validate() error {
	if e.Name == "" {
		return errors.NewValidationError("Name must not be empty")
	}
	if e.ExpectedProfit <= 0 {
		return errors.NewValidationError("Expected profit must be greater than zero")
	}
	return nil
}

// Complete marks the event done and builds the confirmed income transaction
// the completion generates. The transaction is always a personal income on
// the event's date, regardless of which mode the caller is working in.
func (e *CalendarEvent) Complete(actualProfit float64, now time.Time) Transaction {
	e.Completed = true
	e.ActualProfit = &actualProfit

	return Transaction{
		UserID:       e.UserID,
		Mode:         ModePersonal,
		Type:         TypeIncome,
		Value:        actualProfit,
		Date:         e.Date,
		Description:  fmt.Sprintf("Profit from event: %s", e.Name),
		Recurrence:   RecurrenceOnce,
		Status:       StatusConfirmed,
		Observations: fmt.Sprintf("Auto-generated from event %s", e.Name),
		CreatedAt:    now,
	}
}

// EventUpdate carries a partial update; nil fields keep their value.
// Completion state is never touched here, that goes through CompleteEvent.
type EventUpdate struct {
	Name           *string    `json:"name"`
	Date           *time.Time `json:"date"`
	ExpectedProfit *float64   `json:"expected_profit"`
	Description    *string    `json:"description"`
}

func (e *CalendarEvent) Apply(update EventUpdate) error {
	if update.Name != nil {
		e.Name = *update.Name
	}
	if update.Date != nil {
		e.Date = *update.Date
	}
	if update.ExpectedProfit != nil {
		e.ExpectedProfit = *update.ExpectedProfit
	}
	if update.Description != nil {
		e.Description = *update.Description
	}
	return e.Validate()
}
