package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"dualfin/internal/ledger/application"
	"dualfin/internal/ledger/domain"
)

// LedgerServiceInterface is what the handlers need from the application
// layer; tests swap in a mock.
type LedgerServiceInterface interface {
	AddTransaction(userID string, transaction *domain.Transaction) error
	GetTransactions(userID, mode string) ([]domain.Transaction, error)
	UpdateTransaction(userID, transactionID string, update domain.TransactionUpdate) error
	DeleteTransaction(userID, transactionID string) error
	AddEvent(userID string, event *domain.CalendarEvent) error
	GetEvents(userID string) ([]domain.CalendarEvent, error)
	UpdateEvent(userID, eventID string, update domain.EventUpdate) error
	DeleteEvent(userID, eventID string) error
	CompleteEvent(userID, eventID string, actualProfit float64) error
	GetBalance(userID, mode string) (float64, error)
	SetBalance(userID, mode string, value float64) error
	CalculatedBalance(userID, mode string) (float64, error)
	GetMonthlySummary(userID, mode string, ref time.Time) (*application.MonthlySummary, error)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func requestUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}
