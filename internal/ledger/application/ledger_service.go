package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"dualfin/internal/ledger/domain"
	ledgerErrors "dualfin/internal/ledger/errors"
)

// LedgerService holds the transaction, event and balance operations for a
// user's ledger. Every write goes through a read-modify-write of the user's
// persisted collection; the mutex keeps those cycles from interleaving, which
// is what makes CompleteEvent's two writes atomic for any observer.
type LedgerService struct {
	repo domain.LedgerRepository
	mu   sync.Mutex
}

func NewLedgerService(repo domain.LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

func (s *LedgerService) AddTransaction(userID string, transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.UserID = userID
	transaction.CreatedAt = time.Now().UTC()
	if err := transaction.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.repo.Transactions(userID)
	if err != nil {
		return err
	}
	transactions = append(transactions, *transaction)
	return s.repo.SaveTransactions(userID, transactions)
}

func (s *LedgerService) GetTransactions(userID, mode string) ([]domain.Transaction, error) {
	transactions, err := s.repo.Transactions(userID)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		if transactions == nil {
			return []domain.Transaction{}, nil
		}
		return transactions, nil
	}

	filtered := []domain.Transaction{}
	for _, transaction := range transactions {
		if transaction.Mode == mode {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}

func (s *LedgerService) UpdateTransaction(userID, transactionID string, update domain.TransactionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.repo.Transactions(userID)
	if err != nil {
		return err
	}
	for i := range transactions {
		if transactions[i].ID == transactionID {
			if err := transactions[i].Apply(update); err != nil {
				return err
			}
			return s.repo.SaveTransactions(userID, transactions)
		}
	}
	return ledgerErrors.ErrTransactionNotFound
}

// DeleteTransaction removes the matching entry. Deleting an id that does not
// exist leaves the collection unchanged and is not an error.
func (s *LedgerService) DeleteTransaction(userID, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.repo.Transactions(userID)
	if err != nil {
		return err
	}
	kept := transactions[:0]
	found := false
	for _, transaction := range transactions {
		if transaction.ID == transactionID {
			found = true
			continue
		}
		kept = append(kept, transaction)
	}
	if !found {
		return nil
	}
	return s.repo.SaveTransactions(userID, kept)
}

func (s *LedgerService) AddEvent(userID string, event *domain.CalendarEvent) error {
	event.ID = uuid.NewString()
	event.UserID = userID
	event.Completed = false
	event.ActualProfit = nil
	event.CreatedAt = time.Now().UTC()
	if err := event.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.Events(userID)
	if err != nil {
		return err
	}
	events = append(events, *event)
	return s.repo.SaveEvents(userID, events)
}

func (s *LedgerService) GetEvents(userID string) ([]domain.CalendarEvent, error) {
	events, err := s.repo.Events(userID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		return []domain.CalendarEvent{}, nil
	}
	return events, nil
}

func (s *LedgerService) UpdateEvent(userID, eventID string, update domain.EventUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.Events(userID)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == eventID {
			if err := events[i].Apply(update); err != nil {
				return err
			}
			return s.repo.SaveEvents(userID, events)
		}
	}
	return ledgerErrors.ErrEventNotFound
}

func (s *LedgerService) DeleteEvent(userID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.Events(userID)
	if err != nil {
		return err
	}
	kept := events[:0]
	found := false
	for _, event := range events {
		if event.ID == eventID {
			found = true
			continue
		}
		kept = append(kept, event)
	}
	if !found {
		return nil
	}
	return s.repo.SaveEvents(userID, kept)
}

// CompleteEvent marks the event completed with the realized profit and
// appends the auto-generated confirmed income transaction. Both collections
// are persisted in a single storage transaction.
func (s *LedgerService) CompleteEvent(userID, eventID string, actualProfit float64) error {
	if actualProfit <= 0 {
		return ledgerErrors.ErrNonPositiveValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.Events(userID)
	if err != nil {
		return err
	}

	var completed *domain.CalendarEvent
	for i := range events {
		if events[i].ID == eventID {
			completed = &events[i]
			break
		}
	}
	if completed == nil {
		return ledgerErrors.ErrEventNotFound
	}
	if completed.Completed {
		return ledgerErrors.ErrEventAlreadyCompleted
	}

	generated := completed.Complete(actualProfit, time.Now().UTC())
	generated.ID = uuid.NewString()

	transactions, err := s.repo.Transactions(userID)
	if err != nil {
		return err
	}
	transactions = append(transactions, generated)

	return s.repo.SaveCompletion(userID, events, transactions)
}

func (s *LedgerService) GetBalance(userID, mode string) (float64, error) {
	if !domain.IsValidMode(mode) {
		return 0, ledgerErrors.ErrInvalidMode
	}
	balances, err := s.repo.Balances(userID)
	if err != nil {
		return 0, err
	}
	for _, balance := range balances {
		if balance.Mode == mode {
			return balance.CurrentBalance, nil
		}
	}
	return 0, nil
}

// SetBalance upserts the baseline for (user, mode); at most one record per
// pair ever exists.
func (s *LedgerService) SetBalance(userID, mode string, value float64) error {
	if !domain.IsValidMode(mode) {
		return ledgerErrors.ErrInvalidMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balances, err := s.repo.Balances(userID)
	if err != nil {
		return err
	}
	for i := range balances {
		if balances[i].Mode == mode {
			balances[i].CurrentBalance = value
			return s.repo.SaveBalances(userID, balances)
		}
	}
	balances = append(balances, domain.Balance{
		UserID:         userID,
		Mode:           mode,
		CurrentBalance: value,
	})
	return s.repo.SaveBalances(userID, balances)
}
