package interfaces

import (
	"time"

	"dualfin/internal/ledger/application"
	"dualfin/internal/ledger/domain"
)

// MockLedgerService lets handler tests script single operations; unset
// functions panic so a test cannot silently exercise the wrong path.
type MockLedgerService struct {
	AddTransactionFn    func(userID string, transaction *domain.Transaction) error
	GetTransactionsFn   func(userID, mode string) ([]domain.Transaction, error)
	UpdateTransactionFn func(userID, transactionID string, update domain.TransactionUpdate) error
	DeleteTransactionFn func(userID, transactionID string) error
	AddEventFn          func(userID string, event *domain.CalendarEvent) error
	GetEventsFn         func(userID string) ([]domain.CalendarEvent, error)
	UpdateEventFn       func(userID, eventID string, update domain.EventUpdate) error
	DeleteEventFn       func(userID, eventID string) error
	CompleteEventFn     func(userID, eventID string, actualProfit float64) error
	GetBalanceFn        func(userID, mode string) (float64, error)
	SetBalanceFn        func(userID, mode string, value float64) error
	CalculatedBalanceFn func(userID, mode string) (float64, error)
	GetMonthlySummaryFn func(userID, mode string, ref time.Time) (*application.MonthlySummary, error)
}

func (m *MockLedgerService) AddTransaction(userID string, transaction *domain.Transaction) error {
	if m.AddTransactionFn == nil {
		panic("AddTransaction not scripted")
	}
	return m.AddTransactionFn(userID, transaction)
}

func (m *MockLedgerService) GetTransactions(userID, mode string) ([]domain.Transaction, error) {
	if m.GetTransactionsFn == nil {
		panic("GetTransactions not scripted")
	}
	return m.GetTransactionsFn(userID, mode)
}

func (m *MockLedgerService) UpdateTransaction(userID, transactionID string, update domain.TransactionUpdate) error {
	if m.UpdateTransactionFn == nil {
		panic("UpdateTransaction not scripted")
	}
	return m.UpdateTransactionFn(userID, transactionID, update)
}

func (m *MockLedgerService) DeleteTransaction(userID, transactionID string) error {
	if m.DeleteTransactionFn == nil {
		panic("DeleteTransaction not scripted")
	}
	return m.DeleteTransactionFn(userID, transactionID)
}

func (m *MockLedgerService) AddEvent(userID string, event *domain.CalendarEvent) error {
	if m.AddEventFn == nil {
		panic("AddEvent not scripted")
	}
	return m.AddEventFn(userID, event)
}

func (m *MockLedgerService) GetEvents(userID string) ([]domain.CalendarEvent, error) {
	if m.GetEventsFn == nil {
		panic("GetEvents not scripted")
	}
	return m.GetEventsFn(userID)
}

func (m *MockLedgerService) UpdateEvent(userID, eventID string, update domain.EventUpdate) error {
	if m.UpdateEventFn == nil {
		panic("UpdateEvent not scripted")
	}
	return m.UpdateEventFn(userID, eventID, update)
}

func (m *MockLedgerService) DeleteEvent(userID, eventID string) error {
	if m.DeleteEventFn == nil {
		panic("DeleteEvent not scripted")
	}
	return m.DeleteEventFn(userID, eventID)
}

func (m *MockLedgerService) CompleteEvent(userID, eventID string, actualProfit float64) error {
	if m.CompleteEventFn == nil {
		panic("CompleteEvent not scripted")
	}
	return m.CompleteEventFn(userID, eventID, actualProfit)
}

func (m *MockLedgerService) GetBalance(userID, mode string) (float64, error) {
	if m.GetBalanceFn == nil {
		panic("GetBalance not scripted")
	}
	return m.GetBalanceFn(userID, mode)
}

func (m *MockLedgerService) SetBalance(userID, mode string, value float64) error {
	if m.SetBalanceFn == nil {
		panic("SetBalance not scripted")
	}
	return m.SetBalanceFn(userID, mode, value)
}

func (m *MockLedgerService) CalculatedBalance(userID, mode string) (float64, error) {
	if m.CalculatedBalanceFn == nil {
		panic("CalculatedBalance not scripted")
	}
	return m.CalculatedBalanceFn(userID, mode)
}

func (m *MockLedgerService) GetMonthlySummary(userID, mode string, ref time.Time) (*application.MonthlySummary, error) {
	if m.GetMonthlySummaryFn == nil {
		panic("GetMonthlySummary not scripted")
	}
	return m.GetMonthlySummaryFn(userID, mode, ref)
}
