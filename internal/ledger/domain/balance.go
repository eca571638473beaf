package domain

// Balance is the manually-set baseline for one (user, mode) pair. The
// calculated balance is derived from it plus confirmed transactions and is
// never stored.
type Balance struct {
	UserID         string  `json:"user_id"`
	Mode           string  `json:"mode"`
	CurrentBalance float64 `json:"current_balance"`
}

// LedgerRepository persists the per-user collections. Collections keep
// insertion order. SaveCompletion writes events and transactions in one
// storage transaction so no reader observes a completed event without its
// generated transaction, or the other way around.
type LedgerRepository interface {
	Transactions(userID string) ([]Transaction, error)
	SaveTransactions(userID string, transactions []Transaction) error
	Events(userID string) ([]CalendarEvent, error)
	SaveEvents(userID string, events []CalendarEvent) error
	Balances(userID string) ([]Balance, error)
	SaveBalances(userID string, balances []Balance) error
	SaveCompletion(userID string, events []CalendarEvent, transactions []Transaction) error
}
