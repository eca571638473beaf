package application

import (
	"time"

	"dualfin/internal/ledger/domain"
	ledgerErrors "dualfin/internal/ledger/errors"
)

// MonthlySummary aggregates the confirmed transactions of one mode within a
// single calendar month.
type MonthlySummary struct {
	Mode         string  `json:"mode"`
	Year         int     `json:"year"`
	Month        string  `json:"month"`
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
}

// CalculatedBalance derives the display balance: baseline plus confirmed
// income minus confirmed expenses of the mode. Pending transactions never
// count. The result is recomputed on every call and never stored.
func (s *LedgerService) CalculatedBalance(userID, mode string) (float64, error) {
	baseline, err := s.GetBalance(userID, mode)
	if err != nil {
		return 0, err
	}
	transactions, err := s.repo.Transactions(userID)
	if err != nil {
		return 0, err
	}

	balance := baseline
	for _, transaction := range transactions {
		if transaction.Mode != mode || transaction.Status != domain.StatusConfirmed {
			continue
		}
		if transaction.Type == domain.TypeIncome {
			balance += transaction.Value
		} else if transaction.Type == domain.TypeExpense {
			balance -= transaction.Value
		}
	}
	return balance, nil
}

// GetMonthlySummary sums confirmed income and expenses of the mode whose date
// falls in ref's month and year.
func (s *LedgerService) GetMonthlySummary(userID, mode string, ref time.Time) (*MonthlySummary, error) {
	if !domain.IsValidMode(mode) {
		return nil, ledgerErrors.ErrInvalidMode
	}
	transactions, err := s.repo.Transactions(userID)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		Mode:  mode,
		Year:  ref.Year(),
		Month: ref.Month().String(),
	}
	for _, transaction := range transactions {
		if transaction.Mode != mode || transaction.Status != domain.StatusConfirmed {
			continue
		}
		if transaction.Date.Year() != ref.Year() || transaction.Date.Month() != ref.Month() {
			continue
		}
		if transaction.Type == domain.TypeIncome {
			summary.IncomeTotal += transaction.Value
		} else if transaction.Type == domain.TypeExpense {
			summary.ExpenseTotal += transaction.Value
		}
	}
	return summary, nil
}
