package infrastructure

import (
	"encoding/json"
	"errors"
	"fmt"

	"dualfin/internal/ledger/domain"
	"dualfin/internal/storage"
)

// KVLedgerRepository stores each per-user collection as one JSON document in
// the key-value store.
type KVLedgerRepository struct {
	store storage.Store
}

func NewKVLedgerRepository(store storage.Store) *KVLedgerRepository {
	return &KVLedgerRepository{store: store}
}

func transactionsKey(userID string) string {
	return fmt.Sprintf("user:%s:transactions", userID)
}

func eventsKey(userID string) string {
	return fmt.Sprintf("user:%s:events", userID)
}

func balancesKey(userID string) string {
	return fmt.Sprintf("user:%s:balances", userID)
}

func (r *KVLedgerRepository) Transactions(userID string) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	if err := r.load(transactionsKey(userID), &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *KVLedgerRepository) SaveTransactions(userID string, transactions []domain.Transaction) error {
	return r.save(transactionsKey(userID), transactions)
}

func (r *KVLedgerRepository) Events(userID string) ([]domain.CalendarEvent, error) {
	var events []domain.CalendarEvent
	if err := r.load(eventsKey(userID), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *KVLedgerRepository) SaveEvents(userID string, events []domain.CalendarEvent) error {
	return r.save(eventsKey(userID), events)
}

func (r *KVLedgerRepository) Balances(userID string) ([]domain.Balance, error) {
	var balances []domain.Balance
	if err := r.load(balancesKey(userID), &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

func (r *KVLedgerRepository) SaveBalances(userID string, balances []domain.Balance) error {
	return r.save(balancesKey(userID), balances)
}

func (r *KVLedgerRepository) SaveCompletion(userID string, events []domain.CalendarEvent, transactions []domain.Transaction) error {
	eventsDoc, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("could not encode events: %v", err)
	}
	transactionsDoc, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("could not encode transactions: %v", err)
	}

	return r.store.Update(func(tx storage.Txn) error {
		if err := tx.Put(eventsKey(userID), string(eventsDoc)); err != nil {
			return err
		}
		return tx.Put(transactionsKey(userID), string(transactionsDoc))
	})
}

// load decodes the document at key into out; a missing key leaves out empty.
func (r *KVLedgerRepository) load(key string, out interface{}) error {
	doc, err := r.store.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return fmt.Errorf("could not decode document %q: %v", key, err)
	}
	return nil
}

func (r *KVLedgerRepository) save(key string, collection interface{}) error {
	doc, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("could not encode document %q: %v", key, err)
	}
	return r.store.Put(key, string(doc))
}
