package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// PostgresStore keeps every record in a single key/value table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS dualfin_kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := s.db.Exec(query)
	if err != nil {
		return fmt.Errorf("could not create kv table: %v", err)
	}
	return nil
}

func (s *PostgresStore) Get(key string) (string, error) {
	query := `
		SELECT value FROM dualfin_kv
		WHERE key = $1
	`
	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("could not read key %q: %v", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Put(key, value string) error {
	query := `
        INSERT INTO dualfin_kv (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE
        SET value = $2, updated_at = NOW()
    `
	_, err := s.db.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("could not write key %q: %v", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(key string) error {
	query := `
        DELETE FROM dualfin_kv
        WHERE key = $1
    `
	_, err := s.db.Exec(query, key)
	if err != nil {
		return fmt.Errorf("could not delete key %q: %v", key, err)
	}
	return nil
}

func (s *PostgresStore) Update(fn func(tx Txn) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin store transaction: %v", err)
	}
	if err := fn(&postgresTxn{tx: tx}); err != nil {
		safeRollback(tx)
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit store transaction: %v", err)
	}
	return nil
}

func safeRollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Printf("Error during store transaction rollback: %v", err)
	}
}

type postgresTxn struct {
	tx *sql.Tx
}

func (t *postgresTxn) Get(key string) (string, error) {
	var value string
	err := t.tx.QueryRow(`SELECT value FROM dualfin_kv WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("could not read key %q: %v", key, err)
	}
	return value, nil
}

func (t *postgresTxn) Put(key, value string) error {
	query := `
        INSERT INTO dualfin_kv (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE
        SET value = $2, updated_at = NOW()
    `
	_, err := t.tx.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("could not write key %q: %v", key, err)
	}
	return nil
}

func (t *postgresTxn) Delete(key string) error {
	_, err := t.tx.Exec(`DELETE FROM dualfin_kv WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("could not delete key %q: %v", key, err)
	}
	return nil
}
