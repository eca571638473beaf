package storage

import "errors"

var ErrKeyNotFound = errors.New("key not found")

// Store is the durable key-value storage all application state lives in.
// Keys and values are plain strings; values hold JSON documents.
type Store interface {
	Get(key string) (string, error)
	Put(key, value string) error
	Delete(key string) error
	// Update runs fn against a transactional view of the store. Writes made
	// through the Txn become visible together or not at all.
	Update(fn func(tx Txn) error) error
}

type Txn interface {
	Get(key string) (string, error)
	Put(key, value string) error
	Delete(key string) error
}
