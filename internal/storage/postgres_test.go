package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed store test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		postgres.WithDatabase("dualfin_test"),
		postgres.WithUsername("dualfin"),
		postgres.WithPassword("dualfin"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("could not terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())

	return db
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	db := startPostgres(t)
	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	_, err = store.Get("missing")
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	assert.NoError(t, store.Put("accounts", `{"a@x.com":{}}`))
	value, err := store.Get("accounts")
	assert.NoError(t, err)
	assert.Equal(t, `{"a@x.com":{}}`, value)

	// upsert replaces the stored document
	assert.NoError(t, store.Put("accounts", `{}`))
	value, err = store.Get("accounts")
	assert.NoError(t, err)
	assert.Equal(t, `{}`, value)

	assert.NoError(t, store.Delete("accounts"))
	_, err = store.Get("accounts")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestPostgresStore_UpdateIsAtomic(t *testing.T) {
	db := startPostgres(t)
	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	require.NoError(t, store.Put("events", "old"))

	boom := errors.New("boom")
	err = store.Update(func(tx Txn) error {
		if err := tx.Put("events", "new"); err != nil {
			return err
		}
		if err := tx.Put("transactions", "new"); err != nil {
			return err
		}
		return boom
	})
	assert.True(t, errors.Is(err, boom))

	events, err := store.Get("events")
	assert.NoError(t, err)
	assert.Equal(t, "old", events)
	_, err = store.Get("transactions")
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	err = store.Update(func(tx Txn) error {
		if err := tx.Put("events", "new"); err != nil {
			return err
		}
		return tx.Put("transactions", "new")
	})
	assert.NoError(t, err)

	events, err = store.Get("events")
	assert.NoError(t, err)
	assert.Equal(t, "new", events)
	transactions, err := store.Get("transactions")
	assert.NoError(t, err)
	assert.Equal(t, "new", transactions)
}
