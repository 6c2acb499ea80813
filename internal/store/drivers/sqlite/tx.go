package sqlite

import (
	"context"
	"database/sql"

	"github.com/quietstudy/studytrack/internal/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // nothing to close; outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) InviteCodes() store.InviteCodes     { return &inviteCodesRepo{db: t.tx} }
func (t *txStore) Subjects() store.Subjects           { return &subjectsRepo{db: t.tx} }
func (t *txStore) StudySessions() store.StudySessions { return &studySessionsRepo{db: t.tx} }
func (t *txStore) WordLogs() store.WordLogs           { return &wordLogsRepo{db: t.tx} }
func (t *txStore) Goals() store.Goals                 { return &goalsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // no-op; migrations run before any tx
