package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/session"
)

const (
	keyEmail     = "email"
	keyToken     = "token"
	keyStartedAt = "started_at"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLiteStore implements session.Store.
type SQLiteStore struct {
	db *sql.DB
}

var _ session.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save replaces the stored session.
func (r *SQLiteStore) Save(ctx context.Context, s session.State) error {
	return withTx(ctx, r.db, func(tx dbtx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
		values := map[string]string{
			keyEmail:     s.Email,
			keyToken:     s.Token,
			keyStartedAt: s.StartedAt.UTC().Format(time.RFC3339Nano),
		}
		for _, k := range []string{keyEmail, keyToken, keyStartedAt} {
			if err := set(ctx, tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the stored session or session.ErrNoSession.
func (r *SQLiteStore) Load(ctx context.Context) (session.State, error) {
	var zero session.State

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return zero, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return zero, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return zero, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	if values[keyToken] == "" {
		return zero, session.ErrNoSession
	}

	st := session.State{Email: values[keyEmail], Token: values[keyToken]}
	if raw := values[keyStartedAt]; raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return zero, fmt.Errorf("corrupt session started_at %q: %w", raw, err)
		}
		st.StartedAt = t
	}
	return st, nil
}

// Clear removes any stored session.
func (r *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Close() error {
	return r.db.Close()
}

func set(ctx context.Context, tx dbtx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling back
// on error or panic. Panics are rethrown.
func withTx(ctx context.Context, db *sql.DB, fn func(tx dbtx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}
