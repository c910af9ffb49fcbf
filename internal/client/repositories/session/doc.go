// Package session provides the SQLite-backed session.Store used when the
// client is configured to remember a login between runs.
//
// # Overview
//
// The store keeps a tiny key/value table (email, token, started_at) created by
// the embedded goose migrations in internal/client/migrations. Save replaces
// all keys in one transaction so a crash never leaves a token without its
// email. Load reports session.ErrNoSession when no token is stored.
//
// Typical Usage
//
//	st, err := session.Open(ctx, "session.db")
//	defer st.Close()
//	_ = st.Save(ctx, state)
//	state, err := st.Load(ctx)
package session
