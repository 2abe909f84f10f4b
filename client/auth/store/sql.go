package store

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/oauth2"
	_ "modernc.org/sqlite"
)

const sqlSchema = `CREATE TABLE IF NOT EXISTS credential_store (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

const sqlUpsert = `INSERT INTO credential_store (name, value) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET value = excluded.value`

// SQLStore keeps entries in a key/value table, by default in a SQLite file.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating when needed) a SQLite backed store at dsn.
func OpenSQLite(dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	db.SetMaxOpenConns(1)
	return NewSQLStore(db)
}

// NewSQLStore creates a Store over db, ensuring its table exists.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if _, err := db.Exec(sqlSchema); err != nil {
		return nil, fmt.Errorf("failed to initialise credential table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close releases the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) get(ctx context.Context, name string) (string, bool) {
	var value string
	if err := s.db.QueryRowContext(ctx, `SELECT value FROM credential_store WHERE name = ?`, name).Scan(&value); err != nil {
		return "", false
	}
	return value, true
}

func (s *SQLStore) put(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for name, value := range values {
		if _, err = tx.ExecContext(ctx, sqlUpsert, name, value); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) LookupToken() (*oauth2.Token, bool) {
	value, ok := s.get(context.Background(), TokenKey)
	if !ok || value == "" {
		return nil, false
	}
	return NewToken(value), true
}

func (s *SQLStore) AddToken(token *oauth2.Token) error {
	if err := s.put(context.Background(), map[string]string{TokenKey: token.AccessToken}); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (s *SQLStore) RemoveToken() error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, name := range keys {
		if _, err = tx.ExecContext(ctx, `DELETE FROM credential_store WHERE name = ?`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to remove token: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) LookupProfile() (*Profile, bool) {
	ctx := context.Background()
	values := map[string]string{}
	for _, name := range []string{UsernameKey, RolesKey, LoggedInKey} {
		if value, ok := s.get(ctx, name); ok {
			values[name] = value
		}
	}
	return decodeProfile(values)
}

func (s *SQLStore) AddProfile(profile *Profile) error {
	if err := s.put(context.Background(), encodeProfile(profile)); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}
