package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// SQL is a KV backed by a single kv_store table. It supports both the
// sqlite and postgres drivers; the upsert statement is chosen at
// construction time.
type SQL struct {
	db        *sql.DB
	upsertSQL string
	getSQL    string
	deleteSQL string
}

func NewSQL(db *sql.DB, driver string) (*SQL, error) {
	s := &SQL{db: db}
	switch driver {
	case "postgres":
		s.upsertSQL = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
		s.getSQL = `SELECT value FROM kv_store WHERE key = $1`
		s.deleteSQL = `DELETE FROM kv_store WHERE key = $1`
	case "sqlite3":
		s.upsertSQL = `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
		s.getSQL = `SELECT value FROM kv_store WHERE key = ?`
		s.deleteSQL = `DELETE FROM kv_store WHERE key = ?`
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
	return s, nil
}

// Get returns (nil, false) on any read failure; callers fall back to
// fresh defaults rather than failing.
func (s *SQL) Get(key string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRow(s.getSQL, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("[storage] read %q: %v", key, err)
		return nil, false
	}
	return value, true
}

func (s *SQL) Set(key string, value []byte) error {
	if _, err := s.db.Exec(s.upsertSQL, key, value); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(key string) error {
	if _, err := s.db.Exec(s.deleteSQL, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
