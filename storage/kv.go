// Package storage persists chat state in a small sqlite database. The
// schema is a single key/value table; the session layer stores JSON
// documents under fixed keys.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// KV is a sqlite-backed key/value store.
type KV struct {
	db *sql.DB
}

// OpenKV opens (creating if needed) the database at dbPath.
func OpenKV(dbPath string) (*KV, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	kv := &KV{db: db}

	if err := kv.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return kv, nil
}

func (kv *KV) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := kv.db.Exec(schema)
	return err
}

// Get returns the value stored under key. The second return is false
// when the key is absent.
func (kv *KV) Get(key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (kv *KV) Set(key, value string) error {
	_, err := kv.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (kv *KV) Delete(key string) error {
	_, err := kv.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (kv *KV) Close() error {
	return kv.db.Close()
}
