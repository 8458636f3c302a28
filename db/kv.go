package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Get returns the value stored under key. found is false when the key has
// never been written.
func (db *DB) Get(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (db *DB) Set(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// GetEntry returns the full row for key
func (db *DB) GetEntry(key string) (*Entry, error) {
	var entry Entry
	err := db.conn.QueryRow(
		"SELECT key, value, updated_at FROM kv_store WHERE key = ?",
		key,
	).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %q not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &entry, nil
}
