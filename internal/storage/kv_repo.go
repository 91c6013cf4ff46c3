package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a key has no value.
	ErrNotFound = errors.New("record not found")
)

// KVRepo is the key-value backend shared by every context.
// Each Set replaces the whole value of one key in a single statement;
// nothing larger is atomic.
type KVRepo struct {
	db *sql.DB
}

// NewKVRepo creates a new KVRepo.
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key.
// Returns nil and ErrNotFound if the key was never written.
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := r.GetEntry(ctx, key)
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

// GetEntry returns the full row stored under key.
func (r *KVRepo) GetEntry(ctx context.Context, key string) (*Entry, error) {
	var entry Entry
	var value string
	var updatedAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT key, value, updated_at FROM kv WHERE key = ?",
		key,
	).Scan(&entry.Key, &value, &updatedAtStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query key %q: %w", key, err)
	}
	entry.Value = []byte(value)

	// SQLite may hand back either layout depending on how the row was written.
	entry.UpdatedAt, err = time.Parse("2006-01-02 15:04:05", updatedAtStr)
	if err != nil {
		entry.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
		}
	}

	return &entry, nil
}

// Set replaces the value stored under key.
func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET
		 value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Ping verifies the backend is reachable.
func (r *KVRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
