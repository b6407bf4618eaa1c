// Package storage provides the durable key-value capability the SDK uses to
// survive process restarts.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Keys persisted by the SDK.
const (
	KeyProjectID = "mobiqo_project_id"
	KeySessionID = "mobiqo_session_id"
	KeyInstallID = "mobiqo_install_id"

	// Written by pre-1.0 builds; removed on dispose so stale installs
	// converge on the current key set.
	KeyLegacyAPIKey = "mobiqo_api_key"
	KeyLegacyUserID = "mobiqo_user_id"
)

// Store is a minimal string key-value capability.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// KeyValueStore persists entries in the local sqlite database.
type KeyValueStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewKeyValueStore creates a sqlite-backed store over an open database.
func NewKeyValueStore(db *sql.DB, logger *zap.Logger) *KeyValueStore {
	return &KeyValueStore{
		db:     db,
		logger: logger,
	}
}

// Get returns the value for key and whether it was present.
func (kv *KeyValueStore) Get(key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRow(`SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read entry %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes or replaces the value for key.
func (kv *KeyValueStore) Set(key, value string) error {
	_, err := kv.db.Exec(`
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write entry %q: %w", key, err)
	}

	kv.logger.Debug("Entry persisted", zap.String("key", key))
	return nil
}

// Remove deletes the entry for key. Removing an absent key is not an error.
func (kv *KeyValueStore) Remove(key string) error {
	_, err := kv.db.Exec(`DELETE FROM kv_entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to remove entry %q: %w", key, err)
	}
	return nil
}
