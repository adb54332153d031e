package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// StorageError indicates the underlying device store failed (quota, I/O).
// Callers are expected to degrade to defaults rather than crash.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// KVStore is the string-keyed persistence contract every higher component
// depends on. Values are JSON strings; missing keys are not errors.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	MultiRemove(ctx context.Context, keys []string) error
}

// KV is the SQLite-backed KVStore implementation.
type KV struct {
	db *sql.DB
}

var _ KVStore = (*KV)(nil)

// Get returns the value for key. The second return is false when the key
// is absent.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (k *KV) Set(ctx context.Context, key, value string) error {
	_, err := k.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (k *KV) Remove(ctx context.Context, key string) error {
	_, err := k.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return &StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// MultiRemove deletes all given keys in one statement.
func (k *KV) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = key
	}
	_, err := k.db.ExecContext(ctx,
		`DELETE FROM kv WHERE key IN (`+placeholders+`)`, args...)
	if err != nil {
		return &StorageError{Op: "multi-remove", Key: strings.Join(keys, ","), Err: err}
	}
	return nil
}

// GetJSON decodes the JSON value at key into v. A missing key or a value
// that fails to decode both report false with v untouched or zeroed;
// corrupt data is treated as no data.
func GetJSON(ctx context.Context, kv KVStore, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, kv KVStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Set(ctx, key, string(raw))
}
