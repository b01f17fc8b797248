// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/painel-tui/internal/config"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a string key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

var (
	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrEmptyKey is returned when a key is empty.
	ErrEmptyKey = errors.New("storage key cannot be empty")
)

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "memory":
		return NewMemoryStore(), nil
	case "", "file":
		return NewFileStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.Path)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

// =============================================================================
// SESSION TOKEN
// =============================================================================

// TokenKey is the key the session token is persisted under.
const TokenKey = "userAuthToken"

// SaveToken persists token as a JSON string.
func SaveToken(ctx context.Context, st Store, token string) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return st.Set(ctx, TokenKey, string(data))
}

// LoadToken returns the persisted token. Values written without JSON
// quoting are returned as-is. An empty token reports ok=false.
func LoadToken(ctx context.Context, st Store) (string, bool, error) {
	raw, ok, err := st.Get(ctx, TokenKey)
	if err != nil || !ok {
		return "", false, err
	}
	var token string
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		token = raw
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// RemoveToken deletes the persisted token.
func RemoveToken(ctx context.Context, st Store) error {
	return st.Remove(ctx, TokenKey)
}
