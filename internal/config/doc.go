// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for painel.
//
// Supports TOML and JSON configuration files, a .env file in the working
// directory, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: Backend URL, request timeout, and rate limit
//   - SessionConfig: Verification ordering and restore behaviour
//   - StorageConfig: Where the session token is persisted
//   - UIConfig: Theme and countdown display
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (PAINEL_*)
//   - .env in the working directory (never overrides real environment)
//   - ~/.painel/config.toml
//   - ~/.painel/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reload when the file changes:
//
//	stop, err := config.Watch(ctx, path, func(c *config.Config) { ... })
package config
