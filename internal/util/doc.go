// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across painel packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//   - PainelDir: Per-user state directory (~/.painel)
//
// Display:
//   - Truncate: Width-aware truncation with ellipsis
//   - PadRight: Width-aware column padding for tables
//   - ShortToken: Redacted token prefix for logs and status output
//
// # Usage
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
//
//	// Fit a client name into a 24-column cell
//	cell := util.PadRight(util.Truncate(name, 24), 24)
package util
