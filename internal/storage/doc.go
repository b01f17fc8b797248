// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides client-side persistent key/value storage for
// painel. Its main tenant is the session token, kept under a single fixed
// key so it survives restarts and is removed on logout or expiry.
//
// # Drivers
//
//   - memory: process lifetime only (tests, --no-persist)
//   - file:   JSON map in ~/.painel/storage.json, written atomically
//   - sqlite: key/value table in ~/.painel/painel.db (modernc.org/sqlite)
//   - redis:  shared store for several terminals (go-redis)
//
// # Usage
//
//	st, err := storage.Open(ctx, cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	_ = storage.SaveToken(ctx, st, "abc123")
//	token, ok, _ := storage.LoadToken(ctx, st)
package storage
