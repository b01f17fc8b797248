// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package offline guards backend connectivity.
//
// Probe runs before backend calls: it dials the backend host, then asks
// checkDatabaseConnection.php whether the database is up. Each failure
// raises the matching notification ("Sem conexão com a Internet!" or
// "Sem conexão com o banco de dados!") and aborts the call. A success is
// reused for a short TTL so a burst of catalog fetches costs one probe.
//
// Offline mode restricts the backend to loopback addresses; it is how the
// client is pointed at the mock backend without risking a production
// host.
//
// # Usage
//
//	offline.SetOfflineMode(true)
//	if err := offline.ValidateBackendURL(cfg.Backend.URL); err != nil {
//	    return err
//	}
//
//	client, _ := backend.New(cfg.Backend.URL)
//	probe, _ := offline.NewProbe(cfg.Backend.URL, client, center)
//	client.SetPreflight(probe.Preflight())
package offline
