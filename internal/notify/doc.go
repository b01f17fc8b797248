// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify is the non-blocking notification center shared by the
// session lifecycle, the catalog service and the TUI toast stack.
//
// Notifications may carry a key. Showing a notification whose key is
// already visible does nothing, so repeated triggers never stack.
// Persistent notifications (Duration 0) stay until dismissed by key.
//
// # Usage
//
//	center := notify.NewCenter()
//	center.Show(notify.PersistentWarning(notify.KeyTenMinute, notify.MsgTenMinute))
//	center.Show(notify.Error("Ocorreu um erro ao buscar clientes!"))
//
//	// render loop
//	for _, n := range center.Tick() {
//	    fmt.Println(n.Kind, n.Message)
//	}
//
//	notify.DismissSessionWarnings(center)
package notify
