// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the authentication lifecycle: token acquisition,
// fingerprint-gated verification, the one-second countdown with its
// ten- and five-minute warnings, and the expired-session logout.
//
// A Manager is the single process-wide session. It starts empty and is
// filled by Login or by Restore replaying the persisted token. Backend
// failures never escape as errors; they become a false result plus a
// notification.
//
// # Key Types
//
//   - Manager: the session container
//   - State: snapshot handed to views and the route guard
//   - EvaluateWarnings: pure warning policy driven by the countdown
//
// # Usage
//
//	mgr := session.New(session.Deps{
//	    Backend:     client,
//	    Store:       store,
//	    Fingerprint: fp,
//	    Notifier:    center,
//	})
//	mgr.Start(ctx)
//	mgr.Restore(ctx)
//
//	if mgr.Login(ctx, user, pass) {
//	    mgr.Verify(ctx, mgr.Token())
//	}
//
//	fmt.Println(mgr.Snapshot().Countdown()) // "9 m 59 s"
//
// # Ordering
//
// Overlapping Verify calls are last-resolved-wins. WithFencing(true)
// drops a response that resolves after a newer one was applied.
package session
