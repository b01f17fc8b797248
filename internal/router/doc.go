// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router maps dashboard paths to routes and guards the protected
// ones.
//
// # Key Types
//
//   - Route: one entry of the route table
//   - Navigator: current path, history and change listeners
//   - Decision: Verifying, Denied, Granted or Forbidden
//   - Gate: guard plus port permission check for the current route
//
// # Usage
//
//	nav := router.NewNavigator(router.PathLogin)
//	gate := router.NewGate(mgr, nav)
//
//	nav.Navigate(router.PathClients)
//	switch gate.Enter(ctx, view) {
//	case router.DecisionVerifying:
//	    // spinner
//	case router.DecisionGranted:
//	    // render
//	}
//
// # Guard
//
// While the device fingerprint is still resolving, Evaluate reports
// Verifying no matter what the session says, so a restored session is
// never bounced to the login page early.
package router
