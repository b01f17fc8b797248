// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "github.com/jeranaias/painel-tui/internal/session"

// =============================================================================
// ROUTE GUARD
// =============================================================================

// Decision is the outcome of guarding a protected route.
type Decision int

const (
	// DecisionVerifying shows the blocking loading indicator.
	DecisionVerifying Decision = iota
	// DecisionDenied redirects to the login page.
	DecisionDenied
	// DecisionGranted renders the protected content.
	DecisionGranted
	// DecisionForbidden means the port permission check failed.
	DecisionForbidden
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case DecisionVerifying:
		return "verifying"
	case DecisionDenied:
		return "denied"
	case DecisionGranted:
		return "granted"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// GuardInput is the session state the guard looks at.
type GuardInput struct {
	LoggedIn           bool
	Verifying          bool
	FingerprintPending bool
	Loading            bool
}

// InputFromState extracts the guard input from a session snapshot.
func InputFromState(st session.State) GuardInput {
	return GuardInput{
		LoggedIn:           st.LoggedIn,
		Verifying:          st.Verifying,
		FingerprintPending: st.FingerprintPending,
		Loading:            st.Loading,
	}
}

// Evaluate decides what a protected route shows. A pending fingerprint
// always counts as verifying so no redirect happens before it resolves.
func Evaluate(in GuardInput) Decision {
	switch {
	case in.FingerprintPending, in.Verifying, in.Loading:
		return DecisionVerifying
	case in.LoggedIn:
		return DecisionGranted
	default:
		return DecisionDenied
	}
}

// Capabilities are the effects a view offers the guard.
type Capabilities interface {
	ShowLoading(message string)
	RenderProtected()
	RedirectToLogin()
}

// Apply evaluates in and performs the matching effect on caps.
func Apply(in GuardInput, caps Capabilities) Decision {
	d := Evaluate(in)
	switch d {
	case DecisionVerifying:
		caps.ShowLoading("")
	case DecisionDenied:
		caps.RedirectToLogin()
	case DecisionGranted:
		caps.RenderProtected()
	}
	return d
}
