// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"context"
	"strings"

	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/session"
)

// =============================================================================
// GATE
// =============================================================================

// Session is what the gate needs from the session manager.
type Session interface {
	Snapshot() session.State
	CheckPortPermission(ctx context.Context, portID string) bool
	Logout(ctx context.Context, accountType string) string
}

// Gate combines the route guard, the port permission check and the logout
// route for the navigator's current path.
type Gate struct {
	sess Session
	nav  *Navigator
}

// NewGate creates a gate over sess and nav.
func NewGate(sess Session, nav *Navigator) *Gate {
	return &Gate{sess: sess, nav: nav}
}

// Enter evaluates the current route and performs its effects on caps.
// Public routes render directly. A denied guard navigates to the login
// page; a failed port check navigates to the access-denied page.
func (g *Gate) Enter(ctx context.Context, caps Capabilities) Decision {
	route, params := g.nav.Route()

	if route.Name == "logout" {
		next := g.sess.Logout(ctx, params["accountType"])
		g.nav.Navigate(next)
		return DecisionDenied
	}

	if !route.Protected {
		caps.RenderProtected()
		return DecisionGranted
	}

	st := g.sess.Snapshot()
	in := InputFromState(st)
	d := Evaluate(in)
	switch d {
	case DecisionVerifying:
		caps.ShowLoading("")
		return d
	case DecisionDenied:
		caps.RedirectToLogin()
		g.nav.Navigate(PathLogin)
		return d
	}

	if route.PortID != "" {
		caps.ShowLoading(notify.MsgCheckingAccess)
		if !CheckPort(ctx, g.sess, st.Token, route.PortID) {
			g.nav.Navigate(PathAccessDenied)
			return DecisionForbidden
		}
	}

	caps.RenderProtected()
	return DecisionGranted
}

// CheckPort asks the backend whether token may open portID. An empty
// token or port id is denied without a call.
func CheckPort(ctx context.Context, sess Session, token, portID string) bool {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(portID) == "" {
		return false
	}
	return sess.CheckPortPermission(ctx, portID)
}
