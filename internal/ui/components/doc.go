// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the painel dashboard.

Components are plain Lip Gloss renderers or small Bubble Tea sub-models. They
know nothing about the backend: the dashboard feeds them session state and
notification snapshots.

# Components

	RenderHeader (header.go)        - brand, page title and backend host
	StatusBar (statusbar.go)        - session state, countdown, offline badge, shortcuts
	Spinner (spinner.go)            - loading indicator while access is checked
	SessionOverlay (session_overlay.go) - expiring and expired session boxes
	RenderToastStack (toast.go)     - notify.Center snapshot in the bottom-right corner

# Usage

	bar := components.NewStatusBar(theme)
	bar.LoggedIn = state.LoggedIn
	bar.Countdown = state.Countdown()
	bar.Remaining = state.Remaining
	footer := bar.View()

	toasts := components.RenderToastStack(center.Active(), time.Now(), width, height)
*/
package components
