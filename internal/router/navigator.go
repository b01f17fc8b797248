// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"log"
	"sync"
)

// =============================================================================
// NAVIGATOR
// =============================================================================

// Navigator holds the current path and its history. It is safe for
// concurrent use.
type Navigator struct {
	mu        sync.Mutex
	current   string
	history   []string
	listeners []func(from, to string)
}

// NewNavigator starts at start, after resolving redirects.
func NewNavigator(start string) *Navigator {
	return &Navigator{current: Resolve(start)}
}

// Current returns the current path.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Route returns the current route and its parameters.
func (n *Navigator) Route() (Route, map[string]string) {
	return Match(n.Current())
}

// Navigate moves to path. Redirects are followed and unknown paths land
// on the not-found page. Navigating to the current path does nothing.
func (n *Navigator) Navigate(path string) {
	to := Resolve(path)

	n.mu.Lock()
	from := n.current
	if from == to {
		n.mu.Unlock()
		return
	}
	n.history = append(n.history, from)
	n.current = to
	listeners := append([]func(from, to string){}, n.listeners...)
	n.mu.Unlock()

	log.Printf("ROUTER | %s -> %s", from, to)
	for _, fn := range listeners {
		fn(from, to)
	}
}

// Back returns to the previous path. It reports false with no history.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	if len(n.history) == 0 {
		n.mu.Unlock()
		return false
	}
	from := n.current
	to := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	n.current = to
	listeners := append([]func(from, to string){}, n.listeners...)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(from, to)
	}
	return true
}

// History returns the visited paths, oldest first.
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

// OnChange registers fn for every path change.
func (n *Navigator) OnChange(fn func(from, to string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}
