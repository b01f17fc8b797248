// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build property
// +build property

package session

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jeranaias/painel-tui/internal/notify"
)

// countShows counts every notification with key that reaches the center.
func countShows(h *harness, key string) *int {
	n := new(int)
	h.center.OnShow(func(note notify.Notification) {
		if note.Key == key {
			*n++
		}
	})
	return n
}

// Property: N ticks from an authoritative N end at exactly 0 and never go
// negative.
func TestCountdownReachesZero(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("remaining hits zero after exactly N ticks", prop.ForAll(
		func(n, extra int) bool {
			h := newHarness(t)
			h.loggedIn(t, n)
			for i := 0; i < n; i++ {
				if h.mgr.Snapshot().Remaining != n-i {
					return false
				}
				h.mgr.Tick()
			}
			if h.mgr.Snapshot().Remaining != 0 {
				return false
			}
			for i := 0; i < extra; i++ {
				h.mgr.Tick()
				if h.mgr.Snapshot().Remaining != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 1500),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

// Property: the five-minute warning fires once per authoritative value
// below 300.
func TestFiveMinuteWarningOnce(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("five-minute warning fires exactly once", prop.ForAll(
		func(n int) bool {
			h := newHarness(t)
			shows := countShows(h, notify.KeyFiveMinute)
			h.loggedIn(t, n)
			for i := 0; i < n+5; i++ {
				h.mgr.Tick()
			}
			return *shows == 1
		},
		gen.IntRange(1, FiveMinutes-1),
	))

	properties.TestingRun(t)
}

// Property: the ten-minute warning fires once per authoritative value in
// [300, 600) and is gone once the countdown drops below 300.
func TestTenMinuteWarningOnceThenSuperseded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("ten-minute warning fires once and is dismissed below 300", prop.ForAll(
		func(n int) bool {
			h := newHarness(t)
			tens := countShows(h, notify.KeyTenMinute)
			h.loggedIn(t, n)
			if !h.center.Visible(notify.KeyTenMinute) {
				return false
			}
			for i := 0; i < n-FiveMinutes+1; i++ {
				h.mgr.Tick()
			}
			return *tens == 1 &&
				!h.center.Visible(notify.KeyTenMinute) &&
				h.center.Visible(notify.KeyFiveMinute)
		},
		gen.IntRange(FiveMinutes, TenMinutes-1),
	))

	properties.TestingRun(t)
}

// Property: EvaluateWarnings never emits anything while loading.
func TestEvaluateWarningsLoadingIsInert(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("loading suppresses all actions", prop.ForAll(
		func(remaining, authoritative int, ten, five bool) bool {
			ws := WarningState{TenShown: ten, FiveShown: five}
			got, actions := EvaluateWarnings(Input{
				Remaining:     remaining,
				Authoritative: authoritative,
				Loading:       true,
			}, ws)
			return got == ws && len(actions) == 0
		},
		gen.IntRange(-10, 5000),
		gen.IntRange(-10, 5000),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
