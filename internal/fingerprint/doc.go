// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fingerprint computes a stable device fingerprint that binds a
// session token to the machine it was issued on.
//
// The fingerprint is computed once per process, in the background, from
// best-effort device signals (hostname, platform, kernel, CPU count, locale,
// terminal, and a per-installation salt) hashed with BLAKE2b-256. Callers
// must treat "still computing" as its own state: no login or verification
// should be sent before Done is closed.
//
// # Usage
//
//	fp := fingerprint.New(fingerprint.WithStore(st))
//	fp.Start(ctx)
//
//	if fp.Pending() {
//	    // show loading, do not redirect
//	}
//	value := fp.Wait(ctx) // "" if collection failed
package fingerprint
