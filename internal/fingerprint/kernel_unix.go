// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build unix

package fingerprint

import "golang.org/x/sys/unix"

// kernelSignals reads uname(2). Failure yields no signals.
func kernelSignals() []Signal {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return nil
	}
	return []Signal{
		{Name: "sysname", Value: unix.ByteSliceToString(u.Sysname[:])},
		{Name: "release", Value: unix.ByteSliceToString(u.Release[:])},
		{Name: "machine", Value: unix.ByteSliceToString(u.Machine[:])},
	}
}
