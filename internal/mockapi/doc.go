// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mockapi is an in-memory implementation of the dashboard's PHP
// backend, used for development and for end-to-end tests of the client.
//
// Data comes from YAML fixtures (an embedded default set, or a file).
// Passwords are kept as bcrypt hashes; plain passwords in fixtures are
// hashed at load. Tokens are HS256 JWTs carrying the user, the device
// fingerprint and an exp claim, so verifyUserLogin.php can report the
// remaining lifetime and answer "Token has expired" once it lapses.
//
// # Usage
//
//	fix, _ := mockapi.DefaultFixtures()
//	srv := mockapi.NewServer(fix)
//	http.ListenAndServe("127.0.0.1:8088", srv.Handler())
//
//	// client side
//	client, _ := backend.New("http://127.0.0.1:8088/api")
package mockapi
