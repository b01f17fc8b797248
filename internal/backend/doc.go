// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend is the HTTP client for the dashboard's PHP backend.
//
// Every endpoint is a file name under the configured base URL. Requests are
// form-encoded POSTs (checkDatabaseConnection.php is a GET); responses are
// JSON validated against a per-endpoint JSON Schema before decoding, so a
// response of the wrong shape becomes ErrMalformed instead of a zero value.
//
// # Error Kinds
//
//   - ErrTransport: dial failure, timeout, cancelled context, non-2xx status
//   - ErrMalformed: body is not JSON or does not match the endpoint schema
//   - ErrDenied:    the backend answered success:false
//
// All three are carried by *Error and matched with errors.Is.
//
// # Usage
//
//	c, err := backend.New(cfg.Backend.URL,
//	    backend.WithTimeout(cfg.Backend.Timeout()),
//	    backend.WithRateLimit(cfg.Backend.RateLimit, cfg.Backend.RateBurst),
//	)
//	token, err := c.Login(ctx, "maria", "s3nha", fingerprint)
//	if errors.Is(err, backend.ErrDenied) {
//	    // wrong credentials
//	}
package backend
