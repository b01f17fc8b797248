// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://x", "not a url", "http://"} {
		_, err := New(raw)
		assert.ErrorIs(t, err, ErrInvalidBaseURL, raw)
	}
}

func TestClient_URL(t *testing.T) {
	c, err := New("https://painel.example.com/api")
	require.NoError(t, err)
	assert.Equal(t, "https://painel.example.com/api/userLogin.php", c.URL(EndpointLogin))
}

func TestLogin_SendsFormAndReturnsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/userLogin.php", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "maria", r.PostForm.Get("username"))
		assert.Equal(t, "s3nha", r.PostForm.Get("password"))
		assert.Equal(t, "fp", r.PostForm.Get("fingerprint"))
		writeJSON(w, map[string]any{"success": true, "token": "abc123"})
	})

	token, err := c.Login(context.Background(), "maria", "s3nha", "fp")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestLogin_Denied(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"success false", map[string]any{"success": false, "message": "Invalid credentials"}},
		{"no token", map[string]any{"success": true}},
		{"null token", map[string]any{"success": true, "token": nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { writeJSON(w, tt.body) })
			_, err := c.Login(context.Background(), "u", "p", "fp")
			assert.ErrorIs(t, err, ErrDenied)
			assert.False(t, errors.Is(err, ErrTransport))
		})
	}
}

func TestVerify_DecodesLooseTypes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		userID    string
		remaining int
		loggedIn  bool
	}{
		{"numbers", `{"success":true,"user_id":7,"message":"ok","remainingTime":900}`, "7", 900, true},
		{"strings", `{"success":true,"user_id":"7","remainingTime":"900"}`, "7", 900, true},
		{"nulls", `{"success":false,"user_id":null,"message":null,"remainingTime":null}`, "", 0, false},
		{"missing", `{"success":true}`, "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			resp, err := c.Verify(context.Background(), "tok", "fp")
			require.NoError(t, err)
			assert.Equal(t, tt.userID, string(resp.UserID))
			assert.Equal(t, tt.remaining, int(resp.RemainingTime))
			assert.Equal(t, tt.loggedIn, resp.LoggedIn())
		})
	}
}

func TestVerify_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>Fatal error</html>`},
		{"missing success", `{"user_id":1}`},
		{"wrong type", `{"success":"yes"}`},
		{"array", `[]`},
		{"bad remaining", `{"success":true,"remainingTime":"soon"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(tt.body)) })
			_, err := c.Verify(context.Background(), "tok", "fp")
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestTransportErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		_, err := c.Verify(context.Background(), "tok", "fp")
		require.ErrorIs(t, err, ErrTransport)
		var be *Error
		require.True(t, errors.As(err, &be))
		assert.Equal(t, http.StatusInternalServerError, be.Status)
		assert.Equal(t, EndpointVerify, be.Endpoint)
	})

	t.Run("timeout", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}, WithTimeout(50*time.Millisecond))
		_, err := c.Verify(context.Background(), "tok", "fp")
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("closed server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		c, err := New(srv.URL)
		require.NoError(t, err)
		srv.Close()
		_, err = c.Login(context.Background(), "u", "p", "")
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestPreflight(t *testing.T) {
	var calls int32
	probe := errors.New("sem banco")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, map[string]any{"connection": true})
	}, WithPreflight(func(context.Context) error { return probe }))

	_, err := c.HasResourcePermission(context.Background(), "tok", "clientes")
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, probe)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	status, err := c.CheckDatabaseConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Connection)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPermissions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.URL.Path {
		case "/api/hasResourcePermission.php":
			writeJSON(w, map[string]any{"success": r.PostForm.Get("resourceName") == "clientes"})
		case "/api/checkPermission.php":
			writeJSON(w, map[string]any{"success": r.PostForm.Get("portID") == "12"})
		}
	})
	ctx := context.Background()

	ok, err := c.HasResourcePermission(ctx, "tok", "clientes")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.HasResourcePermission(ctx, "tok", "precos")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.CheckPermission(ctx, "tok", "12")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		writeJSON(w, map[string]any{"success": r.PostForm.Get("clientID") == "1"})
	})
	assert.NoError(t, c.Delete(context.Background(), EndpointDeleteClient, "tok", "clientID", "1"))
	assert.ErrorIs(t, c.Delete(context.Background(), EndpointDeleteClient, "tok", "clientID", "2"), ErrDenied)
}

func TestRateLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": true})
	}, WithRateLimit(20, 1))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.HasResourcePermission(context.Background(), "tok", "x")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		err  bool
	}{
		{`12`, 12, false},
		{`12.9`, 12, false},
		{`"34"`, 34, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"abc"`, 0, true},
		{`true`, 0, true},
	}
	for _, tt := range tests {
		var f FlexInt
		err := json.Unmarshal([]byte(tt.in), &f)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, int(f), tt.in)
	}
}

func TestFlexFloat_DecimalComma(t *testing.T) {
	var f FlexFloat
	require.NoError(t, json.Unmarshal([]byte(`"12,50"`), &f))
	assert.Equal(t, 12.5, float64(f))
}
