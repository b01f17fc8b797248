// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/painel-tui/internal/backend"
	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/notify"
)

// =============================================================================
// MODE MANAGEMENT TESTS
// =============================================================================

func TestSetOfflineMode(t *testing.T) {
	original := IsOfflineMode()
	defer SetOfflineMode(original)

	SetOfflineMode(true)
	assert.True(t, IsOfflineMode())
	assert.Equal(t, "[OFFLINE]", StatusBadge())

	SetOfflineMode(false)
	assert.False(t, IsOfflineMode())
	assert.Empty(t, StatusBadge())
}

func TestIsOfflineMode_ThreadSafe(t *testing.T) {
	original := IsOfflineMode()
	defer SetOfflineMode(original)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetOfflineMode(j%2 == 0)
				_ = IsOfflineMode()
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// URL VALIDATION TESTS
// =============================================================================

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"localhost:8080", true},
		{"127.0.0.1", true},
		{"127.1.2.3", true},
		{"::1", true},
		{"[::1]", true},
		{"[::1]:8080", true},
		{"0:0:0:0:0:0:0:1", true},
		{"painel.example.com", false},
		{"192.168.0.10", false},
		{"localhost.evil.com", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLocalhost(tt.host), tt.host)
	}
}

func TestValidateBackendURL(t *testing.T) {
	original := IsOfflineMode()
	defer SetOfflineMode(original)

	SetOfflineMode(false)
	assert.NoError(t, ValidateBackendURL("https://painel.example.com/api"))
	assert.NoError(t, ValidateBackendURL("http://127.0.0.1:8088/api"))
	assert.ErrorIs(t, ValidateBackendURL("file:///etc/passwd"), ErrInvalidURLScheme)
	assert.ErrorIs(t, ValidateBackendURL("javascript:alert(1)"), ErrInvalidURLScheme)
	assert.ErrorIs(t, ValidateBackendURL("://bad"), ErrInvalidURL)

	SetOfflineMode(true)
	assert.NoError(t, ValidateBackendURL("http://localhost:8088/api"))
	assert.ErrorIs(t, ValidateBackendURL("https://painel.example.com/api"), ErrNonLocalhost)
	assert.ErrorIs(t, ValidateBackendURL("http://localhost.evil.com/api"), ErrNonLocalhost)
}

// =============================================================================
// PROBE TESTS
// =============================================================================

type fakeChecker struct {
	mu     sync.Mutex
	calls  int
	status *backend.ConnectionStatus
	err    error
}

func (f *fakeChecker) CheckDatabaseConnection(context.Context) (*backend.ConnectionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.status, f.err
}

func (f *fakeChecker) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func okDialer(context.Context, string, string) (net.Conn, error) {
	c1, c2 := net.Pipe()
	_ = c2.Close()
	return c1, nil
}

func failDialer(context.Context, string, string) (net.Conn, error) {
	return nil, errors.New("network is unreachable")
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newProbe(t *testing.T, checker *fakeChecker, dial DialFunc, opts ...ProbeOption) (*Probe, *notify.Center, *clock) {
	t.Helper()
	center := notify.NewCenter()
	clk := &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]ProbeOption{WithDialer(dial), WithClock(clk.now)}, opts...)
	p, err := NewProbe("http://127.0.0.1:8088/api", checker, center, opts...)
	require.NoError(t, err)
	return p, center, clk
}

func onlyMessage(t *testing.T, c *notify.Center) string {
	t.Helper()
	active := c.Active()
	require.Len(t, active, 1)
	return active[0].Message
}

func TestProbe_Healthy(t *testing.T) {
	checker := &fakeChecker{status: &backend.ConnectionStatus{Connection: true, Version: "2.1.0"}}
	p, center, _ := newProbe(t, checker, okDialer)

	require.NoError(t, p.Check(context.Background()))
	assert.Empty(t, center.Active())

	st := p.Status()
	assert.True(t, st.Online)
	assert.True(t, st.DatabaseUp)
	assert.Equal(t, "2.1.0", st.BackendVersion)
}

func TestProbe_NoInternet(t *testing.T) {
	checker := &fakeChecker{status: &backend.ConnectionStatus{Connection: true}}
	p, center, _ := newProbe(t, checker, failDialer)

	err := p.Check(context.Background())
	assert.ErrorIs(t, err, ErrNoInternet)
	assert.Equal(t, notify.MsgNoInternet, onlyMessage(t, center))
	assert.Zero(t, checker.Calls(), "database is not asked when the host is unreachable")
	assert.False(t, p.Status().Online)
}

func TestProbe_NoDatabase(t *testing.T) {
	tests := []struct {
		name    string
		checker *fakeChecker
	}{
		{"connection false", &fakeChecker{status: &backend.ConnectionStatus{Connection: false}}},
		{"check failed", &fakeChecker{err: errors.New("HTTP 500")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, center, _ := newProbe(t, tt.checker, okDialer)
			err := p.Check(context.Background())
			assert.ErrorIs(t, err, ErrNoDatabase)
			assert.Equal(t, notify.MsgNoDatabase, onlyMessage(t, center))

			st := p.Status()
			assert.True(t, st.Online)
			assert.False(t, st.DatabaseUp)
		})
	}
}

func TestProbe_VersionGate(t *testing.T) {
	checker := &fakeChecker{status: &backend.ConnectionStatus{Connection: true, Version: "1.4.0"}}
	p, center, _ := newProbe(t, checker, okDialer, WithMinVersion(">= 2.0.0"))

	err := p.Check(context.Background())
	assert.ErrorIs(t, err, config.ErrBackendVersion)
	assert.Equal(t, notify.MsgBackendOutdated, onlyMessage(t, center))
}

func TestProbe_ReusesRecentSuccess(t *testing.T) {
	checker := &fakeChecker{status: &backend.ConnectionStatus{Connection: true}}
	p, _, clk := newProbe(t, checker, okDialer, WithTTL(5*time.Second))
	ctx := context.Background()

	require.NoError(t, p.Check(ctx))
	require.NoError(t, p.Check(ctx))
	assert.Equal(t, 1, checker.Calls())

	clk.advance(6 * time.Second)
	require.NoError(t, p.Check(ctx))
	assert.Equal(t, 2, checker.Calls())

	p.Invalidate()
	require.NoError(t, p.Check(ctx))
	assert.Equal(t, 3, checker.Calls())
}

func TestProbe_FailureIsNotCached(t *testing.T) {
	checker := &fakeChecker{status: &backend.ConnectionStatus{Connection: false}}
	p, _, _ := newProbe(t, checker, okDialer)
	ctx := context.Background()

	assert.Error(t, p.Check(ctx))
	assert.Error(t, p.Check(ctx))
	assert.Equal(t, 2, checker.Calls())
}

func TestNewProbe_RejectsRemoteInOfflineMode(t *testing.T) {
	original := IsOfflineMode()
	defer SetOfflineMode(original)
	SetOfflineMode(true)

	_, err := NewProbe("https://painel.example.com/api", &fakeChecker{}, nil)
	assert.ErrorIs(t, err, ErrNonLocalhost)
}

func TestHostPort(t *testing.T) {
	addr, err := hostPort("https://painel.example.com/api")
	require.NoError(t, err)
	assert.Equal(t, "painel.example.com:443", addr)

	addr, err = hostPort("http://127.0.0.1:8088/api")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8088", addr)

	addr, err = hostPort("http://[::1]/api")
	require.NoError(t, err)
	assert.Equal(t, "[::1]:80", addr)
}

func TestPreflight_WiredIntoClient(t *testing.T) {
	checker := &fakeChecker{status: &backend.ConnectionStatus{Connection: false}}
	p, center, _ := newProbe(t, checker, okDialer)

	client, err := backend.New("http://127.0.0.1:1/api", backend.WithPreflight(p.Preflight()))
	require.NoError(t, err)

	_, err = client.GetColors(context.Background(), "tok")
	assert.ErrorIs(t, err, backend.ErrTransport)
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.Equal(t, notify.MsgNoDatabase, onlyMessage(t, center))
}
