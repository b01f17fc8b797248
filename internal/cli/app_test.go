// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/mockapi"
)

// =============================================================================
// END-TO-END AGAINST THE MOCK BACKEND
// =============================================================================

type testApp struct {
	*App
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

// newTestApp wires an App against a fresh mock backend with an in-memory
// token store.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("PAINEL_HOME", t.TempDir())
	ForceColorsEnabled(false)

	fix, err := mockapi.DefaultFixtures()
	require.NoError(t, err)
	hs := httptest.NewServer(mockapi.NewServer(fix, mockapi.WithSecret([]byte("cli-test"))).Handler())
	t.Cleanup(hs.Close)

	cfg := config.Default()
	cfg.Storage.Driver = "memory"
	cfg.Backend.RateLimit = 0

	var out, errOut bytes.Buffer
	app, err := Assemble(context.Background(), cfg,
		Args{JSON: true, Backend: hs.URL + mockapi.DefaultPrefix + "/"},
		Output{Out: &out, Err: &errOut, JSON: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	app.PrintNotifications()

	return &testApp{App: app, out: &out, errOut: &errOut}
}

// envelope decodes the last JSON document written and resets the buffer.
func (ta *testApp) envelope(t *testing.T, data any) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ta.out.Bytes(), &env), ta.out.String())
	ta.out.Reset()
	require.True(t, env.Success)
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
}

func (ta *testApp) login(t *testing.T, user, pass string) {
	t.Helper()
	ta.In = strings.NewReader(pass + "\n")
	require.NoError(t, ta.Dispatch(context.Background(), CmdLogin, NewArgParser([]string{user, "--password-stdin"})))
}

func TestApp_LoginListLogout(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	ta.login(t, "admin", "admin123")
	var sess SessionData
	ta.envelope(t, &sess)
	assert.True(t, sess.LoggedIn)
	assert.Greater(t, sess.Remaining, 0)
	assert.NotEmpty(t, sess.Token)

	require.NoError(t, ta.Dispatch(ctx, CmdClients, NewArgParser(nil)))
	var list struct {
		Kind        string `json:"kind"`
		Count       int    `json:"count"`
		WasFiltered bool   `json:"was_filtered"`
	}
	ta.envelope(t, &list)
	assert.Equal(t, "clients", list.Kind)
	assert.Equal(t, 3, list.Count)
	assert.False(t, list.WasFiltered)

	require.NoError(t, ta.Dispatch(ctx, CmdClients, NewArgParser([]string{"--de", "2", "--ate", "3"})))
	ta.envelope(t, &list)
	assert.Equal(t, 2, list.Count)
	assert.True(t, list.WasFiltered)

	require.NoError(t, ta.Dispatch(ctx, CmdVerify, NewArgParser(nil)))
	ta.envelope(t, &sess)
	assert.True(t, sess.LoggedIn)

	require.NoError(t, ta.Dispatch(ctx, CmdLogout, NewArgParser(nil)))
	ta.envelope(t, nil)

	err := ta.Dispatch(ctx, CmdClients, NewArgParser(nil))
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, ExitAuthError, GetExitCode(err))
}

func TestApp_LoginWrongPassword(t *testing.T) {
	ta := newTestApp(t)
	ta.In = strings.NewReader("errada\n")

	err := ta.Dispatch(context.Background(), CmdLogin, NewArgParser([]string{"admin", "--password-stdin"}))
	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Contains(t, ta.errOut.String(), "[ERRO]")
}

func TestApp_CatalogRequiresLogin(t *testing.T) {
	ta := newTestApp(t)
	err := ta.Dispatch(context.Background(), CmdProducts, NewArgParser(nil))
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestApp_ShowAndDelete(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t, "admin", "admin123")
	ta.envelope(t, nil)

	require.NoError(t, ta.Dispatch(ctx, CmdClients, NewArgParser([]string{"show", "1"})))
	var client map[string]any
	ta.envelope(t, &client)
	assert.Equal(t, "Moda Recife LTDA", client["nome"])

	// JSON mode never prompts.
	err := ta.Dispatch(ctx, CmdProducts, NewArgParser([]string{"delete", "3"}))
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	require.NoError(t, ta.Dispatch(ctx, CmdProducts, NewArgParser([]string{"delete", "3", "--yes"})))
	ta.envelope(t, nil)

	require.NoError(t, ta.Dispatch(ctx, CmdProducts, NewArgParser(nil)))
	var list ListData
	ta.envelope(t, &list)
	assert.Equal(t, 2, list.Count)
}

func TestApp_Permissions(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t, "vendas", "vendas123")
	ta.envelope(t, nil)

	require.NoError(t, ta.Dispatch(ctx, CmdPermissions, NewArgParser([]string{"--ports", "clientes", "produtos"})))
	var perms []PermissionResult
	ta.envelope(t, &perms)
	assert.Equal(t, []PermissionResult{
		{Name: "clientes", Allowed: true},
		{Name: "produtos", Allowed: false},
	}, perms)
}

func TestApp_StatusWithoutSession(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.Dispatch(context.Background(), CmdStatus, NewArgParser(nil)))
	var st StatusData
	ta.envelope(t, &st)
	assert.True(t, st.Connectivity.Online)
	assert.True(t, st.Connectivity.DatabaseUp)
	assert.Equal(t, "memory", st.StorageDriver)
	assert.False(t, st.Session.LoggedIn)
}

func TestAssemble_OfflineRejectsRemoteBackend(t *testing.T) {
	t.Setenv("PAINEL_HOME", t.TempDir())
	cfg := config.Default()
	cfg.Storage.Driver = "memory"

	_, err := Assemble(context.Background(), cfg,
		Args{Offline: true, Backend: "https://painel.example.com/api/"},
		Output{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestApp_CatalogTable(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t, "admin", "admin123")
	ta.envelope(t, nil)

	tbl, err := ta.CatalogTable(ctx, "clients")
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 3)
	assert.NotEmpty(t, tbl.Headers)

	_, err = ta.CatalogTable(ctx, "orders")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
