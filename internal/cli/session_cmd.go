// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/offline"
	"github.com/jeranaias/painel-tui/internal/router"
	"github.com/jeranaias/painel-tui/internal/session"
)

// =============================================================================
// LOGIN
// =============================================================================

// HandleLogin signs in and verifies the new token.
//
//	painel login [user] [--user NAME] [--password-stdin]
func (a *App) HandleLogin(ctx context.Context, opts *ArgParser) error {
	user, pass, err := a.credentials(opts)
	if err != nil {
		return err
	}

	if !a.Session.Login(ctx, user, pass) {
		return ErrLoginFailed
	}
	if !a.Session.Verify(ctx, a.Session.Token()) {
		return fmt.Errorf("%w: session was not accepted", ErrLoginFailed)
	}

	st := a.Session.Snapshot()
	return a.Emit("login", sessionData(st), func(w io.Writer) {
		fmt.Fprintf(w, "%s Sessão iniciada como %s. Expira em %s.\n",
			RenderStatus(true, "OK", ""), user, st.Countdown())
	})
}

// credentials collects the username and password. Missing values are
// prompted for on a terminal; --password-stdin reads the first line of
// stdin instead.
func (a *App) credentials(opts *ArgParser) (string, string, error) {
	user := opts.FlagFirst("user", "u")
	if user == "" {
		user = opts.Positional(0)
	}

	if opts.BoolFlag("password-stdin") {
		pass, err := readLine(a.In)
		if err != nil {
			return "", "", fmt.Errorf("failed to read password from stdin: %w", err)
		}
		if user == "" {
			return "", "", ErrMissingArgument("user", "painel login admin --password-stdin")
		}
		return user, pass, nil
	}

	if err := RequiresTTY("prompt for credentials"); err != nil {
		return "", "", err
	}

	if user == "" {
		line := liner.NewLiner()
		line.SetCtrlCAborts(true)
		name, err := line.Prompt("Usuário: ")
		line.Close()
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return "", "", errors.New("login cancelled")
			}
			return "", "", err
		}
		user = strings.TrimSpace(name)
	}

	fmt.Fprint(a.Err, "Senha: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.Err)
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}
	return user, string(raw), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// =============================================================================
// LOGOUT / VERIFY
// =============================================================================

// HandleLogout forgets the session on this device.
func (a *App) HandleLogout(ctx context.Context) error {
	next := a.Session.Logout(ctx, session.AccountUser)
	a.Nav.Navigate(next)
	return a.Emit("logout", map[string]string{"next": next}, func(w io.Writer) {
		fmt.Fprintln(w, "Sessão encerrada.")
	})
}

// HandleVerify replays the stored token.
func (a *App) HandleVerify(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	st := a.Session.Snapshot()
	return a.Emit("verify", sessionData(st), func(w io.Writer) {
		fmt.Fprintf(w, "%s Sessão válida. Expira em %s.\n", RenderStatus(true, "OK", ""), st.Countdown())
	})
}

// =============================================================================
// STATUS
// =============================================================================

// HandleStatus reports connectivity, storage and session state. It never
// fails on a down backend; that is what it reports.
func (a *App) HandleStatus(ctx context.Context) error {
	probeErr := a.Probe.Check(ctx)
	if probeErr == nil {
		a.Session.Restore(ctx)
	}

	data := StatusData{
		BackendURL:    a.Config.Backend.URL,
		OfflineMode:   offline.IsOfflineMode(),
		StorageDriver: a.Config.Storage.Driver,
		ConfigPath:    config.ConfigPathTOML(),
		Connectivity:  a.Probe.Status(),
		Session:       sessionData(a.Session.Snapshot()),
	}

	return a.Emit("status", data, func(w io.Writer) {
		title := "painel " + Version
		if badge := offline.StatusBadge(); badge != "" {
			title += " " + badge
		}
		fmt.Fprintln(w, RenderConditional(TitleStyle, title))
		fmt.Fprintln(w, RenderSeparator(40))
		renderFields(w, [][2]string{
			{"Backend", data.BackendURL},
			{"Config", data.ConfigPath},
			{"Armazenamento", data.StorageDriver},
			{"Internet", RenderStatus(data.Connectivity.Online, "OK", "SEM CONEXÃO")},
			{"Banco de dados", RenderStatus(data.Connectivity.DatabaseUp, "OK", "INDISPONÍVEL")},
			{"Versão do servidor", data.Connectivity.BackendVersion},
			{"Sessão", RenderStatus(data.Session.LoggedIn, "ATIVA", "INATIVA")},
		})
		if data.Session.LoggedIn {
			renderFields(w, [][2]string{{"Expira em", data.Session.Countdown}})
		}
		if data.Connectivity.Error != "" {
			renderFields(w, [][2]string{{"Erro", RenderConditional(ErrorStyle, data.Connectivity.Error)}})
		}
	})
}

// =============================================================================
// PERMISSIONS
// =============================================================================

// PermissionResult is one row of the permissions command.
type PermissionResult struct {
	Name    string `json:"name"`
	Allowed bool   `json:"allowed"`
}

// HandlePermissions asks the backend about resources, or about page ports
// with --ports. With no names every protected page is checked.
func (a *App) HandlePermissions(ctx context.Context, opts *ArgParser) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	names := opts.PositionalFrom(0)
	if len(names) == 0 {
		names = portIDs()
	}

	results := make([]PermissionResult, 0, len(names))
	if opts.BoolFlag("ports") {
		for _, name := range names {
			results = append(results, PermissionResult{Name: name, Allowed: a.Session.CheckPortPermission(ctx, name)})
		}
	} else {
		perms := a.Session.CheckResourcesPermission(ctx, names)
		for _, name := range names {
			results = append(results, PermissionResult{Name: name, Allowed: perms[name]})
		}
	}

	return a.Emit("permissions", results, func(w io.Writer) {
		t := &Table{Headers: []string{"Recurso", "Acesso"}}
		for _, r := range results {
			t.Append(r.Name, RenderStatus(r.Allowed, "PERMITIDO", "NEGADO"))
		}
		t.Render(w, 0)
	})
}

// portIDs lists the port ids of the protected pages in route order.
func portIDs() []string {
	var ids []string
	for _, r := range router.Routes {
		if r.PortID != "" {
			ids = append(ids, r.PortID)
		}
	}
	return ids
}
