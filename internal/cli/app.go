// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jeranaias/painel-tui/internal/backend"
	"github.com/jeranaias/painel-tui/internal/catalog"
	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/fingerprint"
	"github.com/jeranaias/painel-tui/internal/notify"
	"github.com/jeranaias/painel-tui/internal/offline"
	"github.com/jeranaias/painel-tui/internal/router"
	"github.com/jeranaias/painel-tui/internal/session"
	"github.com/jeranaias/painel-tui/internal/storage"
	"github.com/jeranaias/painel-tui/internal/util"
)

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// App is every long-lived component of a painel process, wired together.
// The CLI commands and the TUI share it.
type App struct {
	Output
	In io.Reader

	Config      *config.Config
	Client      *backend.Client
	Probe       *offline.Probe
	Store       storage.Store
	Fingerprint *fingerprint.Provider
	Notes       *notify.Center
	Nav         *router.Navigator
	Session     *session.Manager
	Catalog     *catalog.Service
}

// NewApp loads the configuration, applies the global flags and wires the
// application. A broken config file is reported and defaults are used.
func NewApp(ctx context.Context, args Args, out Output) (*App, error) {
	cfg, err := config.Load()
	if cfg == nil {
		return nil, err
	}
	if err != nil {
		log.Printf("CONFIG | using defaults: %v", err)
		fmt.Fprintf(out.Err, "%s %v\n", RenderConditional(WarningStyle, "[AVISO]"), err)
	}
	return Assemble(ctx, cfg, args, out)
}

// Assemble wires an App from cfg. Global flags in args override cfg.
func Assemble(ctx context.Context, cfg *config.Config, args Args, out Output) (*App, error) {
	if args.Backend != "" {
		cfg.Backend.URL = strings.TrimSpace(args.Backend)
	}
	if args.Offline {
		cfg.Backend.Offline = true
	}

	offline.SetOfflineMode(cfg.Backend.Offline)
	if err := offline.ValidateBackendURL(cfg.Backend.URL); err != nil {
		return nil, err
	}

	client, err := backend.New(cfg.Backend.URL,
		backend.WithTimeout(cfg.Backend.Timeout()),
		backend.WithRateLimit(cfg.Backend.RateLimit, cfg.Backend.RateBurst),
	)
	if err != nil {
		return nil, err
	}

	notes := notify.NewCenter()
	probe, err := offline.NewProbe(cfg.Backend.URL, client, notes,
		offline.WithMinVersion(cfg.Backend.MinVersion),
	)
	if err != nil {
		return nil, err
	}
	client.SetPreflight(probe.Preflight())

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}

	fp := fingerprint.New(fingerprint.WithStore(store))
	fp.Start(context.WithoutCancel(ctx))

	nav := router.NewNavigator(router.PathRoot)
	sess := session.New(session.Deps{
		Backend:     client,
		Store:       store,
		Fingerprint: fp,
		Notifier:    notes,
		Nav:         nav,
	},
		session.WithFencing(cfg.Session.VerifyFencing),
		session.WithRequestTimeout(cfg.Backend.Timeout()),
	)

	svc := catalog.NewService(client, sess, notes, catalog.WithNavigator(nav))

	log.Printf("CONFIG | backend=%s storage=%s offline=%t", cfg.Backend.URL, cfg.Storage.Driver, cfg.Backend.Offline)

	return &App{
		Output:      out,
		In:          os.Stdin,
		Config:      cfg,
		Client:      client,
		Probe:       probe,
		Store:       store,
		Fingerprint: fp,
		Notes:       notes,
		Nav:         nav,
		Session:     sess,
		Catalog:     svc,
	}, nil
}

// PrintNotifications echoes every notification to the error stream. The
// CLI uses it in place of the TUI toast stack.
func (a *App) PrintNotifications() {
	a.Notes.OnShow(func(n notify.Notification) {
		fmt.Fprintln(a.Err, RenderNotification(n))
	})
}

// Close releases the token store.
func (a *App) Close() error {
	return a.Store.Close()
}

// requireSession replays the persisted token. Commands that talk to the
// catalog need a verified session.
func (a *App) requireSession(ctx context.Context) error {
	if !a.Session.Restore(ctx) {
		return ErrNotLoggedIn
	}
	return nil
}

// sessionData converts a session snapshot.
func sessionData(st session.State) SessionData {
	short := ""
	if st.Token != "" {
		short = util.ShortToken(st.Token)
	}
	return SessionData{
		LoggedIn:  st.LoggedIn,
		Remaining: st.Remaining,
		Countdown: st.Countdown(),
		Expired:   st.Expired,
		Token:     short,
	}
}
