// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log"
)

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes a non-interactive command. Commands that only format or edit
// local files run without wiring the backend.
func Run(ctx context.Context, cmd Command, args Args, out Output) error {
	switch cmd {
	case CmdVersion:
		return HandleVersion(args)
	case CmdHelp:
		return HandleHelp(args)
	case CmdMask:
		return HandleMask(out, args.Options)
	case CmdConfig:
		return HandleConfig(out, args.Options)
	case CmdUnknown:
		return fmt.Errorf("%w: %s (run 'painel help')", ErrUnknownCommand, args.Name)
	case CmdTUI:
		return fmt.Errorf("%w: the dashboard is not a batch command", ErrUnknownCommand)
	}

	app, err := NewApp(ctx, args, out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			log.Printf("STORAGE | close failed: %v", cerr)
		}
	}()
	app.PrintNotifications()

	return app.Dispatch(ctx, cmd, args.Options)
}

// Dispatch runs cmd against an assembled App.
func (a *App) Dispatch(ctx context.Context, cmd Command, opts *ArgParser) error {
	switch cmd {
	case CmdLogin:
		return a.HandleLogin(ctx, opts)
	case CmdLogout:
		return a.HandleLogout(ctx)
	case CmdVerify:
		return a.HandleVerify(ctx)
	case CmdStatus:
		return a.HandleStatus(ctx)
	case CmdPermissions:
		return a.HandlePermissions(ctx, opts)
	case CmdClients, CmdRepresentatives, CmdProducts, CmdPrices, CmdPaymentMethods,
		CmdCarriers, CmdColors, CmdSizes, CmdTissues, CmdCollections:
		return a.HandleCatalog(ctx, cmd, opts)
	case CmdMask:
		return HandleMask(a.Output, opts)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}
