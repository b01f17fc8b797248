// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-interactive painel commands and the
// wiring shared with the dashboard.
//
// # Key Types
//
//   - Command: every command word, with Portuguese aliases
//   - Args: global flags plus the command's own arguments
//   - App: the assembled backend client, session, catalog and stores
//   - Output: human text or a single JSON envelope
//
// # Usage
//
//	cmd, args := cli.Parse()
//	if err := cli.Run(ctx, cmd, args, cli.StdOutput(args.JSON)); err != nil {
//	    cli.DisplayError(cmd.String(), err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// Catalog commands replay the token saved by 'painel login'. All commands
// accept --json; errors then print an envelope with success=false.
package cli
