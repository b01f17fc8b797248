// painel TUI - terminal front end for the painel sales back office.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/painel-tui/internal/cli"
	"github.com/jeranaias/painel-tui/internal/config"
	"github.com/jeranaias/painel-tui/internal/ui/dashboard"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd == cli.CmdTUI {
		if err := runTUI(ctx, args); err != nil {
			stop()
			fmt.Fprintf(os.Stderr, "Error running painel: %v\n", err)
			os.Exit(cli.GetExitCode(err))
		}
		return
	}

	closeLog := cli.SetupLogging(args.Verbose, false)
	err := cli.Run(ctx, cmd, args, cli.StdOutput(args.JSON))
	closeLog()
	if err != nil {
		cli.DisplayError(cmd.String(), err, args.JSON)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}

// runTUI starts the dashboard. Logs go to the painel log file while the
// alternate screen is active.
func runTUI(ctx context.Context, args cli.Args) error {
	closeLog := cli.SetupLogging(args.Verbose, true)
	defer closeLog()

	app, err := cli.NewApp(ctx, args, cli.StdOutput(false))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			log.Printf("STORAGE | close failed: %v", cerr)
		}
	}()

	m := dashboard.New(ctx, app)
	if err := m.WatchConfig(config.ConfigPathTOML()); err != nil {
		log.Printf("CONFIG | watch disabled: %v", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
