// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command mockbackend serves the dashboard backend endpoints from YAML
// fixtures for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jeranaias/painel-tui/internal/mockapi"
)

const version = "1.0.0"

const defaultAddr = "127.0.0.1:8088"

func main() {
	addr := defaultAddr
	fixtures := ""

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			printHelp()
			return
		case arg == "--version" || arg == "-v":
			fmt.Printf("painel mockbackend v%s\n", version)
			return
		case arg == "--addr" && i+1 < len(args):
			i++
			addr = args[i]
		case strings.HasPrefix(arg, "--addr="):
			addr = strings.TrimPrefix(arg, "--addr=")
		case arg == "--fixtures" && i+1 < len(args):
			i++
			fixtures = args[i]
		case strings.HasPrefix(arg, "--fixtures="):
			fixtures = strings.TrimPrefix(arg, "--fixtures=")
		default:
			fmt.Fprintf(os.Stderr, "unknown argument: %s\n", arg)
			os.Exit(2)
		}
	}

	fix, err := loadFixtures(fixtures)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mockapi.NewServer(fix).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("MOCKAPI | listening on http://%s%s (%d users)", addr, mockapi.DefaultPrefix, len(fix.Users))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadFixtures(path string) (*mockapi.Fixtures, error) {
	if path == "" {
		return mockapi.DefaultFixtures()
	}
	return mockapi.LoadFixtures(path)
}

func printHelp() {
	fmt.Println(`painel mockbackend v` + version + `

Usage: mockbackend [OPTIONS]

Options:
  --addr ADDR        Listen address (default ` + defaultAddr + `)
  --fixtures FILE    YAML fixtures (default: built-in data set)
  --help, -h         Show this help
  --version, -v      Show version

Point the client at it with:
  painel --offline --backend http://` + defaultAddr + `/api status`)
}
