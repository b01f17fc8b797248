// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jeranaias/painel-tui/internal/util"
)

// LogFileName is the log written under the painel directory while the TUI
// owns the terminal.
const LogFileName = "painel.log"

// SetupLogging routes the standard logger. Logs are discarded unless
// verbose is set or PAINEL_DEBUG=1. When the TUI owns the terminal they go
// to ~/.painel/painel.log instead of stderr. The returned function closes
// the log file, if any.
func SetupLogging(verbose, tui bool) func() {
	if !verbose && os.Getenv("PAINEL_DEBUG") != "1" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if !tui {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	dir := util.PainelDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}
