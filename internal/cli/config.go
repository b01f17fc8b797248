// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jeranaias/painel-tui/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// secretKeys are shown redacted.
var secretKeys = map[string]bool{
	"storage.redis_url": true,
}

// HandleConfig views and edits ~/.painel/config.toml.
//
//	painel config [show]
//	painel config get backend.url
//	painel config set backend.url http://localhost:8080/api/
//	painel config reset
//	painel config path | keys
func HandleConfig(out Output, opts *ArgParser) error {
	sub := opts.Subcommand()
	if sub == "" {
		sub = "show"
	}

	switch sub {
	case "show":
		return configShow(out)
	case "get":
		return configGet(out, opts.Positional(1))
	case "set":
		return configSet(out, opts.Positional(1), strings.Join(opts.PositionalFrom(2), " "))
	case "reset":
		return configReset(out, opts)
	case "path":
		path := config.ConfigPathTOML()
		return out.Emit("config path", map[string]string{"path": path}, func(w io.Writer) {
			fmt.Fprintln(w, path)
		})
	case "keys":
		keys := config.AllKeys()
		return out.Emit("config keys", keys, func(w io.Writer) {
			for _, k := range keys {
				fmt.Fprintln(w, k)
			}
		})
	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown config subcommand",
			"show, get, set, reset, path, keys")
	}
}

// loadForEdit loads the config, refusing a file that does not parse so a
// write never replaces it with defaults.
func loadForEdit() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, NewCommandError("config", "set", "fix or reset "+config.ConfigPathTOML()+" first", err)
	}
	return cfg, nil
}

func configShow(out Output) error {
	cfg, err := config.Load()
	if cfg == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(out.Err, "%s %v\n", RenderConditional(WarningStyle, "[AVISO]"), err)
	}

	return out.Emit("config show", json.RawMessage(cfg.String()), func(w io.Writer) {
		fmt.Fprintln(w, RenderConditional(TitleStyle, "Configuração"))
		fmt.Fprintln(w, RenderSeparator(40))
		section := ""
		for _, key := range config.AllKeys() {
			head, _, _ := strings.Cut(key, ".")
			if head != section && strings.Contains(key, ".") {
				section = head
				fmt.Fprintln(w)
				fmt.Fprintln(w, RenderConditional(HeaderStyle, "["+section+"]"))
			}
			fmt.Fprintf(w, "%s %s\n", RenderLabel(key), displayValue(cfg, key))
		}
	})
}

func displayValue(cfg *config.Config, key string) string {
	v, err := cfg.Get(key)
	if err != nil {
		return ""
	}
	s := fmt.Sprint(v)
	if secretKeys[key] {
		s = config.RedactURL(s)
	}
	return s
}

func configGet(out Output, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "painel config get backend.url")
	}
	cfg, err := config.Load()
	if cfg == nil {
		return err
	}
	if _, err := cfg.Get(key); err != nil {
		return NewValidationErrorWithExample("key", key, err.Error(), "painel config keys")
	}
	value := displayValue(cfg, key)
	return out.Emit("config get", map[string]string{"key": key, "value": value}, func(w io.Writer) {
		fmt.Fprintln(w, value)
	})
}

func configSet(out Output, key, value string) error {
	if key == "" || value == "" {
		return ErrMissingArgument("key and value", "painel config set backend.timeout_seconds 15")
	}
	cfg, err := loadForEdit()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return NewValidationErrorWithExample("key", key, err.Error(), "painel config keys")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	log.Printf("CONFIG | set %s", key)

	shown := displayValue(cfg, key)
	return out.Emit("config set", map[string]string{"key": key, "value": shown}, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s = %s\n", RenderStatus(true, "OK", ""), key, shown)
	})
}

func configReset(out Output, opts *ArgParser) error {
	ok, err := confirm(out, opts, "Restaurar a configuração padrão?", os.Stdin)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out.Err, "Cancelado.")
		return nil
	}
	if err := config.Save(config.Default()); err != nil {
		return err
	}
	log.Printf("CONFIG | reset to defaults")
	return out.Emit("config reset", map[string]string{"path": config.ConfigPathTOML()}, func(w io.Writer) {
		fmt.Fprintf(w, "%s Configuração restaurada.\n", RenderStatus(true, "OK", ""))
	})
}
