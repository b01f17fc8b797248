// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// USAGE TEXT
// =============================================================================

const usageMarkdown = `# painel %s

Terminal client for the painel administration backend.

## Usage

    painel [command] [flags]

With no command the interactive dashboard starts.

## Session

| Command | Description |
|---|---|
| ` + "`login [user]`" + ` | Sign in; prompts for missing credentials |
| ` + "`logout`" + ` | End the session on this device |
| ` + "`verify`" + ` | Check the stored session with the backend |
| ` + "`status`" + ` | Connectivity, storage and session summary |
| ` + "`permissions [name...] [--ports]`" + ` | Ask which resources or pages the session may use |

## Catalog

| Command | Description |
|---|---|
| ` + "`clients [--de N] [--ate N] [--cliente TEXT] [--representante TEXT]`" + ` | List clients |
| ` + "`clients show <id>`" + ` / ` + "`clients delete <id> [--yes]`" + ` | One client |
| ` + "`representatives [--de N] [--ate N] [--representante TEXT]`" + ` | List representatives |
| ` + "`representatives show <id>`" + ` / ` + "`delete <id>`" + ` | One representative |
| ` + "`products [--de N] [--ate N] [--grouped]`" + ` | List products |
| ` + "`products delete <id>`" + ` | Delete a product |
| ` + "`prices [--representante ID]`" + ` | Price tables |
| ` + "`payment-methods [--representante ID]`" + ` | Payment methods and installments |
| ` + "`carriers`" + `, ` + "`colors`" + `, ` + "`sizes`" + `, ` + "`tissues`" + `, ` + "`collections`" + ` | Reference lists |

## Tools

| Command | Description |
|---|---|
| ` + "`mask <kind> <value>`" + ` | Format a value: cpf, cnpj, cep, telefone1-3, email, uf, percent, pix, currency, date, unmask, ean13 |
| ` + "`mask <kind> <value> --validate`" + ` | Also validate it |
| ` + "`config show`" + ` / ` + "`config get <key>`" + ` / ` + "`config set <key> <value>`" + ` | Settings |
| ` + "`config reset`" + ` / ` + "`config path`" + ` / ` + "`config keys`" + ` | Defaults, file location, known keys |
| ` + "`version`" + ` | Build information |

## Global flags

| Flag | Description |
|---|---|
| ` + "`--json`" + ` | Print one JSON document on stdout |
| ` + "`--verbose, -v`" + ` | Log to stderr |
| ` + "`--offline`" + ` | Refuse any backend that is not on localhost |
| ` + "`--backend URL, -b URL`" + ` | Use URL instead of backend.url |

## Environment

` + "`PAINEL_HOME`" + `, ` + "`PAINEL_BACKEND_URL`" + `, ` + "`PAINEL_STORAGE_DRIVER`" + `, ` + "`PAINEL_DEBUG`" + `, ` + "`NO_COLOR`" + `.
`

// UsageMarkdown returns the help text as markdown.
func UsageMarkdown() string {
	return fmt.Sprintf(usageMarkdown, Version)
}

// RenderMarkdown renders md for a terminal of the given width. It returns
// md unchanged if rendering fails.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// HandleHelp prints the usage text, rendered when stdout is a terminal.
func HandleHelp(args Args) error {
	md := UsageMarkdown()
	if args.JSON {
		return NewJSONResponse("help", map[string]string{"markdown": md}).Print()
	}
	if IsStdoutTTY() {
		fmt.Print(RenderMarkdown(md, GetTerminalWidth()))
		return nil
	}
	fmt.Print(strings.TrimLeft(md, "\n"))
	return nil
}
