// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/jeranaias/painel-tui/internal/cli"
	"github.com/jeranaias/painel-tui/internal/router"
	"github.com/jeranaias/painel-tui/internal/session"
	"github.com/jeranaias/painel-tui/internal/ui/styles"
)

// =============================================================================
// HOME MENU
// =============================================================================

// menuItem is one entry of the home menu.
type menuItem struct {
	Title string
	Path  string
}

// homeMenu lists every page guarded by a port id, then the logout route.
func homeMenu() []menuItem {
	var items []menuItem
	for _, r := range router.Routes {
		if r.Protected && r.PortID != "" {
			items = append(items, menuItem{Title: r.Title, Path: r.Pattern})
		}
	}
	return append(items, menuItem{Title: "Sair", Path: "/logout/" + session.AccountUser})
}

// =============================================================================
// CATALOG TABLE
// =============================================================================

// Lines taken by everything that is not the table body.
const chromeLines = 6

// buildTable converts a cli.Table into a bubbles table sized for width and
// at most rows visible lines.
func buildTable(src *cli.Table, theme *styles.Theme, width, rows int) table.Model {
	widths := src.Widths(width - 2*len(src.Headers))
	cols := make([]table.Column, len(src.Headers))
	for i, h := range src.Headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}

	data := make([]table.Row, len(src.Rows))
	for i, r := range src.Rows {
		row := make(table.Row, len(cols))
		copy(row, r)
		data[i] = row
	}

	if rows < 1 {
		rows = 1
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(data),
		table.WithFocused(true),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = theme.TableHeader.Padding(0, 1)
	s.Cell = theme.TableCell.Padding(0, 1)
	s.Selected = theme.TableSelected
	t.SetStyles(s)
	return t
}

// tableRows is how many table lines fit: the page size, bounded by the
// terminal height.
func tableRows(height, pageSize int) int {
	room := height - chromeLines
	if pageSize > 0 && pageSize < room {
		return pageSize
	}
	return room
}
