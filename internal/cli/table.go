// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/painel-tui/internal/util"
)

// =============================================================================
// TABLES
// =============================================================================

// minColumnWidth is the narrowest a column is squeezed to.
const minColumnWidth = 4

// columnGap separates columns.
const columnGap = "  "

// Table is a plain text table sized by display width, so accented names
// line up.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Append adds a row.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Widths returns the column widths that fit in maxWidth. The widest column
// gives up space first.
func (t *Table) Widths(maxWidth int) []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = util.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := util.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	if maxWidth <= 0 {
		return widths
	}

	budget := maxWidth - len(columnGap)*(len(widths)-1)
	for total(widths) > budget {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	return n
}

// Render writes the table to w, at most maxWidth columns wide. Zero means
// no limit.
func (t *Table) Render(w io.Writer, maxWidth int) {
	widths := t.Widths(maxWidth)

	cells := make([]string, len(widths))
	for i, h := range t.Headers {
		cells[i] = util.PadRight(util.Truncate(h, widths[i]), widths[i])
	}
	fmt.Fprintln(w, RenderConditional(HeaderStyle, strings.TrimRight(strings.Join(cells, columnGap), " ")))

	rule := make([]string, len(widths))
	for i, wd := range widths {
		rule[i] = strings.Repeat("-", wd)
	}
	fmt.Fprintln(w, RenderConditional(SeparatorStyle, strings.Join(rule, columnGap)))

	for _, row := range t.Rows {
		for i := range widths {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			cells[i] = util.PadRight(util.Truncate(v, widths[i]), widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, columnGap), " "))
	}
}

// renderFields writes label/value pairs, skipping empty values.
func renderFields(w io.Writer, fields [][2]string) {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", RenderLabel(f[0]), f[1])
	}
}
