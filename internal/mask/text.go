// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mask

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// TEXT
// =============================================================================

var brLower = cases.Lower(language.BrazilianPortuguese)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// RemoveAccents strips combining marks: "Ação" becomes "Acao".
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeAndLowercase trims, lowercases and removes accents. Used for
// search matching.
func NormalizeAndLowercase(s string) string {
	return RemoveAccents(brLower.String(strings.TrimSpace(s)))
}

// CapitalizeFirst upper-cases the first letter and leaves the rest alone.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// IsEmpty reports whether s is blank.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FormatBrazilianDate turns "2024-03-05" into "5 de março de 2024". It
// reports false when the date does not parse.
func FormatBrazilianDate(date string) (string, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year()), true
}
