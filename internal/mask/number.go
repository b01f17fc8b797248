// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mask

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// =============================================================================
// NUMBERS
// =============================================================================

// CurrencySymbol prefixes formatted currency values.
const CurrencySymbol = "R$"

var (
	floatFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	brPrinter   = message.NewPrinter(language.BrazilianPortuguese)
)

// ContainsOnlyDigits reports whether text has no non-digit characters.
// The empty string qualifies.
func ContainsOnlyDigits(text string) bool {
	return Remove(text) == text
}

// IsAFloatNumber reports whether text is digits with an optional one- or
// two-digit decimal part.
func IsAFloatNumber(text string) bool {
	return floatFormat.MatchString(text)
}

// IsNotZero reports whether value is anything but "0".
func IsNotZero(value string) bool {
	return value != "0"
}

// IsGreaterThanZero reports whether value parses to a number above zero.
// Empty counts as zero.
func IsGreaterThanZero(value string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil && f > 0
}

// FormatAmount formats v with pt-BR separators and two decimals, without a
// currency symbol: 1234.5 is "1.234,50".
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0,00"
	}
	return brPrinter.Sprintf("%.2f", v)
}

// FormatCurrency formats v as Brazilian reais: "R$ 1.234,50".
func FormatCurrency(v float64) string {
	amount := FormatAmount(v)
	if strings.HasPrefix(amount, "-") {
		return "-" + CurrencySymbol + " " + amount[1:]
	}
	return CurrencySymbol + " " + amount
}

// FormatPercentage renders value as a percentage. Values strictly
// between 0 and 1 are fractions and are scaled by 100; anything that does
// not parse is 0.
func FormatPercentage(value string) string {
	f, err := strconv.ParseFloat(leadingFloat(value), 64)
	if err != nil || math.IsNaN(f) {
		f = 0
	}
	if f > 0 && f < 1 {
		f = math.Round(f*10000) / 100
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + "%"
}

// NormalizeNumber keeps only digits and the first decimal point. When
// maxBefore is positive, integer digits beyond it move to the decimal
// part; when maxAfter is positive, the decimal part is cut to that many
// digits.
func NormalizeNumber(value string, maxBefore, maxAfter int) string {
	value = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, strings.TrimSpace(value))

	intPart, frac, hasDot := strings.Cut(value, ".")
	frac = strings.ReplaceAll(frac, ".", "")

	if maxBefore > 0 && len(intPart) > maxBefore {
		frac = intPart[maxBefore:] + frac
		intPart = intPart[:maxBefore]
		hasDot = true
	}
	if maxAfter > 0 && len(frac) > maxAfter {
		frac = frac[:maxAfter]
	}
	if !hasDot {
		return intPart
	}
	return intPart + "." + frac
}

// ToFloatOr0 parses the leading number of value, or returns 0.
func ToFloatOr0(value string) float64 {
	f, err := strconv.ParseFloat(leadingFloat(value), 64)
	if err != nil {
		return 0
	}
	return f
}

// ToIntOr0 parses the leading integer of value, or returns 0.
func ToIntOr0(value string) int {
	s := leadingFloat(value)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
