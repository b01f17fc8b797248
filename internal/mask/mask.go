// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mask

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// MASK PATTERNS
// =============================================================================

// Patterns use '9' as the placeholder for one input character.
const (
	PatternCPF        = "999.999.999-99"
	PatternCNPJ       = "99.999.999/9999-99"
	PatternCNPJ15     = "999.999.999/9999-99"
	PatternCEP        = "99999-999"
	PatternPhone      = "(99) 9999-9999"
	PatternCellPhone  = "(99) 99999-9999"
	PatternPercentage = "99.99%"
	PatternPixPhone   = "+9999999999999"
	PatternPixRandom  = "99999999-9999-9999-9999-999999999999"
)

// Fields maps form field names to their mask.
var Fields = map[string]string{
	"cpf":       PatternCPF,
	"comissao":  PatternPercentage,
	"telefone1": PatternPhone,
	"telefone2": PatternCellPhone,
	"telefone3": PatternCellPhone,
	"cnpj":      PatternCNPJ,
	"cep":       PatternCEP,
	"chavepix":  PatternCPF,
}

// Pix key types.
const (
	PixCPF    = "cpf"
	PixCNPJ   = "cnpj"
	PixPhone  = "phone"
	PixEmail  = "email"
	PixRandom = "random"
)

// unmaskedFields are stripped back to digits by UnmaskFields.
var unmaskedFields = []string{"cep", "cpf", "telefone1", "telefone2", "telefone3", "cnpj", "chavepix"}

var cnpjFormat = regexp.MustCompile(`^\d{2,3}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)

// Apply fills pattern with the characters of value. Literal pattern
// characters are only written while input remains, so a partial value
// yields a partial mask.
func Apply(value, pattern string) string {
	in := []rune(value)
	var b strings.Builder
	i := 0
	for _, m := range pattern {
		if i >= len(in) {
			break
		}
		if m == '9' {
			b.WriteRune(in[i])
			i++
			continue
		}
		b.WriteRune(m)
	}
	return b.String()
}

// Remove strips everything but ASCII digits.
func Remove(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

// ApplyField masks value with the pattern registered for field. Unknown
// fields and empty values come back unchanged. A 15-digit CNPJ uses the
// wider pattern.
func ApplyField(field, value string) string {
	pattern, ok := Fields[field]
	if value == "" || !ok {
		return value
	}
	switch field {
	case "cnpj":
		return Apply(value, cnpjPattern(value))
	case "comissao":
		return ApplyPercentage(value)
	}
	return Apply(value, pattern)
}

func cnpjPattern(value string) string {
	if len([]rune(value)) >= 15 {
		return PatternCNPJ15
	}
	return PatternCNPJ
}

// CNPJPatternFor picks the CNPJ pattern for a value being typed.
func CNPJPatternFor(masked string) string {
	if len(Remove(masked)) > 13 {
		return PatternCNPJ15
	}
	return PatternCNPJ
}

// ApplyPercentage normalizes a percentage input: empty is "0", anything
// from 100 up is "100", and a one-digit integer part before a decimal
// point is zero-padded.
func ApplyPercentage(value string) string {
	if value == "" {
		value = "0"
	}
	if f, err := strconv.ParseFloat(leadingFloat(value), 64); err == nil && f >= 100 {
		return "100"
	}
	parts := strings.Split(value, ".")
	if len(parts) >= 2 && len(parts[0]) < 2 {
		parts[0] = strings.Repeat("0", 2-len(parts[0])) + parts[0]
		value = strings.Join(parts, ".")
	}
	return value
}

// ApplyPixKey masks a pix key according to its type. Email and unknown
// types are not masked.
func ApplyPixKey(keyType, value string) string {
	if value == "" {
		return value
	}
	switch keyType {
	case PixCPF:
		return Apply(value, PatternCPF)
	case PixCNPJ:
		return Apply(value, PatternCNPJ)
	case PixPhone:
		return Apply(value, PatternPixPhone)
	case PixRandom:
		return Apply(value, PatternPixRandom)
	default:
		return value
	}
}

// IsCNPJ reports whether value is a masked 14- or 15-digit CNPJ.
func IsCNPJ(value string) bool {
	return cnpjFormat.MatchString(value)
}

// MaskFields returns a copy of data with every maskable field masked.
// Values that are plain numbers or already-masked CNPJs are stripped
// first; chavepix follows tipochave when present.
func MaskFields(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for name, value := range data {
		if _, ok := Fields[name]; !ok {
			out[name] = value
			continue
		}
		if name == "comissao" {
			out[name] = ApplyPercentage(value)
			continue
		}
		raw := value
		if IsAFloatNumber(value) || IsCNPJ(value) {
			raw = Remove(value)
		}
		if name == "chavepix" && data["tipochave"] != "" {
			out[name] = ApplyPixKey(data["tipochave"], raw)
			continue
		}
		out[name] = ApplyField(name, raw)
	}
	return out
}

// UnmaskFields returns a copy of data with document, phone and CEP fields
// reduced to digits. chavepix is only stripped when tipochave is set and
// is not email.
func UnmaskFields(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	for _, name := range unmaskedFields {
		v := data[name]
		if v == "" {
			continue
		}
		if name == "chavepix" {
			if kt := data["tipochave"]; kt != "" && kt != PixEmail {
				out[name] = Remove(v)
			}
			continue
		}
		out[name] = Remove(v)
	}
	return out
}

// leadingFloat returns the longest prefix of s that parses as a number,
// the way a lenient float parser reads "12.5abc".
func leadingFloat(s string) string {
	s = strings.TrimSpace(s)
	end := 0
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			end = i + 1
		case r == '.' && !dot:
			dot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			return s[:end]
		}
	}
	return s[:end]
}
