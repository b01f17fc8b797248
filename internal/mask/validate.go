// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mask

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// VALIDATORS
// =============================================================================

// Validation errors. The messages are shown to the user as-is.
var (
	ErrInvalidCPF       = errors.New("CPF inválido.")
	ErrInvalidCNPJ      = errors.New("CNPJ inválido.")
	ErrInvalidCEP       = errors.New("CEP inválido.")
	ErrInvalidEmail     = errors.New("Insira um email válido.")
	ErrInvalidUF        = errors.New("A UF deve ter 2 caracteres.")
	ErrInvalidPhone     = errors.New("Formato inválido para telefone fixo.")
	ErrInvalidCellPhone = errors.New("Formato inválido para celular.")
)

var (
	cpfMasked       = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpj14Masked    = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	cnpj15Masked    = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	cepMasked       = regexp.MustCompile(`^\d{5}-\d{3}$`)
	phoneMasked     = regexp.MustCompile(`^\(\d{2}\) \d{4}-\d{4}$`)
	cellPhoneMasked = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
)

// ValidateCPF checks a masked CPF.
func ValidateCPF(v string) error {
	if !cpfMasked.MatchString(v) {
		return ErrInvalidCPF
	}
	return nil
}

// ValidateCNPJ checks a masked 14- or 15-digit CNPJ.
func ValidateCNPJ(v string) error {
	switch len(Remove(v)) {
	case 14:
		if cnpj14Masked.MatchString(v) {
			return nil
		}
	case 15:
		if cnpj15Masked.MatchString(v) {
			return nil
		}
	}
	return ErrInvalidCNPJ
}

// ValidateCEP checks a masked CEP.
func ValidateCEP(v string) error {
	if !cepMasked.MatchString(v) {
		return ErrInvalidCEP
	}
	return nil
}

// ValidateEmail checks a bare email address.
func ValidateEmail(v string) error {
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateUF checks a two-character state code.
func ValidateUF(v string) error {
	if utf8.RuneCountInString(v) != 2 {
		return ErrInvalidUF
	}
	return nil
}

// ValidatePhone checks a masked fixed-line phone number.
func ValidatePhone(v string) error {
	if !phoneMasked.MatchString(v) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateOptionalCellPhone accepts an empty mask or a masked cell phone.
func ValidateOptionalCellPhone(v string) error {
	if strings.TrimSpace(Remove(v)) == "" || cellPhoneMasked.MatchString(v) {
		return nil
	}
	return ErrInvalidCellPhone
}

// ValidateLength checks v against min and max rune counts. Zero disables a
// bound. prefix names the field in the message.
func ValidateLength(prefix, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if min > 0 && n < min {
		return fmt.Errorf("%s deve ter mais de %d %s.", prefix, min, plural(min))
	}
	if max > 0 && n > max {
		return fmt.Errorf("%s deve ter no máximo %d %s.", prefix, max, plural(max))
	}
	return nil
}

func plural(n int) string {
	if n > 1 {
		return "caracteres"
	}
	return "caractere"
}
