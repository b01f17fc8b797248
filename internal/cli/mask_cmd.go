// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jeranaias/painel-tui/internal/catalog"
	"github.com/jeranaias/painel-tui/internal/mask"
)

// =============================================================================
// MASK COMMAND
// =============================================================================

// maskKind formats and optionally validates one kind of value.
type maskKind struct {
	format   func(value string, opts *ArgParser) (string, error)
	validate func(formatted string) error
}

// digitsField masks the digits of value with the pattern of field.
func digitsField(field string) func(string, *ArgParser) (string, error) {
	return func(value string, _ *ArgParser) (string, error) {
		return mask.ApplyField(field, mask.Remove(value)), nil
	}
}

func unchanged(value string, _ *ArgParser) (string, error) {
	return strings.TrimSpace(value), nil
}

var errBarcodeInvalid = fmt.Errorf("código de barras inválido")

var maskKinds = map[string]maskKind{
	"cpf":       {format: digitsField("cpf"), validate: mask.ValidateCPF},
	"cnpj":      {format: digitsField("cnpj"), validate: mask.ValidateCNPJ},
	"cep":       {format: digitsField("cep"), validate: mask.ValidateCEP},
	"telefone1": {format: digitsField("telefone1"), validate: mask.ValidatePhone},
	"telefone2": {format: digitsField("telefone2"), validate: mask.ValidateOptionalCellPhone},
	"telefone3": {format: digitsField("telefone3"), validate: mask.ValidateOptionalCellPhone},
	"email":     {format: unchanged, validate: mask.ValidateEmail},
	"uf":        {format: func(v string, _ *ArgParser) (string, error) { return strings.ToUpper(strings.TrimSpace(v)), nil }, validate: mask.ValidateUF},
	"percent": {format: func(v string, _ *ArgParser) (string, error) {
		return mask.ApplyPercentage(v), nil
	}},
	"pix": {format: func(v string, opts *ArgParser) (string, error) {
		keyType := opts.FlagOrDefault("type", mask.PixCPF)
		switch keyType {
		case mask.PixEmail:
			return v, nil
		case mask.PixRandom:
			return mask.ApplyPixKey(keyType, strings.ReplaceAll(strings.TrimSpace(v), "-", "")), nil
		}
		return mask.ApplyPixKey(keyType, mask.Remove(v)), nil
	}},
	"currency": {format: func(v string, _ *ArgParser) (string, error) {
		return mask.FormatCurrency(mask.ToFloatOr0(v)), nil
	}},
	"date": {format: func(v string, _ *ArgParser) (string, error) {
		out, ok := mask.FormatBrazilianDate(v)
		if !ok {
			return "", NewValidationErrorWithExample("date", v, "must be YYYY-MM-DD", "2024-03-05")
		}
		return out, nil
	}},
	"unmask": {format: func(v string, _ *ArgParser) (string, error) {
		return mask.Remove(v), nil
	}},
	"ean13": {
		format: func(v string, _ *ArgParser) (string, error) {
			digits := mask.Remove(v)
			if len(digits) != catalog.EAN13Len-1 {
				return digits, nil
			}
			check, err := catalog.EAN13CheckDigit(digits)
			if err != nil {
				return "", NewValidationError("ean13", v, err.Error())
			}
			return digits + strconv.Itoa(check), nil
		},
		validate: func(code string) error {
			if !catalog.ValidBarcode(code) {
				return errBarcodeInvalid
			}
			return nil
		},
	},
}

// MaskKinds lists the kinds the mask command accepts, sorted.
func MaskKinds() []string {
	kinds := make([]string, 0, len(maskKinds))
	for k := range maskKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// HandleMask formats a value the way the dashboard forms do.
//
//	painel mask cpf 12345678901 [--validate]
//	painel mask pix 11999998888 --type phone
//	painel mask ean13 789123456789
func HandleMask(out Output, opts *ArgParser) error {
	kindName := strings.ToLower(opts.Subcommand())
	value := strings.Join(opts.PositionalFrom(1), " ")
	if kindName == "" || value == "" {
		return ErrMissingArgument("kind and value", "painel mask cpf 12345678901")
	}
	kind, ok := maskKinds[kindName]
	if !ok {
		return NewValidationErrorWithExample("kind", kindName, "unknown mask kind",
			strings.Join(MaskKinds(), ", "))
	}

	formatted, err := kind.format(value, opts)
	if err != nil {
		return err
	}
	data := MaskData{Kind: kindName, Input: value, Output: formatted}

	if opts.BoolFlag("validate") && kind.validate != nil {
		valid := true
		if verr := kind.validate(formatted); verr != nil {
			valid = false
			data.Reason = verr.Error()
		}
		data.Valid = &valid
	}

	if err := out.Emit("mask", data, func(w io.Writer) {
		fmt.Fprintln(w, data.Output)
		if data.Valid != nil {
			if *data.Valid {
				fmt.Fprintln(out.Err, RenderStatus(true, "VÁLIDO", ""))
			} else {
				fmt.Fprintln(out.Err, RenderStatus(false, "", "INVÁLIDO")+" "+data.Reason)
			}
		}
	}); err != nil {
		return err
	}
	if data.Valid != nil && !*data.Valid {
		return NewValidationError(kindName, value, data.Reason)
	}
	return nil
}
