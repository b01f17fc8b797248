// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"strconv"
)

// GroupCodeLen is the length of the model prefix shared by every variation
// of a product.
const GroupCodeLen = 6

// ProductGroup is one model and its variations.
type ProductGroup struct {
	GroupCode string
	Products  []Product
}

// GroupProducts groups variations by the first six characters of codprod,
// keeping the order in which each group was first seen.
func GroupProducts(products []Product) []ProductGroup {
	index := make(map[string]int)
	groups := make([]ProductGroup, 0)
	for _, p := range products {
		code := GroupCode(string(p.CodProd))
		i, seen := index[code]
		if !seen {
			i = len(groups)
			index[code] = i
			groups = append(groups, ProductGroup{GroupCode: code})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

// GroupCode returns the model prefix of a codprod.
func GroupCode(codprod string) string {
	if len(codprod) <= GroupCodeLen {
		return codprod
	}
	return codprod[:GroupCodeLen]
}

// =============================================================================
// BARCODES
// =============================================================================

// EAN13Len is the length of a complete EAN-13 barcode.
const EAN13Len = 13

// ErrBarcodeDigits is returned for input that is not exactly 12 digits.
var ErrBarcodeDigits = errors.New("ean-13 body must be 12 digits")

// EAN13CheckDigit computes the check digit for a 12 digit EAN-13 body.
func EAN13CheckDigit(body string) (int, error) {
	if len(body) != EAN13Len-1 {
		return 0, ErrBarcodeDigits
	}
	sum := 0
	for i := 0; i < len(body); i++ {
		d := body[i]
		if d < '0' || d > '9' {
			return 0, ErrBarcodeDigits
		}
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(d-'0') * weight
	}
	return (10 - sum%10) % 10, nil
}

// ValidBarcode reports whether code is 13 digits with a correct check digit.
func ValidBarcode(code string) bool {
	if len(code) != EAN13Len {
		return false
	}
	want, err := EAN13CheckDigit(code[:EAN13Len-1])
	if err != nil {
		return false
	}
	return int(code[EAN13Len-1]-'0') == want
}

// Barcode is a product barcode assembled from its three parts: the
// company prefix, the per-product intermediate code and the check digit.
type Barcode struct {
	Prefix       string
	Intermediate string
	Check        string
}

// String concatenates the parts.
func (b Barcode) String() string {
	return b.Prefix + b.Intermediate + b.Check
}

// Complete fills Check from Prefix and Intermediate when they form a
// 12 digit body.
func (b Barcode) Complete() Barcode {
	d, err := EAN13CheckDigit(b.Prefix + b.Intermediate)
	if err != nil {
		return b
	}
	b.Check = strconv.Itoa(d)
	return b
}

// BarcodeCheck is the result of CheckBarcodes.
type BarcodeCheck struct {
	Duplicates []string
	Invalid    []string
}

// HasDuplicates reports whether any barcode repeats.
func (c BarcodeCheck) HasDuplicates() bool { return len(c.Duplicates) > 0 }

// HasInvalid reports whether any barcode is too short.
func (c BarcodeCheck) HasInvalid() bool { return len(c.Invalid) > 0 }

// CheckBarcodes assembles each barcode and reports repeats and short codes.
func CheckBarcodes(codes []Barcode) BarcodeCheck {
	flat := make([]string, len(codes))
	for i, c := range codes {
		flat[i] = c.String()
	}
	return BarcodeCheck{
		Duplicates: DuplicateBarcodes(flat),
		Invalid:    InvalidBarcodes(flat),
	}
}

// DuplicateBarcodes returns every code that already appeared at an earlier
// position, once per repeat.
func DuplicateBarcodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	dups := make([]string, 0)
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			dups = append(dups, c)
			continue
		}
		seen[c] = struct{}{}
	}
	return dups
}

// InvalidBarcodes returns the codes shorter than 13 characters.
func InvalidBarcodes(codes []string) []string {
	out := make([]string, 0)
	for _, c := range codes {
		if len(c) < EAN13Len {
			out = append(out, c)
		}
	}
	return out
}

// IntermediateIsDuplicate reports whether intermediate is the middle part
// (positions 7 to 11) of any duplicate barcode.
func IntermediateIsDuplicate(duplicates []string, intermediate string) bool {
	if intermediate == "" {
		return false
	}
	for _, d := range duplicates {
		if len(d) >= 12 && d[7:12] == intermediate {
			return true
		}
	}
	return false
}

// LongestIntermediate returns the longest intermediate code, the first one
// on ties.
func LongestIntermediate(codes []Barcode) string {
	longest := ""
	for _, c := range codes {
		if len(c.Intermediate) > len(longest) {
			longest = c.Intermediate
		}
	}
	return longest
}

// =============================================================================
// RECORD DIFF
// =============================================================================

// DiffValues returns the fields of updated whose value differs from
// initial. Empty values are never reported, so clearing a field is not an
// edit.
func DiffValues(initial, updated map[string]string) map[string]string {
	out := make(map[string]string)
	for k, v := range updated {
		if v == "" {
			continue
		}
		if old, ok := initial[k]; ok && old == v {
			continue
		}
		out[k] = v
	}
	return out
}
