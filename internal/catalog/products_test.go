// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/painel-tui/internal/backend"
)

func product(id int, codprod string) Product {
	return Product{ID: backend.FlexInt(id), CodProd: backend.FlexString(codprod)}
}

func TestGroupProducts(t *testing.T) {
	groups := GroupProducts([]Product{
		product(1, "123456001"),
		product(2, "654321001"),
		product(3, "123456002"),
		product(4, "12"),
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "123456", groups[0].GroupCode)
	assert.Len(t, groups[0].Products, 2)
	assert.Equal(t, backend.FlexInt(3), groups[0].Products[1].ID)
	assert.Equal(t, "654321", groups[1].GroupCode)
	assert.Equal(t, "12", groups[2].GroupCode)
}

func TestGroupProducts_Empty(t *testing.T) {
	groups := GroupProducts(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestEAN13CheckDigit(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"789123456789", 5},
		{"400638133393", 1},
		{"590123412345", 7},
		{"000000000000", 0},
	}
	for _, tt := range tests {
		got, err := EAN13CheckDigit(tt.body)
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.want, got, tt.body)
	}

	for _, bad := range []string{"", "12345", "78912345678a", "7891234567890"} {
		_, err := EAN13CheckDigit(bad)
		assert.ErrorIs(t, err, ErrBarcodeDigits, bad)
	}
}

func TestValidBarcode(t *testing.T) {
	assert.True(t, ValidBarcode("7891234567895"))
	assert.True(t, ValidBarcode("4006381333931"))
	assert.False(t, ValidBarcode("7891234567890"))
	assert.False(t, ValidBarcode("789123456789"))
	assert.False(t, ValidBarcode("78912345678x5"))
}

func TestBarcode_Complete(t *testing.T) {
	b := Barcode{Prefix: "7891234", Intermediate: "56789"}.Complete()
	assert.Equal(t, "5", b.Check)
	assert.Equal(t, "7891234567895", b.String())
	assert.True(t, ValidBarcode(b.String()))

	short := Barcode{Prefix: "789", Intermediate: "1"}.Complete()
	assert.Empty(t, short.Check)
}

func TestCheckBarcodes(t *testing.T) {
	codes := []Barcode{
		{Prefix: "7891234", Intermediate: "56789", Check: "5"},
		{Prefix: "7891234", Intermediate: "00001", Check: "3"},
		{Prefix: "7891234", Intermediate: "56789", Check: "5"},
		{Prefix: "7891234", Intermediate: "1"},
		{Prefix: "7891234", Intermediate: "56789", Check: "5"},
	}
	res := CheckBarcodes(codes)
	assert.True(t, res.HasDuplicates())
	assert.Equal(t, []string{"7891234567895", "7891234567895"}, res.Duplicates)
	assert.True(t, res.HasInvalid())
	assert.Equal(t, []string{"78912341"}, res.Invalid)

	assert.True(t, IntermediateIsDuplicate(res.Duplicates, "56789"))
	assert.False(t, IntermediateIsDuplicate(res.Duplicates, "00001"))
	assert.False(t, IntermediateIsDuplicate(res.Duplicates, ""))

	assert.Equal(t, "56789", LongestIntermediate(codes))
	assert.Equal(t, "", LongestIntermediate(nil))
}

func TestCheckBarcodes_Clean(t *testing.T) {
	res := CheckBarcodes([]Barcode{{Prefix: "7891234", Intermediate: "56789", Check: "5"}})
	assert.False(t, res.HasDuplicates())
	assert.False(t, res.HasInvalid())
}

func TestDiffValues(t *testing.T) {
	initial := map[string]string{"nome": "Ana", "cidade": "Recife", "uf": "PE"}
	updated := map[string]string{"nome": "Ana", "cidade": "Olinda", "uf": "", "cep": "50000-000"}

	assert.Equal(t, map[string]string{"cidade": "Olinda", "cep": "50000-000"}, DiffValues(initial, updated))
	assert.Empty(t, DiffValues(initial, initial))
}
