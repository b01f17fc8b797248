// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	tests := []struct {
		value, pattern, want string
	}{
		{"12345678901", PatternCPF, "123.456.789-01"},
		{"1234", PatternCPF, "123.4"},
		{"123", PatternCPF, "123"},
		{"", PatternCPF, ""},
		{"01310100", PatternCEP, "01310-100"},
		{"1133334444", PatternPhone, "(11) 3333-4444"},
		{"11999998888", PatternCellPhone, "(11) 99999-8888"},
		{"123456789012345", PatternCPF, "123.456.789-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Apply(tt.value, tt.pattern), "%s/%s", tt.value, tt.pattern)
	}
}

func TestRemove(t *testing.T) {
	assert.Equal(t, "12345678901", Remove("123.456.789-01"))
	assert.Equal(t, "", Remove("abc"))
	assert.Equal(t, "11999998888", Remove("(11) 99999-8888"))
}

func TestApplyField(t *testing.T) {
	assert.Equal(t, "12.345.678/0001-90", ApplyField("cnpj", "12345678000190"))
	assert.Equal(t, "123.456.780/0001-90", ApplyField("cnpj", "123456780000190"))
	assert.Equal(t, "qualquer", ApplyField("nome", "qualquer"))
	assert.Equal(t, "", ApplyField("cpf", ""))
	assert.Equal(t, "01310-100", ApplyField("cep", "01310100"))
}

func TestCNPJPatternFor(t *testing.T) {
	assert.Equal(t, PatternCNPJ, CNPJPatternFor("12.345.678/0001-9"))
	assert.Equal(t, PatternCNPJ15, CNPJPatternFor("12.345.678/0001-90"))
}

func TestApplyPercentage(t *testing.T) {
	assert.Equal(t, "0", ApplyPercentage(""))
	assert.Equal(t, "100", ApplyPercentage("150"))
	assert.Equal(t, "100", ApplyPercentage("100.00"))
	assert.Equal(t, "05.5", ApplyPercentage("5.5"))
	assert.Equal(t, "12.5", ApplyPercentage("12.5"))
	assert.Equal(t, "7", ApplyPercentage("7"))
}

func TestApplyPixKey(t *testing.T) {
	assert.Equal(t, "123.456.789-01", ApplyPixKey(PixCPF, "12345678901"))
	assert.Equal(t, "12.345.678/0001-90", ApplyPixKey(PixCNPJ, "12345678000190"))
	assert.Equal(t, "+5511999998888", ApplyPixKey(PixPhone, "5511999998888"))
	assert.Equal(t, "maria@exemplo.com", ApplyPixKey(PixEmail, "maria@exemplo.com"))
	assert.Equal(t, "x", ApplyPixKey("outro", "x"))
}

func TestMaskFields(t *testing.T) {
	in := map[string]string{
		"nome":      "Maria",
		"cpf":       "12345678901",
		"cnpj":      "12.345.678/0001-90",
		"telefone1": "1133334444",
		"comissao":  "5.5",
		"chavepix":  "5511999998888",
		"tipochave": PixPhone,
	}
	out := MaskFields(in)

	assert.Equal(t, "Maria", out["nome"])
	assert.Equal(t, "123.456.789-01", out["cpf"])
	assert.Equal(t, "12.345.678/0001-90", out["cnpj"])
	assert.Equal(t, "(11) 3333-4444", out["telefone1"])
	assert.Equal(t, "05.5", out["comissao"])
	assert.Equal(t, "+5511999998888", out["chavepix"])
	assert.Equal(t, "12345678901", in["cpf"], "input map is not modified")
}

func TestUnmaskFields(t *testing.T) {
	out := UnmaskFields(map[string]string{
		"cpf":       "123.456.789-01",
		"cep":       "01310-100",
		"nome":      "Maria",
		"chavepix":  "maria@exemplo.com",
		"tipochave": PixEmail,
	})
	assert.Equal(t, "12345678901", out["cpf"])
	assert.Equal(t, "01310100", out["cep"])
	assert.Equal(t, "Maria", out["nome"])
	assert.Equal(t, "maria@exemplo.com", out["chavepix"])

	out = UnmaskFields(map[string]string{"chavepix": "123.456.789-01", "tipochave": PixCPF})
	assert.Equal(t, "12345678901", out["chavepix"])

	out = UnmaskFields(map[string]string{"chavepix": "123.456.789-01"})
	assert.Equal(t, "123.456.789-01", out["chavepix"])
}

func TestIsCNPJ(t *testing.T) {
	assert.True(t, IsCNPJ("12.345.678/0001-90"))
	assert.True(t, IsCNPJ("123.456.780/0001-90"))
	assert.False(t, IsCNPJ("12345678000190"))
}

// =============================================================================
// NUMBERS
// =============================================================================

func TestIsAFloatNumber(t *testing.T) {
	assert.True(t, IsAFloatNumber("12"))
	assert.True(t, IsAFloatNumber("12.5"))
	assert.True(t, IsAFloatNumber("12.50"))
	assert.False(t, IsAFloatNumber("12.505"))
	assert.False(t, IsAFloatNumber("12,5"))
	assert.False(t, IsAFloatNumber(""))
}

func TestDigitsAndZero(t *testing.T) {
	assert.True(t, ContainsOnlyDigits("0123"))
	assert.False(t, ContainsOnlyDigits("12a"))
	assert.True(t, IsNotZero("1"))
	assert.False(t, IsNotZero("0"))
	assert.True(t, IsGreaterThanZero("0.1"))
	assert.False(t, IsGreaterThanZero(""))
	assert.False(t, IsGreaterThanZero("-3"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", FormatCurrency(1234.5))
	assert.Equal(t, "R$ 0,00", FormatCurrency(0))
	assert.Equal(t, "R$ 1.234.567,89", FormatCurrency(1234567.89))
	assert.Equal(t, "-R$ 10,00", FormatCurrency(-10))
	assert.Equal(t, "12,30", FormatAmount(12.3))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "15%", FormatPercentage("0.15"))
	assert.Equal(t, "5%", FormatPercentage("5"))
	assert.Equal(t, "0%", FormatPercentage("abc"))
	assert.Equal(t, "12.5%", FormatPercentage("12.5"))
	assert.Equal(t, "1%", FormatPercentage("1"))
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "12.34", NormalizeNumber(" 12.34 ", 0, 0))
	assert.Equal(t, "12.345", NormalizeNumber("12.3.4.5", 0, 0))
	assert.Equal(t, "1234", NormalizeNumber("R$ 1a2b3c4", 0, 0))
	assert.Equal(t, "123.45", NormalizeNumber("12345", 3, 2))
	assert.Equal(t, "12.34", NormalizeNumber("12.3456", 3, 2))
	assert.Equal(t, "1.", NormalizeNumber("1.", 0, 0))
}

func TestToNumberOr0(t *testing.T) {
	assert.Equal(t, 12.5, ToFloatOr0("12.5kg"))
	assert.Equal(t, 0.0, ToFloatOr0("kg"))
	assert.Equal(t, 12, ToIntOr0("12.9"))
	assert.Equal(t, -4, ToIntOr0("-4"))
	assert.Equal(t, 0, ToIntOr0(""))
}

// =============================================================================
// TEXT
// =============================================================================

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "Acao", RemoveAccents("Ação"))
	assert.Equal(t, "Sao Joao", RemoveAccents("São João"))
	assert.Equal(t, "plain", RemoveAccents("plain"))
}

func TestNormalizeAndLowercase(t *testing.T) {
	assert.Equal(t, "jose da conceicao", NormalizeAndLowercase("  JOSÉ da Conceição "))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Élio", CapitalizeFirst("élio"))
	assert.Equal(t, "", CapitalizeFirst(""))
	assert.Equal(t, "ABC", CapitalizeFirst("aBC"))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty("  \t"))
	assert.False(t, IsEmpty(" a "))
}

func TestFormatBrazilianDate(t *testing.T) {
	got, ok := FormatBrazilianDate("2024-03-05")
	assert.True(t, ok)
	assert.Equal(t, "5 de março de 2024", got)

	_, ok = FormatBrazilianDate("05/03/2024")
	assert.False(t, ok)
}

// =============================================================================
// VALIDATORS
// =============================================================================

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateCPF("123.456.789-01"))
	assert.ErrorIs(t, ValidateCPF("12345678901"), ErrInvalidCPF)

	assert.NoError(t, ValidateCNPJ("12.345.678/0001-90"))
	assert.NoError(t, ValidateCNPJ("123.456.780/0001-90"))
	assert.ErrorIs(t, ValidateCNPJ("12345678000190"), ErrInvalidCNPJ)

	assert.NoError(t, ValidateCEP("01310-100"))
	assert.ErrorIs(t, ValidateCEP("01310100"), ErrInvalidCEP)

	assert.NoError(t, ValidateEmail("maria@exemplo.com"))
	assert.ErrorIs(t, ValidateEmail("maria"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateEmail("Maria <maria@exemplo.com>"), ErrInvalidEmail)

	assert.NoError(t, ValidateUF("SP"))
	assert.ErrorIs(t, ValidateUF("SPX"), ErrInvalidUF)

	assert.NoError(t, ValidatePhone("(11) 3333-4444"))
	assert.ErrorIs(t, ValidatePhone("(11) 99999-4444"), ErrInvalidPhone)

	assert.NoError(t, ValidateOptionalCellPhone(""))
	assert.NoError(t, ValidateOptionalCellPhone("(__) _____-____"))
	assert.NoError(t, ValidateOptionalCellPhone("(11) 99999-8888"))
	assert.ErrorIs(t, ValidateOptionalCellPhone("(11) 9999-8888"), ErrInvalidCellPhone)
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("Nome", "Maria", 2, 10))
	assert.EqualError(t, ValidateLength("Nome", "M", 2, 0), "Nome deve ter mais de 2 caracteres.")
	assert.EqualError(t, ValidateLength("UF", "", 1, 0), "UF deve ter mais de 1 caractere.")
	assert.EqualError(t, ValidateLength("Nome", "Mariana", 0, 5), "Nome deve ter no máximo 5 caracteres.")
}
