// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMask(t *testing.T, jsonMode bool, argv ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := HandleMask(Output{Out: &out, Err: &errOut, JSON: jsonMode}, NewArgParser(argv))
	return out.String(), err
}

func TestHandleMask_Formats(t *testing.T) {
	ForceColorsEnabled(false)
	tests := []struct {
		argv []string
		want string
	}{
		{[]string{"cpf", "52998224725"}, "529.982.247-25"},
		{[]string{"cpf", "529.982.247-25"}, "529.982.247-25"},
		{[]string{"cnpj", "11222333000181"}, "11.222.333/0001-81"},
		{[]string{"cep", "50050000"}, "50050-000"},
		{[]string{"telefone1", "8133330000"}, "(81) 3333-0000"},
		{[]string{"telefone2", "81999990001"}, "(81) 99999-0001"},
		{[]string{"pix", "5511999998888", "--type", "phone"}, "+5511999998888"},
		{[]string{"pix", "ana@example.com", "--type", "email"}, "ana@example.com"},
		{[]string{"unmask", "(81) 3333-0000"}, "8133330000"},
		{[]string{"percent", "5.5"}, "05.5"},
		{[]string{"uf", "pe"}, "PE"},
		{[]string{"ean13", "789123456789"}, "7891234567895"},
	}
	for _, tt := range tests {
		got, err := runMask(t, false, tt.argv...)
		require.NoError(t, err, "%v", tt.argv)
		assert.Equal(t, tt.want, strings.TrimSpace(got), "%v", tt.argv)
	}
}

func TestHandleMask_ValidateJSON(t *testing.T) {
	out, err := runMask(t, true, "cpf", "5299822", "--validate")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	var env struct {
		Data MaskData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.NotNil(t, env.Data.Valid)
	assert.False(t, *env.Data.Valid)
	assert.NotEmpty(t, env.Data.Reason)
	assert.Equal(t, "529.982.2", env.Data.Output)

	out, err = runMask(t, true, "ean13", "7891234567895", "--validate")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.NotNil(t, env.Data.Valid)
	assert.True(t, *env.Data.Valid)
}

func TestHandleMask_Errors(t *testing.T) {
	_, err := runMask(t, false)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = runMask(t, false, "rg", "123")
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Example, "cpf")

	_, err = runMask(t, false, "date", "05/03/2024")
	assert.True(t, errors.As(err, &verr))
}

func TestMaskKinds_Sorted(t *testing.T) {
	kinds := MaskKinds()
	require.NotEmpty(t, kinds)
	for i := 1; i < len(kinds); i++ {
		assert.Less(t, kinds[i-1], kinds[i])
	}
}
