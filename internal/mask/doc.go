// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mask formats and validates Brazilian form input: CPF, CNPJ, CEP,
// phone numbers, pix keys, percentages and currency.
//
// # Usage
//
//	mask.ApplyField("cpf", "12345678901")        // "123.456.789-01"
//	mask.Remove("123.456.789-01")                // "12345678901"
//	mask.FormatCurrency(1234.5)                  // "R$ 1.234,50"
//	mask.ValidateCEP("01310-100")                // nil
//	mask.RemoveAccents("Ação")                   // "Acao"
//
// MaskFields and UnmaskFields work on whole form maps, the shape the
// catalog service hands to the backend.
package mask
