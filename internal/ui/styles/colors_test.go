// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// STATUS INDICATOR TESTS
// =============================================================================

func TestStatusIndicators_ASCII(t *testing.T) {
	for _, ind := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	} {
		assert.NotEmpty(t, ind)
		for _, r := range ind {
			assert.Less(t, r, rune(128), "indicator %q", ind)
		}
	}
}

func TestRenderHelpers_IncludeIndicator(t *testing.T) {
	tests := []struct {
		name      string
		rendered  string
		indicator string
	}{
		{"success", RenderSuccess("salvo"), StatusIndicators.Success},
		{"error", RenderError("falhou"), StatusIndicators.Error},
		{"warning", RenderWarning("atenção"), StatusIndicators.Warning},
		{"info", RenderInfo("nota"), StatusIndicators.Info},
		{"status ok", RenderStatus(true, "ok"), StatusIndicators.Success},
		{"status fail", RenderStatus(false, "fail"), StatusIndicators.Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.Contains(tt.rendered, tt.indicator))
		})
	}
}

func TestKindColorAndIndicator(t *testing.T) {
	assert.Equal(t, Rose, KindColor("error"))
	assert.Equal(t, Amber, KindColor("warning"))
	assert.Equal(t, Emerald, KindColor("success"))
	assert.Equal(t, Cyan, KindColor("info"))
	assert.Equal(t, Cyan, KindColor("anything"))

	assert.Equal(t, "[X]", KindIndicator("error"))
	assert.Equal(t, "[!]", KindIndicator("warning"))
	assert.Equal(t, "[OK]", KindIndicator("success"))
	assert.Equal(t, "[i]", KindIndicator("info"))
}
