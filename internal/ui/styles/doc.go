// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the painel dashboard.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The palette is small: Purple for selection, Cyan for titles and
info, Emerald for an active session, Amber for warnings and offline mode,
Rose for errors and the expired session.

# Theme System (theme.go)

NewTheme takes the ui.theme config value. "dark" and "light" force the
background; anything else asks the terminal through termenv.

	theme := styles.NewTheme(cfg.UI.Theme)
	line := theme.CountdownStyle(state.Remaining).Render(state.Countdown())

# Status Indicators (colors.go)

Every status color is paired with an ASCII indicator so state is readable
without color:

	StatusIndicators.Success - [OK]
	StatusIndicators.Error   - [X]
	StatusIndicators.Warning - [!]
	StatusIndicators.Info    - [i]

# Usage

	import "github.com/jeranaias/painel-tui/internal/ui/styles"

	fmt.Println(styles.RenderWarning("Sem conexão com a Internet!"))
	accent := styles.KindColor(n.Kind.String())
*/
package styles
