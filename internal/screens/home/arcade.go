package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/ui/components"
	"github.com/abhisek/csatquiz/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `  ██████╗███████╗ █████╗ ████████╗
 ██╔════╝██╔════╝██╔══██╗╚══██╔══╝
 ██║     ███████╗███████║   ██║
 ██║     ╚════██║██╔══██║   ██║
 ╚██████╗███████║██║  ██║   ██║
  ╚═════╝╚══════╝╚═╝  ╚═╝   ╚═╝`

const arcadeTitleCompact = "C · S · A · T   Q · U · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the graded-attempt summary in a bordered box
// matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	attemptStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	avgStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	switch {
	case st.Attempts == 0:
		line = dimStyle.Render("No graded quizzes yet")
	case compact:
		line = fmt.Sprintf("%s %s %s",
			attemptStyle.Render(fmt.Sprintf("✎%d", st.Attempts)),
			avgStyle.Render(fmt.Sprintf("⌀%.0f", st.AvgScore)),
			bestStyle.Render(fmt.Sprintf("★%d", st.BestScore)),
		)
	default:
		line = fmt.Sprintf("%s  %s  %s",
			attemptStyle.Render(fmt.Sprintf("✎ %d QUIZZES", st.Attempts)),
			avgStyle.Render(fmt.Sprintf("⌀ %.0f AVG", st.AvgScore)),
			bestStyle.Render(fmt.Sprintf("★ %d BEST", st.BestScore)),
		)
	}

	if st.Weakest != "" && !compact {
		line += "\n" + dimStyle.Render("weakest: "+st.Weakest)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	buttons := make([]string, 0, len(items))
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no
// borders) for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	lines := make([]string, 0, len(items))
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderKeyBanner renders a warning banner when no LLM API key is configured.
func renderKeyBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ API Key가 필요합니다. API KEY 메뉴에서 입력하세요.")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
