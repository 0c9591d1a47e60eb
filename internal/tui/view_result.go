package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder

	res := a.state.result
	if res == nil {
		return a.renderInput()
	}

	// Show what was asked
	asked := styleSubtitle.Render(fmt.Sprintf("> %s", truncate(a.state.request.Input, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
	b.WriteString("\n\n")

	badge := styleBadgeRule.Render("Rule-based")
	if res.WasAIEnhanced {
		badge = styleBadgeAI.Render("AI enhanced")
	}
	meta := badge + "  " + styleSubtitle.Render(a.tokenSummary(res.Prompt))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, meta))
	b.WriteString("\n\n")

	prompt := res.Prompt
	maxResultHeight := a.height - 12
	if maxResultHeight < 5 {
		maxResultHeight = 5
	}
	lines := strings.Split(prompt, "\n")
	if len(lines) > maxResultHeight {
		lines = append(lines[:maxResultHeight-1], "...")
		prompt = strings.Join(lines, "\n")
	}

	resultBox := styleBox.Copy().
		Width(min(76, a.width-4)).
		BorderForeground(colorPrimary).
		Render(prompt)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		notice := lipgloss.NewStyle().Foreground(colorSuccess).Render(a.state.notice)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, notice))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[c] Copy  [n] New prompt  [?] Help  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func (a *App) tokenSummary(prompt string) string {
	tokens := estimateTokens(prompt)
	model := a.state.config.Model
	pct := float64(tokens) / float64(getContextLimit(model)) * 100
	return fmt.Sprintf("~%d tokens (%.2f%% of %s context)", tokens, pct, model)
}
