package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/prompto/internal/config"
)

func (a *App) renderProcessing() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Enhancing")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	req := a.state.request
	asked := styleSubtitle.Render("> " + truncate(req.Input, 55))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
	b.WriteString("\n\n")

	var steps []string
	steps = append(steps, lipgloss.NewStyle().Foreground(colorSuccess).
		Render(fmt.Sprintf("  [x]  Rules applied (%s)", req.Intent.Label())))
	if a.state.config.Mode != config.ModeRuleOnly {
		steps = append(steps, lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).
			Render(fmt.Sprintf("  %s  Asking %s", a.state.spinner.View(), a.backendName())))
	}

	stepsBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(steps, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, stepsBox))
	b.WriteString("\n\n")

	status := styleStatusBar.Render("[Esc] Skip AI and use the rule-based prompt")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// backendName describes which backend the AI step will most likely use
func (a *App) backendName() string {
	cfg := a.state.config
	if cfg.Mode == config.ModeManual {
		if p := config.GetProvider(cfg.Provider); p != nil {
			return p.Name
		}
		return cfg.Provider
	}
	if a.state.local != nil && a.state.local.CanEnhance {
		return a.state.local.DisplayName
	}
	if a.state.detected != nil && a.state.detected.CanEnhance {
		return a.state.detected.DisplayName
	}
	return "AI backend"
}
