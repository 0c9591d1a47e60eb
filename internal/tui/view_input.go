package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/prompto/internal/config"
)

const logo = `
 ██████╗ ██████╗  ██████╗ ███╗   ███╗██████╗ ████████╗ ██████╗
 ██╔══██╗██╔══██╗██╔═══██╗████╗ ████║██╔══██╗╚══██╔══╝██╔═══██╗
 ██████╔╝██████╔╝██║   ██║██╔████╔██║██████╔╝   ██║   ██║   ██║
 ██╔═══╝ ██╔══██╗██║   ██║██║╚██╔╝██║██╔═══╝    ██║   ██║   ██║
 ██║     ██║  ██║╚██████╔╝██║ ╚═╝ ██║██║        ██║   ╚██████╔╝
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚═╝        ╚═╝    ╚═════╝
`

func (a *App) renderInput() string {
	logoRendered := styleLogo.Render(logo)
	subtitle := styleSubtitle.Render("Turn rough requests into clear prompts")

	boxWidth := min(70, a.width-4)
	inputBox := styleBox.Copy().
		Width(boxWidth).
		BorderForeground(colorPrimary).
		Render(a.state.input.View())

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logoRendered,
		subtitle,
		"",
		inputBox,
		a.intentLine(),
		a.contextLine(),
		"",
		a.backendLine(),
	)

	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	statusBar := styleStatusBar.Render("[Enter] Enhance  [Tab] Intent  [Ctrl+G] Git  [Ctrl+P] Project  [Esc] Quit  /help")
	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}

func (a *App) intentLine() string {
	text := strings.TrimSpace(a.state.input.Value())
	in, auto := a.state.selectedIntent(text)
	label := in.Label()
	if auto {
		label += " (auto)"
	}
	return styleSubtitle.Render("Intent: ") + styleSelected.Render(label)
}

func (a *App) contextLine() string {
	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	return styleSubtitle.Render(fmt.Sprintf("%s git status  %s project files",
		check(a.state.includeGit), check(a.state.includeProject)))
}

func (a *App) backendLine() string {
	cfg := a.state.config
	parts := []string{"Mode: " + string(cfg.Mode)}

	switch cfg.Mode {
	case config.ModeRuleOnly:
		parts = append(parts, "offline rules")
	case config.ModeManual:
		name := cfg.Provider
		if p := config.GetProvider(cfg.Provider); p != nil {
			name = p.Name
		}
		parts = append(parts, fmt.Sprintf("%s / %s", name, cfg.Model))
	default:
		switch {
		case cfg.Local == nil || !cfg.Local.Enabled:
			parts = append(parts, "local model off")
		case a.state.local == nil:
			parts = append(parts, "checking local models...")
		case a.state.local.CanEnhance:
			parts = append(parts, fmt.Sprintf("%s, %d models", a.state.local.DisplayName, len(a.state.local.Models)))
		case a.state.local.Available:
			parts = append(parts, "local server has no models")
		default:
			parts = append(parts, "no local server")
		}
		if d := a.state.detected; d != nil {
			status := "installed"
			if d.CanEnhance {
				status = "ready"
			}
			parts = append(parts, fmt.Sprintf("%s %s", d.DisplayName, status))
		}
	}

	return styleStatusBar.Render(strings.Join(parts, "  ·  "))
}
