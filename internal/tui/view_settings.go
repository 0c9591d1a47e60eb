package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/prompto/internal/config"
)

var modeCycle = []config.Mode{config.ModeAuto, config.ModeRuleOnly, config.ModeManual}

func (a *App) openSettings() {
	a.view = viewSettings
	a.state.settingsMode = ""
	a.state.settingsSelected = 0
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	cfg := a.state.config

	switch a.state.settingsMode {
	case "provider":
		switch {
		case key.Matches(msg, keys.Back):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if a.state.settingsSelected > 0 {
				a.state.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if a.state.settingsSelected < len(config.Providers)-1 {
				a.state.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			p := config.Providers[a.state.settingsSelected]
			cfg.Provider = p.ID
			cfg.Model = p.DefaultModel
			a.state.settingsMode = ""
			return a.applySettings(), true
		}
		return nil, true

	case "model":
		provider := config.GetProvider(cfg.Provider)
		switch {
		case key.Matches(msg, keys.Back):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if a.state.settingsSelected > 0 {
				a.state.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if provider != nil && a.state.settingsSelected < len(provider.Models)-1 {
				a.state.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			if provider != nil && len(provider.Models) > 0 {
				cfg.Model = provider.Models[a.state.settingsSelected]
				a.state.settingsMode = ""
				return a.applySettings(), true
			}
			a.state.settingsMode = ""
		}
		return nil, true

	case "apikey":
		switch {
		case key.Matches(msg, keys.Back):
			a.state.apiKeyInput.Reset()
			a.state.settingsMode = ""
			return nil, true
		case key.Matches(msg, keys.Enter):
			cfg.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Reset()
			a.state.settingsMode = ""
			return a.applySettings(), true
		}
		return nil, false
	}

	switch msg.String() {
	case "esc":
		a.view = viewInput
		a.state.input.Focus()
	case "o":
		cfg.Mode = nextMode(cfg.Mode)
		return a.applySettings(), true
	case "p":
		a.state.settingsMode = "provider"
		a.state.settingsSelected = 0
	case "m":
		a.state.settingsMode = "model"
		a.state.settingsSelected = 0
	case "k":
		a.state.settingsMode = "apikey"
		a.state.apiKeyInput.Focus()
		return textinput.Blink, true
	case "l":
		if cfg.Local == nil {
			cfg.Local = config.DefaultConfig().Local
		} else {
			cfg.Local.Enabled = !cfg.Local.Enabled
		}
		return a.applySettings(), true
	case "r":
		a.state.needsSetup = true
		a.state.setupStep = 0
		a.state.selectedProvider = 0
		a.view = viewSetup
	}
	return nil, true
}

func nextMode(m config.Mode) config.Mode {
	for i, mode := range modeCycle {
		if mode == m {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return config.ModeAuto
}

// applySettings saves the config and forgets cached backend probes
func (a *App) applySettings() tea.Cmd {
	a.reloadPipeline()
	snapshot := a.state.config.Clone()
	save := func() tea.Msg {
		if err := snapshot.Save(); err != nil {
			return errorMsg{err}
		}
		return settingsSavedMsg{}
	}
	return tea.Batch(save, a.checkBackends(true))
}

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderSettingsProvider()
	case "model":
		return a.renderSettingsModel()
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder
	cfg := a.state.config

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(cfg.Provider)
	providerName := cfg.Provider
	if provider != nil {
		providerName = provider.Name
	}

	configLines := []string{
		fmt.Sprintf("  Mode:     %s", cfg.Mode),
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  API Key:  %s", cfg.MaskedAPIKey()),
	}

	configLines = append(configLines, "")
	if cfg.Local != nil && cfg.Local.Enabled {
		configLines = append(configLines, "  Local Model:")
		configLines = append(configLines, fmt.Sprintf("    Host:     %s", cfg.Local.Host))
		configLines = append(configLines, fmt.Sprintf("    Model:    %s", cfg.Local.Model))
	} else {
		configLines = append(configLines, "  Local Model: disabled")
	}

	configBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	actions := []string{
		"  [o] Cycle mode (auto, ruleOnly, manual)",
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [l] Toggle local model",
		"  [r] Run setup again",
	}
	actionsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Select Provider")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var lines []string
	for i, p := range config.Providers {
		line := "  " + p.Name
		if i == a.state.settingsSelected {
			line = styleSelected.Render("> " + p.Name)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsModel() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Select Model")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil || len(provider.Models) == 0 {
		desc := styleSubtitle.Render("No models listed; use `prompto config set model <name>`")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
		return a.centerVertically(b.String())
	}

	providerDesc := styleSubtitle.Render(fmt.Sprintf("Provider: %s", provider.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerDesc))
	b.WriteString("\n\n")

	var lines []string
	for i, model := range provider.Models {
		current := ""
		if model == a.state.config.Model {
			current = " (current)"
		}
		line := "  " + model + current
		if i == a.state.settingsSelected {
			line = styleSelected.Render("> " + model + current)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render("Enter your new API key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
