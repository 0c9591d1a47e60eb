package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/sant0-9/prompto/internal/config"
	"github.com/sant0-9/prompto/internal/detect"
	"github.com/sant0-9/prompto/internal/enhance"
	"github.com/sant0-9/prompto/internal/workspace"
)

type view int

const (
	viewInput view = iota
	viewSetup
	viewProcessing
	viewResult
	viewSettings
	viewHelp
	viewError
)

// Options configures the interactive app
type Options struct {
	Config     *config.Config
	NeedsSetup bool
	// NewPipeline builds the enhancement pipeline; it runs again after
	// every settings change.
	NewPipeline func(*config.Config) *enhance.Pipeline
	// WorkDir is the project root for git and file context
	WorkDir string
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool

	newPipeline func(*config.Config) *enhance.Pipeline
	workDir     string
	cancel      context.CancelFunc
	clipboard   func(string) error
}

func NewApp(opts Options) *App {
	s := newState()
	s.config = opts.Config
	if s.config == nil {
		s.config = config.DefaultConfig()
	}
	s.needsSetup = opts.NeedsSetup

	newPipeline := opts.NewPipeline
	if newPipeline == nil {
		newPipeline = func(cfg *config.Config) *enhance.Pipeline { return enhance.NewPipeline(cfg) }
	}
	s.pipeline = newPipeline(s.config)

	return &App{
		view:        viewInput,
		state:       s,
		newPipeline: newPipeline,
		workDir:     opts.WorkDir,
		clipboard:   clipboard.WriteAll,
	}
}

// Run starts the full-screen program and blocks until it exits
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	a.state.input.Focus()
	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.checkBackends(false),
	)
}

type enhancedMsg struct{ result enhance.Result }
type backendsMsg struct {
	local    *enhance.Availability
	detected *detect.Backend
}
type setupCompleteMsg struct{}
type settingsSavedMsg struct{}
type copiedMsg struct{}
type errorMsg struct{ error }

// checkBackends probes the local server and the host assistant. Nothing
// is probed in ruleOnly mode.
func (a *App) checkBackends(force bool) tea.Cmd {
	if a.state.config.Mode == config.ModeRuleOnly {
		return nil
	}
	ai := a.state.pipeline.AI
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var msg backendsMsg
		if avail, ok := ai.Availability(ctx, force); ok {
			msg.local = &avail
		}
		if b, err := ai.Detected(ctx); err == nil && b.Available {
			msg.detected = &b
		}
		return msg
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case spinner.TickMsg:
		if a.view == viewProcessing {
			var cmd tea.Cmd
			a.state.spinner, cmd = a.state.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case enhancedMsg:
		a.cancel = nil
		a.state.processing = false
		a.state.result = &msg.result
		a.state.notice = ""
		a.view = viewResult
		return a, nil

	case backendsMsg:
		a.state.local = msg.local
		a.state.detected = msg.detected
		return a, nil

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.view = viewInput
		a.state.input.Focus()
		return a, tea.Batch(textinput.Blink, a.checkBackends(true))

	case settingsSavedMsg:
		return a, nil

	case copiedMsg:
		a.state.notice = "Copied to clipboard"
		return a, nil

	case errorMsg:
		a.state.lastError = msg.error
		a.view = viewError
		return a, nil
	}

	// Update text inputs based on view
	if a.view == viewSetup && a.state.setupStep == 1 || a.view == viewSettings && a.state.settingsMode == "apikey" {
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	} else if a.view == viewInput {
		var cmd tea.Cmd
		a.state.input, cmd = a.state.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey returns handled=false when the key should reach the text input
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewInput:
		return a.handleInputKey(msg)
	case viewProcessing:
		if key.Matches(msg, keys.Back) && a.cancel != nil {
			// the pipeline returns the rule-based prompt
			a.cancel()
		}
		return nil, true
	case viewResult:
		return a.handleResultKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp, viewError:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Enter) {
			a.view = viewInput
			a.state.input.Focus()
		}
		return nil, true
	}
	return nil, false
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Enter):
		return a.handleInput(), true
	case key.Matches(msg, keys.Tab):
		a.state.cycleIntent()
		return nil, true
	case key.Matches(msg, keys.Git):
		a.state.includeGit = !a.state.includeGit
		return nil, true
	case key.Matches(msg, keys.Project):
		a.state.includeProject = !a.state.includeProject
		return nil, true
	}
	return nil, false
}

func (a *App) handleInput() tea.Cmd {
	input := strings.TrimSpace(a.state.input.Value())
	if input == "" {
		return nil
	}

	// Handle slash commands
	if strings.HasPrefix(input, "/") {
		a.state.input.Reset()
		switch strings.ToLower(input) {
		case "/help", "/h":
			a.view = viewHelp
		case "/settings", "/s":
			a.openSettings()
		case "/refresh", "/r":
			return a.checkBackends(true)
		case "/quit", "/q":
			a.quitting = true
			return tea.Quit
		}
		return nil
	}

	return a.startEnhance(input)
}

func (a *App) startEnhance(text string) tea.Cmd {
	in, _ := a.state.selectedIntent(text)
	req := enhance.Request{
		Intent: in,
		Input:  text,
		Flags: enhance.Flags{
			Project: a.state.includeProject,
			Git:     a.state.includeGit,
		},
	}
	a.state.request = req
	a.state.processing = true
	a.view = viewProcessing

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	pipeline := a.state.pipeline
	workDir := a.workDir

	run := func() tea.Msg {
		defer cancel()
		if req.Flags.Project || req.Flags.Git {
			pc, err := workspace.Build(workspace.Options{
				Root:    workDir,
				Project: req.Flags.Project,
				Git:     req.Flags.Git,
			})
			if err != nil {
				log.Warn().Err(err).Msg("Failed to collect context")
			}
			req.Context = pc
		}
		return enhancedMsg{result: pipeline.Run(ctx, req)}
	}

	return tea.Batch(a.state.spinner.Tick, run)
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Copy):
		if a.state.result == nil {
			return nil, true
		}
		prompt := a.state.result.Prompt
		copyFn := a.clipboard
		return func() tea.Msg {
			if err := copyFn(prompt); err != nil {
				return errorMsg{err}
			}
			return copiedMsg{}
		}, true
	case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
		a.state.result = nil
		a.state.notice = ""
		a.state.input.Reset()
		a.state.input.Focus()
		a.view = viewInput
		return textinput.Blink, true
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil, true
	}
	return nil, true
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Back):
			a.quitting = true
			return tea.Quit, true
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(setupChoices())-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			choice := setupChoices()[a.state.selectedProvider]
			if choice.ruleOnly {
				a.state.config.Mode = config.ModeRuleOnly
				return a.finishSetup(), true
			}

			provider := choice.provider
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel
			if provider.ID == "ollama" {
				a.state.config.Mode = config.ModeAuto
			} else {
				a.state.config.Mode = config.ModeManual
			}

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink, true
			}
			return a.finishSetup(), true
		}
		return nil, true

	case 1: // API key entry
		switch {
		case key.Matches(msg, keys.Back):
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Reset()
			return a.finishSetup(), true
		}
	}

	return nil, false
}

func (a *App) finishSetup() tea.Cmd {
	a.reloadPipeline()
	snapshot := a.state.config.Clone()
	return func() tea.Msg {
		if err := snapshot.Save(); err != nil {
			return errorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

// reloadPipeline drops cached probes and rebuilds the pipeline from the
// current config.
func (a *App) reloadPipeline() {
	a.state.pipeline.AI.Invalidate()
	a.state.pipeline = a.newPipeline(a.state.config.Clone())
	a.state.local = nil
	a.state.detected = nil
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewInput:
		return a.renderInput()
	case viewSetup:
		return a.renderSetup()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderInput()
	}
}
