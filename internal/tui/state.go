package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sant0-9/prompto/internal/config"
	"github.com/sant0-9/prompto/internal/detect"
	"github.com/sant0-9/prompto/internal/enhance"
	"github.com/sant0-9/prompto/internal/intent"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Settings
	settingsMode     string
	settingsSelected int

	// Input
	input textinput.Model
	// intentIndex 0 is automatic classification, then intent.All() in order
	intentIndex    int
	includeGit     bool
	includeProject bool

	// Processing
	processing bool
	spinner    spinner.Model

	// Result
	request enhance.Request
	result  *enhance.Result
	notice  string

	// Backends
	pipeline  *enhance.Pipeline
	local     *enhance.Availability
	detected  *detect.Backend
	lastError error
}

func newState() *state {
	input := textinput.New()
	input.Placeholder = "Describe what you want, e.g. \"btn not work when click\""
	input.CharLimit = 500
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner

	return &state{
		input:       input,
		apiKeyInput: apiKey,
		spinner:     sp,
	}
}

// selectedIntent returns the chosen intent, classifying text when automatic
func (s *state) selectedIntent(text string) (intent.Intent, bool) {
	if s.intentIndex == 0 {
		return intent.Classify(text), true
	}
	return intent.All()[s.intentIndex-1], false
}

func (s *state) cycleIntent() {
	s.intentIndex = (s.intentIndex + 1) % (len(intent.All()) + 1)
}
