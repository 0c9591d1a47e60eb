package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sant0-9/prompto/internal/cache"
	"github.com/sant0-9/prompto/internal/llm"
	"github.com/sant0-9/prompto/internal/prompts"
)

var (
	// ErrNoModels means the local server is up but has nothing installed
	ErrNoModels = errors.New("no local models installed")
	// ErrEmptyOutput means the model answered with nothing usable
	ErrEmptyOutput = errors.New("empty model output")
)

// Availability is the cached result of a backend probe
type Availability struct {
	Provider    string    `json:"provider"`
	Available   bool      `json:"available"`
	CanEnhance  bool      `json:"can_enhance"`
	DisplayName string    `json:"display_name"`
	Models      []string  `json:"models,omitempty"`
	CheckedAt   time.Time `json:"checked_at"`
}

// LocalBackend is the zero-configuration local model server
type LocalBackend struct {
	provider       *llm.OllamaProvider
	model          string
	probeTimeout   time.Duration
	requestTimeout time.Duration
	now            cache.Clock
	cache          *cache.TTL[Availability]
}

// NewLocalBackend wraps provider. model is the preferred model; any
// installed model is used when it is missing.
func NewLocalBackend(provider *llm.OllamaProvider, model string, probeTimeout, requestTimeout time.Duration, now cache.Clock) *LocalBackend {
	if now == nil {
		now = time.Now
	}
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &LocalBackend{
		provider:       provider,
		model:          model,
		probeTimeout:   probeTimeout,
		requestTimeout: requestTimeout,
		now:            now,
		cache:          cache.NewTTL[Availability](cache.DefaultTTL, now),
	}
}

// Availability returns the cached probe, probing again when it expired or
// force is set. An unreachable server is a cached result, not an error. A
// probe cut short by the caller's context reports unavailable but is not
// cached.
func (l *LocalBackend) Availability(ctx context.Context, force bool) Availability {
	a, _ := l.cache.GetOrLoad(force, func() (Availability, error) {
		return l.probe(ctx)
	})
	return a
}

// Invalidate drops the cached probe
func (l *LocalBackend) Invalidate() {
	l.cache.Clear()
}

func (l *LocalBackend) probe(parent context.Context) (Availability, error) {
	ctx, cancel := context.WithTimeout(parent, l.probeTimeout)
	defer cancel()

	a := Availability{
		Provider:    l.provider.Name(),
		DisplayName: "Ollama (" + l.provider.Host() + ")",
		CheckedAt:   l.now(),
	}

	models, err := l.provider.ListModels(ctx)
	if err != nil {
		if parent.Err() != nil {
			return a, parent.Err()
		}
		loggerFrom(ctx).Debug().Err(err).Msg("Local backend unreachable")
		return a, nil
	}

	a.Available = true
	for _, m := range models {
		a.Models = append(a.Models, m.Name)
	}
	a.CanEnhance = len(a.Models) > 0
	return a, nil
}

// pickModel prefers the configured model, matching "name" against
// "name:tag", else the first installed one.
func (l *LocalBackend) pickModel(models []string) string {
	if l.model != "" {
		for _, m := range models {
			if m == l.model || strings.SplitN(m, ":", 2)[0] == l.model {
				return m
			}
		}
	}
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

// Generate rewrites input with the local model
func (l *LocalBackend) Generate(ctx context.Context, input string) (string, error) {
	a := l.Availability(ctx, false)
	if !a.Available {
		return "", fmt.Errorf("%w: local backend unreachable", errSkipped)
	}
	if !a.CanEnhance {
		return "", fmt.Errorf("%w: %w", errSkipped, ErrNoModels)
	}

	ctx, cancel := context.WithTimeout(ctx, l.requestTimeout)
	defer cancel()

	req := newRewriteRequest(l.pickModel(a.Models), input)
	resp, err := l.provider.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	text := CleanLocalOutput(resp.Content)
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}

func newRewriteRequest(model, input string) *llm.CompletionRequest {
	req := llm.NewRequest(model, prompts.EnhanceSystemPrompt(), prompts.BuildEnhanceUserPrompt(input))
	req.MaxTokens = 500
	req.Temperature = 0.3
	return req
}
