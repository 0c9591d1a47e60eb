package enhance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sant0-9/prompto/internal/cache"
	"github.com/sant0-9/prompto/internal/config"
	"github.com/sant0-9/prompto/internal/detect"
	"github.com/sant0-9/prompto/internal/llm"
)

const (
	defaultProbeTimeout   = 2 * time.Second
	defaultRequestTimeout = 20 * time.Second
)

// errSkipped marks a stage that does not apply; the next stage runs
var errSkipped = errors.New("stage skipped")

// ProviderFactory builds a provider from settings
type ProviderFactory func(s llm.Settings, opts ...llm.Option) (llm.Provider, error)

// AIEnhancer tries at most one AI rewrite and falls back to the rule-based
// prompt on anything unexpected.
type AIEnhancer struct {
	mode           config.Mode
	manual         llm.Settings
	local          *LocalBackend
	detector       detect.Detector
	newProvider    ProviderFactory
	httpClient     *http.Client
	requestTimeout time.Duration
}

// AIOption customizes an AIEnhancer
type AIOption func(*aiOptions)

type aiOptions struct {
	httpClient  *http.Client
	detector    detect.Detector
	newProvider ProviderFactory
	now         cache.Clock
}

// WithTransport sends every AI call through client
func WithTransport(client *http.Client) AIOption {
	return func(o *aiOptions) { o.httpClient = client }
}

// WithDetector sets the host assistant detector used in auto mode
func WithDetector(d detect.Detector) AIOption {
	return func(o *aiOptions) { o.detector = d }
}

// WithProviderFactory replaces llm.NewProvider
func WithProviderFactory(f ProviderFactory) AIOption {
	return func(o *aiOptions) { o.newProvider = f }
}

// WithClock sets the clock of the availability cache
func WithClock(now cache.Clock) AIOption {
	return func(o *aiOptions) { o.now = now }
}

// NewAIEnhancer builds the AI path from cfg
func NewAIEnhancer(cfg *config.Config, opts ...AIOption) *AIEnhancer {
	o := aiOptions{newProvider: llm.NewProvider}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}

	a := &AIEnhancer{
		mode:           cfg.Mode,
		manual:         llm.SettingsFromConfig(cfg),
		detector:       o.detector,
		newProvider:    o.newProvider,
		httpClient:     o.httpClient,
		requestTimeout: cfg.RequestTimeout(),
	}

	local, err := llm.NewLocalProvider(cfg.Local, llm.WithHTTPClient(o.httpClient))
	if err != nil {
		log.Warn().Err(err).Msg("Local backend disabled")
	} else if local != nil {
		a.local = NewLocalBackend(local, cfg.Local.Model, cfg.ProbeTimeout(), cfg.RequestTimeout(), o.now)
	}
	return a
}

// Mode returns the configured enhancement mode
func (a *AIEnhancer) Mode() config.Mode {
	return a.mode
}

type stage struct {
	name string
	run  func(ctx context.Context, input string) (string, error)
}

func (a *AIEnhancer) stages() []stage {
	switch a.mode {
	case config.ModeAuto:
		return []stage{
			{name: "local", run: a.tryLocal},
			{name: "detected", run: a.tryDetected},
		}
	case config.ModeManual:
		return []stage{
			{name: "manual", run: a.tryManual},
		}
	default:
		return nil
	}
}

// Enhance rewrites userInput with the first applicable backend. It never
// fails: any error returns ruleBased with WasAIEnhanced unset.
func (a *AIEnhancer) Enhance(ctx context.Context, userInput, ruleBased string) Result {
	logger := loggerFrom(ctx)
	fallback := NewResult(ruleBased, false)

	for _, s := range a.stages() {
		start := time.Now()
		text, err := s.run(ctx, userInput)
		if errors.Is(err, errSkipped) {
			logger.Debug().Str("stage", s.name).Err(err).Msg("AI stage skipped")
			continue
		}
		if err != nil {
			logger.Warn().Str("stage", s.name).Err(err).Dur("elapsed", time.Since(start)).
				Msg("AI enhancement failed, using rule-based prompt")
			return fallback
		}

		logger.Info().Str("stage", s.name).Dur("elapsed", time.Since(start)).Msg("AI enhancement succeeded")
		return NewResult(text, true)
	}

	return fallback
}

func (a *AIEnhancer) tryLocal(ctx context.Context, input string) (string, error) {
	if a.local == nil {
		return "", fmt.Errorf("%w: local backend disabled", errSkipped)
	}
	return a.local.Generate(ctx, input)
}

func (a *AIEnhancer) tryDetected(ctx context.Context, input string) (string, error) {
	if a.detector == nil {
		return "", fmt.Errorf("%w: no detector", errSkipped)
	}

	b, err := a.detector.Detect(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: detection failed: %v", errSkipped, err)
	}
	if !b.CanEnhance {
		return "", fmt.Errorf("%w: no detected assistant can enhance", errSkipped)
	}

	s := llm.Settings{Provider: b.Provider, APIKey: b.APIKey}
	if a.manual.Provider == b.Provider {
		s.Model = a.manual.Model
	}
	return a.dispatch(ctx, s, input)
}

func (a *AIEnhancer) tryManual(ctx context.Context, input string) (string, error) {
	return a.dispatch(ctx, a.manual, input)
}

// dispatch makes the single rewrite call through the provider table
func (a *AIEnhancer) dispatch(ctx context.Context, s llm.Settings, input string) (string, error) {
	p, err := a.newProvider(s, llm.WithHTTPClient(a.httpClient))
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return "", fmt.Errorf("%w: %w", errSkipped, err)
	}
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()

	resp, err := p.Complete(ctx, newRewriteRequest("", input))
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		loggerFrom(ctx).Debug().Str("provider", p.Name()).Msg("Empty completion, using raw input")
		return input, nil
	}
	return text, nil
}

// Availability reports the local backend probe, cached for a minute
func (a *AIEnhancer) Availability(ctx context.Context, force bool) (Availability, bool) {
	if a.local == nil {
		return Availability{}, false
	}
	return a.local.Availability(ctx, force), true
}

// Detected reports the host assistant, if a detector is configured
func (a *AIEnhancer) Detected(ctx context.Context) (detect.Backend, error) {
	if a.detector == nil {
		return detect.Backend{}, nil
	}
	return a.detector.Detect(ctx)
}

// Invalidate forgets every cached probe. Call it after settings change.
func (a *AIEnhancer) Invalidate() {
	if a.local != nil {
		a.local.Invalidate()
	}
	if c, ok := a.detector.(interface{ Clear() }); ok {
		c.Clear()
	}
}

func loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
