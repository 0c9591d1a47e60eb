package enhance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sant0-9/prompto/internal/config"
)

// Pipeline runs the rule path and then, unless disabled, the AI path
type Pipeline struct {
	Rule *RuleEnhancer
	AI   *AIEnhancer

	// Timeout bounds the whole AI call
	Timeout time.Duration
}

// NewPipeline wires both paths from cfg
func NewPipeline(cfg *config.Config, opts ...AIOption) *Pipeline {
	return &Pipeline{
		Rule:    NewRuleEnhancer(),
		AI:      NewAIEnhancer(cfg, opts...),
		Timeout: cfg.ProbeTimeout() + cfg.RequestTimeout(),
	}
}

// Run always returns a usable prompt. When the AI rewrite succeeds, the
// rendered context block is appended after a rule so it is not lost.
func (p *Pipeline) Run(ctx context.Context, req Request) Result {
	logger := log.With().Str("request_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)

	ruled := p.Rule.Enhance(req)
	logger.Debug().
		Str("intent", req.Intent.String()).
		Int("length", len(ruled.Prompt)).
		Msg("Rule-based prompt ready")

	if p.AI == nil || p.AI.Mode() == config.ModeRuleOnly {
		return ruled
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	res := p.AI.Enhance(ctx, req.Input, ruled.Prompt)
	if !res.WasAIEnhanced {
		return res
	}

	if block := RenderContext(req.Context, req.Flags); block != "" {
		return NewResult(res.Prompt+"\n\n---\n\n"+block, true)
	}
	return res
}
