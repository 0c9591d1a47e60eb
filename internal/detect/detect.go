// Package detect reports which coding assistant is installed alongside
// prompto and whether its API can be used for a rewrite.
package detect

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/sant0-9/prompto/internal/cache"
)

// Backend describes the detected assistant
type Backend struct {
	Provider    string    `json:"provider"`
	DisplayName string    `json:"display_name"`
	Available   bool      `json:"available"`
	CanEnhance  bool      `json:"can_enhance"`
	CheckedAt   time.Time `json:"checked_at"`

	// APIKey is the credential found for Provider, if any
	APIKey string `json:"-"`
}

// Detector finds the assistant integrated with the current host
type Detector interface {
	Detect(ctx context.Context) (Backend, error)
}

type assistant struct {
	binary      string
	provider    string
	displayName string
	keyEnv      string
}

// assistants in priority order
var assistants = []assistant{
	{binary: "claude", provider: "anthropic", displayName: "Claude Code", keyEnv: "ANTHROPIC_API_KEY"},
	{binary: "codex", provider: "openai", displayName: "Codex CLI", keyEnv: "OPENAI_API_KEY"},
	{binary: "gemini", provider: "gemini", displayName: "Gemini CLI", keyEnv: "GEMINI_API_KEY"},
}

// Environment detects assistants from PATH and API key variables. An
// assistant can enhance only when its key is set.
type Environment struct {
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
	Now      cache.Clock
}

// NewEnvironment uses the real PATH and environment
func NewEnvironment() *Environment {
	return &Environment{LookPath: exec.LookPath, Getenv: os.Getenv, Now: time.Now}
}

// Detect returns the first assistant that can enhance, else the first one
// installed, else an unavailable Backend.
func (e *Environment) Detect(ctx context.Context) (Backend, error) {
	var found *Backend
	for _, a := range assistants {
		if err := ctx.Err(); err != nil {
			return Backend{}, err
		}

		_, pathErr := e.LookPath(a.binary)
		key := e.Getenv(a.keyEnv)
		if pathErr != nil && key == "" {
			continue
		}

		b := Backend{
			Provider:    a.provider,
			DisplayName: a.displayName,
			Available:   true,
			CanEnhance:  key != "",
			CheckedAt:   e.Now(),
			APIKey:      key,
		}
		if b.CanEnhance {
			return b, nil
		}
		if found == nil {
			found = &b
		}
	}

	if found != nil {
		return *found, nil
	}
	return Backend{CheckedAt: e.Now()}, nil
}

// Cached keeps a Detector result for a TTL
type Cached struct {
	inner Detector
	cache *cache.TTL[Backend]
}

// NewCached wraps d with a TTL cache
func NewCached(d Detector, ttl time.Duration, now cache.Clock) *Cached {
	return &Cached{inner: d, cache: cache.NewTTL[Backend](ttl, now)}
}

func (c *Cached) Detect(ctx context.Context) (Backend, error) {
	return c.Refresh(ctx, false)
}

// Refresh detects again when force is set or the cached value expired
func (c *Cached) Refresh(ctx context.Context, force bool) (Backend, error) {
	return c.cache.GetOrLoad(force, func() (Backend, error) {
		return c.inner.Detect(ctx)
	})
}

// Clear drops the cached result
func (c *Cached) Clear() {
	c.cache.Clear()
}
