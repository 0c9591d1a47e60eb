package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// Mode selects how much AI help the enhancer asks for
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeRuleOnly Mode = "ruleOnly"
	ModeManual   Mode = "manual"
)

// ParseMode accepts the three mode names, case-sensitively as written in config
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeRuleOnly, ModeManual:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want auto, ruleOnly or manual)", s)
}

type Config struct {
	Mode     Mode   `yaml:"mode"`
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	Local    *LocalConfig  `yaml:"local,omitempty"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Log      LogConfig     `yaml:"log"`
}

type LocalConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider"`
	Host     string `yaml:"host"`
	Model    string `yaml:"model"`
}

// TimeoutConfig holds durations in time.ParseDuration format
type TimeoutConfig struct {
	Probe   string `yaml:"probe"`
	Request string `yaml:"request"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

const (
	defaultProbeTimeout   = 2 * time.Second
	defaultRequestTimeout = 20 * time.Second
)

func DefaultConfig() *Config {
	return &Config{
		Mode:     ModeAuto,
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Local: &LocalConfig{
			Enabled:  true,
			Provider: "ollama",
			Host:     "http://localhost:11434",
			Model:    "llama3.2",
		},
		Timeouts: TimeoutConfig{
			Probe:   "2s",
			Request: "20s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	out := *c
	if c.Local != nil {
		local := *c.Local
		out.Local = &local
	}
	return &out
}

// ProbeTimeout bounds the local backend reachability check
func (c *Config) ProbeTimeout() time.Duration {
	return parseDuration(c.Timeouts.Probe, defaultProbeTimeout)
}

// RequestTimeout bounds a single AI rewrite call
func (c *Config) RequestTimeout() time.Duration {
	return parseDuration(c.Timeouts.Request, defaultRequestTimeout)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "prompto"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// TemplatesDir holds user templates, one markdown file each
func TemplatesDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file. It returns nil, nil when no file exists yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads the config file, falling back to defaults, and then
// applies environment overrides.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PROMPTO_* environment variables. Every
// invalid value is reported; valid ones are still applied.
func (c *Config) ApplyEnv() error {
	var errs []error
	for key, env := range envOverrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			if err := c.Set(key, v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", env, err))
			}
		}
	}
	return errors.Join(errs...)
}

var envOverrides = map[string]string{
	"mode":     "PROMPTO_MODE",
	"provider": "PROMPTO_PROVIDER",
	"api_key":  "PROMPTO_API_KEY",
	"model":    "PROMPTO_MODEL",
	"base_url": "PROMPTO_BASE_URL",
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	// the TUI and the CLI may both write settings
	lock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("timeout waiting for lock on %s", path)
	}
	defer lock.Unlock()

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
