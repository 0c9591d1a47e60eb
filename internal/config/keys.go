package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Keys lists the flat setting names accepted by Get and Set
func Keys() []string {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type accessor struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

var accessors = map[string]accessor{
	"mode": {
		get: func(c *Config) string { return string(c.Mode) },
		set: func(c *Config, v string) error {
			m, err := ParseMode(v)
			if err != nil {
				return err
			}
			c.Mode = m
			return nil
		},
	},
	"provider": {
		get: func(c *Config) string { return c.Provider },
		set: func(c *Config, v string) error {
			if GetProvider(v) == nil {
				return fmt.Errorf("unknown provider %q", v)
			}
			c.Provider = v
			return nil
		},
	},
	"api_key": {
		get: func(c *Config) string { return c.APIKey },
		set: func(c *Config, v string) error { c.APIKey = v; return nil },
	},
	"model": {
		get: func(c *Config) string { return c.Model },
		set: func(c *Config, v string) error { c.Model = v; return nil },
	},
	"base_url": {
		get: func(c *Config) string { return c.BaseURL },
		set: func(c *Config, v string) error { c.BaseURL = v; return nil },
	},
	"local.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.local().Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("local.enabled: %w", err)
			}
			c.local().Enabled = b
			return nil
		},
	},
	"local.host": {
		get: func(c *Config) string { return c.local().Host },
		set: func(c *Config, v string) error { c.local().Host = v; return nil },
	},
	"local.model": {
		get: func(c *Config) string { return c.local().Model },
		set: func(c *Config, v string) error { c.local().Model = v; return nil },
	},
	"timeouts.probe": {
		get: func(c *Config) string { return c.Timeouts.Probe },
		set: func(c *Config, v string) error { return setDuration(&c.Timeouts.Probe, v) },
	},
	"timeouts.request": {
		get: func(c *Config) string { return c.Timeouts.Request },
		set: func(c *Config, v string) error { return setDuration(&c.Timeouts.Request, v) },
	},
	"log.level": {
		get: func(c *Config) string { return c.Log.Level },
		set: func(c *Config, v string) error { c.Log.Level = v; return nil },
	},
}

// Get returns the value of a flat setting such as "mode" or "local.host"
func (c *Config) Get(key string) (string, error) {
	a, ok := accessors[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return a.get(c), nil
}

// Set updates a flat setting, validating enumerated values
func (c *Config) Set(key, value string) error {
	a, ok := accessors[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	return a.set(c, value)
}

func (c *Config) local() *LocalConfig {
	if c.Local == nil {
		c.Local = DefaultConfig().Local
	}
	return c.Local
}

func setDuration(dst *string, v string) error {
	if _, err := time.ParseDuration(v); err != nil {
		return fmt.Errorf("invalid duration %q: %w", v, err)
	}
	*dst = v
	return nil
}

// MaskedAPIKey hides all but the edges of the key for display
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "Not set"
	}
	if len(c.APIKey) > 8 {
		return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
	}
	return "****"
}
