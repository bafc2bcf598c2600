// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads tileworld configuration from defaults, an optional
// YAML file and command-line flags, in that order of precedence.
package config

import (
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/tileworld/internal/logging"
	"github.com/holomush/tileworld/internal/push"
	"github.com/holomush/tileworld/internal/tween"
)

// CodeLoad marks configuration load and validation failures.
const CodeLoad = "CONFIG_LOAD"

// Config is the full tileworld configuration.
type Config struct {
	Log     Log     `koanf:"log"`
	Push    Push    `koanf:"push"`
	Tween   Tween   `koanf:"tween"`
	Metrics Metrics `koanf:"metrics"`
}

// Log configures the process logger.
type Log struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// Push configures the push coordinator.
type Push struct {
	Shift      float64       `koanf:"shift"`
	Duration   time.Duration `koanf:"duration"`
	JumpRadius int           `koanf:"jump_radius"`
}

// Tween configures the animation engine.
type Tween struct {
	Tick time.Duration `koanf:"tick"`
}

// Metrics configures the observability server. An empty Addr disables it.
type Metrics struct {
	Addr string `koanf:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:   Log{Format: "json", Level: "info"},
		Push:  Push{Shift: push.DefaultShift, Duration: push.DefaultDuration, JumpRadius: push.DefaultJumpRadius},
		Tween: Tween{Tick: tween.DefaultTick},
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"log-format":       "log.format",
	"log-level":        "log.level",
	"push-shift":       "push.shift",
	"push-duration":    "push.duration",
	"push-jump-radius": "push.jump_radius",
	"tween-tick":       "tween.tick",
	"metrics-addr":     "metrics.addr",
}

// RegisterFlags adds the configuration flags to fs. Flag defaults mirror
// Default and only explicitly set flags override the file.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("log-format", d.Log.Format, "log format (json or text)")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.Float64("push-shift", d.Push.Shift, "push distance in pixels")
	fs.Duration("push-duration", d.Push.Duration, "push animation duration")
	fs.Int("push-jump-radius", d.Push.JumpRadius, "ring radius of jump reconciliation")
	fs.Duration("tween-tick", d.Tween.Tick, "animation tick interval")
	fs.String("metrics-addr", d.Metrics.Addr, "metrics/health HTTP address (empty = disabled)")
}

// Load builds the configuration. path may be empty; fs may be nil.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code(CodeLoad).With("path", path).Wrapf(err, "read config file")
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", nil, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, f.Value.String()
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code(CodeLoad).Wrapf(err, "read flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code(CodeLoad).With("path", path).Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	errb := oops.Code(CodeLoad)
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return errb.With("log.format", c.Log.Format).Errorf("log format must be 'json' or 'text'")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errb.With("log.level", c.Log.Level).Wrap(err)
	}
	if c.Push.Shift <= 0 {
		return errb.With("push.shift", c.Push.Shift).Errorf("push shift must be positive")
	}
	if c.Push.Duration < 0 {
		return errb.With("push.duration", c.Push.Duration).Errorf("push duration must not be negative")
	}
	if c.Push.JumpRadius < 1 {
		return errb.With("push.jump_radius", c.Push.JumpRadius).Errorf("jump radius must be at least 1")
	}
	if c.Tween.Tick <= 0 {
		return errb.With("tween.tick", c.Tween.Tick).Errorf("tween tick must be positive")
	}
	return nil
}

// CoordinatorOptions converts the push section to coordinator options.
func (c Config) CoordinatorOptions() []push.Option {
	return []push.Option{
		push.WithShift(c.Push.Shift),
		push.WithDuration(c.Push.Duration),
		push.WithJumpRadius(c.Push.JumpRadius),
	}
}
