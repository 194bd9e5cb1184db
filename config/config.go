// Package config loads bridge settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/text"
)

// Config holds the bridge settings.
type Config struct {
	// TextEncoding is auto, utf8 or utf16. Auto queries the platform on
	// every decode.
	TextEncoding  string `env:"BRIDGE_TEXT_ENCODING" envDefault:"auto"`
	MaxTextLength uint32 `env:"BRIDGE_MAX_TEXT_LENGTH" envDefault:"1048576"`
	ModuleName    string `env:"BRIDGE_MODULE_NAME" envDefault:"bridge"`
	LogLevel      string `env:"BRIDGE_LOG_LEVEL" envDefault:"info"`
	GreetingName  string `env:"BRIDGE_GREETING_NAME" envDefault:"bridge"`
}

// Default returns the configuration with every default applied.
func Default() Config {
	return Config{
		TextEncoding:  "auto",
		MaxTextLength: text.DefaultMaxLength,
		ModuleName:    "bridge",
		LogLevel:      "info",
		GreetingName:  "bridge",
	}
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := text.Parse(c.TextEncoding); err != nil {
		return err
	}
	if c.MaxTextLength == 0 {
		return errors.InvalidInput(errors.PhaseConfig, "BRIDGE_MAX_TEXT_LENGTH must be positive")
	}
	if c.ModuleName == "" {
		return errors.InvalidInput(errors.PhaseConfig, "BRIDGE_MODULE_NAME must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Strategy resolves TextEncoding. A nil strategy means auto.
func (c Config) Strategy() (text.Strategy, error) {
	return text.Parse(c.TextEncoding)
}

// Decoder builds the text decoder the settings describe.
func (c Config) Decoder() (*text.Decoder, error) {
	s, err := c.Strategy()
	if err != nil {
		return nil, err
	}
	return text.NewDecoder(s, text.WithMaxLength(c.MaxTextLength)), nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("log level %q: %v", c.LogLevel, err))
	}
	return lvl, nil
}
