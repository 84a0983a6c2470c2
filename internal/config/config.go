// Package config loads the ndef command's TOML configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/errors"
)

// Config is the complete CLI configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Decode DecodeConfig `toml:"decode"`
	Text   TextConfig   `toml:"text"`
}

type LogConfig struct {
	Level       string `toml:"level" validate:"required,oneof=debug info warn error"`
	Development bool   `toml:"development"`
}

type OutputConfig struct {
	// Format is how encoded messages are written: "hex" or "binary".
	Format string `toml:"format" validate:"required,oneof=hex binary"`
	// TLV wraps encoded messages in a Type 2 tag NDEF TLV.
	TLV   bool   `toml:"tlv"`
	Color string `toml:"color" validate:"required,oneof=auto always never"`
}

type DecodeConfig struct {
	Strict bool `toml:"strict"`
	// MaxBytes caps the memory a decoded message may allocate. Zero means
	// no limit.
	MaxBytes int64 `toml:"max_bytes" validate:"gte=0"`
}

type TextConfig struct {
	DefaultLang string `toml:"default_lang" validate:"required,min=2,max=63"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			Format: "hex",
			Color:  "auto",
		},
		Text: TextConfig{
			DefaultLang: "en",
		},
	}
}

// Load reads the TOML file at path over the defaults and validates the
// result. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindNoInput, err, fmt.Sprintf("config load failed (%s)", path))
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, fmt.Sprintf("config parse failed (%s)", path))
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "invalid configuration")
	}
	return nil
}

// Options returns the message options implied by the decode settings.
func (c DecodeConfig) Options() []ndef.Option {
	if c.MaxBytes <= 0 {
		return nil
	}
	return []ndef.Option{ndef.WithAllocator(ndef.NewBudget(c.MaxBytes))}
}
