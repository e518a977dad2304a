// Package config holds the assembler settings read from a TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/mifasm/translate"
)

var f = translate.From

var (
	ErrConfigUnknown = errors.New(f("config key unknown"))
	ErrConfigValue   = errors.New(f("config value invalid"))
)

// Config is the assembler configuration.
type Config struct {
	Output   string `toml:"output"`   // Image path; derived from the source when empty.
	Depth    int    `toml:"depth"`    // Words in the image.
	Width    int    `toml:"width"`    // Bits per word.
	Verbose  bool   `toml:"verbose"`  // Log every assembled line.
	Workers  int    `toml:"workers"`  // Concurrent encoders.
	Language string `toml:"language"` // Message language, e.g. "en-US".
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Depth:   32768,
		Width:   9,
		Workers: 1,
	}
}

// Load reads a TOML file over the default configuration.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return
	}

	err = check(md, cfg)
	return
}

// Parse reads TOML text over the default configuration.
func Parse(text string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return
	}

	err = check(md, cfg)
	return
}

func check(md toml.MetaData, cfg Config) (err error) {
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = fmt.Errorf("%w: %v", ErrConfigUnknown, strings.Join(keys, ", "))
		return
	}

	return cfg.Validate()
}

// Validate checks the configuration values.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.Depth <= 0:
		err = fmt.Errorf("%w: depth %d", ErrConfigValue, cfg.Depth)
	case cfg.Width != 9:
		err = fmt.Errorf("%w: width %d", ErrConfigValue, cfg.Width)
	case cfg.Workers < 1:
		err = fmt.Errorf("%w: workers %d", ErrConfigValue, cfg.Workers)
	}

	return
}
