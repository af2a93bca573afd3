package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/reportctl/internal/repair"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config drives one reportctl invocation.
type Config struct {
	Input      string
	Strategy   string
	Workers    int
	MetricsOut string
}

type fileConfig struct {
	Input      string `toml:"input"`
	Strategy   string `toml:"strategy"`
	Workers    int    `toml:"workers"`
	MetricsOut string `toml:"metrics_out"`
}

func DefaultConfig() Config {
	return Config{
		Input:    "reports.txt",
		Strategy: repair.NameExhaustive,
		Workers:  1,
	}
}

// Load overlays the keys present in the TOML file at path onto the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("strategy") {
		cfg.Strategy = strings.TrimSpace(raw.Strategy)
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("metrics_out") {
		cfg.MetricsOut = strings.TrimSpace(raw.MetricsOut)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Input) == "" {
		return fmt.Errorf("%w: input is required", ErrInvalidConfig)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, cfg.Workers)
	}
	if _, err := repair.DefaultRegistry().Resolve(cfg.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
