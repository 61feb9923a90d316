package config

import (
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/katalvlaran/rootiter/newton"
)

const (
	DefaultRadicand   = 9.0
	DefaultIterations = 25
	DefaultMode       = "all"
	DefaultThreshold  = 1e-2
)

var (
	ErrInvalidRadicand   = errors.New("config: radicand must be finite")
	ErrInvalidIterations = errors.New("config: iterations must be non-negative")
	ErrInvalidMode       = errors.New("config: precision mode must be single, all or full")
	ErrInvalidThreshold  = errors.New("config: precision threshold must be finite and positive")
	ErrInvalidVariable   = errors.New("config: precision variable unknown")
)

type Config struct {
	Run       RunConfig       `toml:"run"`
	Precision PrecisionConfig `toml:"precision"`
}

type RunConfig struct {
	Radicand   float64 `toml:"radicand"`
	Iterations int     `toml:"iterations"`
	Trace      bool    `toml:"trace"`
}

type PrecisionConfig struct {
	Mode      string  `toml:"mode"`
	Variable  string  `toml:"variable"`
	CSV       string  `toml:"csv"`
	Threshold float64 `toml:"threshold"`
}

func Default() Config {
	return Config{
		Run: RunConfig{
			Radicand:   DefaultRadicand,
			Iterations: DefaultIterations,
			Trace:      true,
		},
		Precision: PrecisionConfig{Mode: DefaultMode, Threshold: DefaultThreshold},
	}
}

// Load reads path over the defaults. Keys missing from the file keep
// their default value; an empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config load failed (%s)", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("run", "radicand") {
		cfg.Run.Radicand = raw.Run.Radicand
	}
	if meta.IsDefined("run", "iterations") {
		cfg.Run.Iterations = raw.Run.Iterations
	}
	if meta.IsDefined("run", "trace") {
		cfg.Run.Trace = raw.Run.Trace
	}
	if meta.IsDefined("precision", "mode") {
		cfg.Precision.Mode = strings.ToLower(strings.TrimSpace(raw.Precision.Mode))
	}
	if meta.IsDefined("precision", "variable") {
		cfg.Precision.Variable = strings.TrimSpace(raw.Precision.Variable)
	}
	if meta.IsDefined("precision", "csv") {
		cfg.Precision.CSV = strings.TrimSpace(raw.Precision.CSV)
	}
	if meta.IsDefined("precision", "threshold") {
		cfg.Precision.Threshold = raw.Precision.Threshold
	}

	if err := Validate(cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the fields a run depends on. The radicand is allowed
// to be zero or negative: those inputs are reproduced, not rejected.
// The commands call it again after applying flag overrides.
func Validate(cfg Config) error {
	if math.IsNaN(cfg.Run.Radicand) || math.IsInf(cfg.Run.Radicand, 0) {
		return ErrInvalidRadicand
	}
	if cfg.Run.Iterations < 0 {
		return ErrInvalidIterations
	}
	if !(cfg.Precision.Threshold > 0) || math.IsInf(cfg.Precision.Threshold, 1) {
		return ErrInvalidThreshold
	}
	switch cfg.Precision.Mode {
	case "all", "full":
	case "single":
		if !newton.Variable(cfg.Precision.Variable).Valid() {
			return errors.Wrapf(ErrInvalidVariable, "%q", cfg.Precision.Variable)
		}
	default:
		return errors.Wrapf(ErrInvalidMode, "%q", cfg.Precision.Mode)
	}
	return nil
}
