package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/rootiter/internal/config"
	"github.com/katalvlaran/rootiter/internal/logging"
	"github.com/katalvlaran/rootiter/newton"
)

func main() {
	logging.ConfigureRuntime()
	log := logging.Logger()

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	log.Debug().Float64("s", cfg.Run.Radicand).Int("n", cfg.Run.Iterations).Bool("trace", cfg.Run.Trace).Msg("run")
	x := run(cfg.Run, os.Stdout, os.Stderr)
	log.Debug().Float64("x", x).Msg("done")
}

// loadConfig reads the optional config file, applies explicitly set
// flags over it, and validates the result.
func loadConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("newton", flag.ContinueOnError)
	path := fs.String("config", "", "optional TOML config (see cmd/configgen)")
	s := fs.Float64("s", config.DefaultRadicand, "radicand S")
	n := fs.Int("n", config.DefaultIterations, "number of Newton updates N")
	trace := fs.Bool("trace", true, "write the iteration trace to stderr")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return config.Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.Run.Radicand = *s
		case "n":
			cfg.Run.Iterations = *n
		case "trace":
			cfg.Run.Trace = *trace
		}
	})
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// run writes the trace to traceOut (when enabled) and the result line to
// out. A failing trace sink is logged; the result is still printed.
func run(cfg config.RunConfig, out, traceOut io.Writer) float64 {
	var opts []newton.Option
	if cfg.Trace {
		opts = append(opts, newton.WithTrace(traceOut))
	}
	x, err := newton.Sqrt(cfg.Radicand, cfg.Iterations, opts...)
	if err != nil {
		logging.Logger().Warn().Err(err).Msg("trace")
	}
	if _, err := fmt.Fprint(out, newton.FormatResult(x)); err != nil {
		logging.Logger().Error().Err(err).Msg("write result")
	}

	return x
}
