package main

import (
	"flag"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/rootiter/internal/config"
	"github.com/katalvlaran/rootiter/internal/logging"
	"github.com/katalvlaran/rootiter/precision"
)

func main() {
	logging.ConfigureRuntime()
	log := logging.Logger()

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	rep, err := analyze(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("analyze")
	}
	if err := precision.WriteTable(os.Stdout, rep); err != nil {
		log.Fatal().Err(err).Msg("print report")
	}
	if cfg.Precision.CSV != "" {
		if err := writeCSVFile(cfg.Precision.CSV, rep); err != nil {
			log.Fatal().Err(err).Msg("export csv")
		}
		log.Log().Str("path", cfg.Precision.CSV).Msg("csv written")
	}
}

// loadConfig reads the optional config file, applies explicitly set
// flags over it, and validates the result.
func loadConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("precisionctl", flag.ContinueOnError)
	path := fs.String("config", "", "optional TOML config (see cmd/configgen)")
	s := fs.Float64("s", config.DefaultRadicand, "radicand S")
	n := fs.Int("n", config.DefaultIterations, "number of Newton updates N")
	mode := fs.String("mode", config.DefaultMode, "variant mode: single|all|full")
	variable := fs.String("variable", "", "variable to demote in single mode: S|x")
	threshold := fs.Float64("threshold", config.DefaultThreshold, "deviation limit for demoted variants")
	csvPath := fs.String("csv", "", "write results as CSV to this path")
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
		case "mode":
			cfg.Precision.Mode = strings.ToLower(strings.TrimSpace(*mode))
		case "variable":
			cfg.Precision.Variable = strings.TrimSpace(*variable)
		case "threshold":
			cfg.Precision.Threshold = *threshold
		case "csv":
			cfg.Precision.CSV = strings.TrimSpace(*csvPath)
		}
	})
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func analyze(cfg config.Config) (precision.Report, error) {
	mode, err := precision.ParseMode(cfg.Precision.Mode)
	if err != nil {
		return precision.Report{}, err
	}
	variants, err := precision.Plan(mode, cfg.Precision.Variable)
	if err != nil {
		return precision.Report{}, err
	}
	logging.Logger().Debug().Int("variants", len(variants)).Str("mode", mode.String()).Msg("plan")

	return precision.Analyze(cfg.Run.Radicand, cfg.Run.Iterations, variants,
		precision.WithThreshold(cfg.Precision.Threshold))
}

func writeCSVFile(path string, rep precision.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create csv")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "close csv")
		}
	}()

	return precision.WriteCSV(f, rep)
}
