package main

import (
	"flag"
	"os"

	"github.com/katalvlaran/rootiter/internal/config"
	"github.com/katalvlaran/rootiter/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	log := logging.Logger()

	msg, path, err := run(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("configgen")
	}
	log.Log().Str("path", path).Msg(msg)
}

// run validates an existing config (-validate) or writes the template,
// returning a status message and the path it acted on.
func run(args []string) (string, string, error) {
	fs := flag.NewFlagSet("configgen", flag.ContinueOnError)
	output := fs.String("output", "config.toml", "output path for config template")
	validate := fs.Bool("validate", false, "validate an existing config file")
	input := fs.String("input", "config.toml", "config path for validation")
	force := fs.Bool("force", false, "overwrite existing config file")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}

	if *validate {
		if _, err := config.Load(*input); err != nil {
			return "", *input, err
		}
		return "config valid", *input, nil
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		return "", *output, err
	}
	return "config template written", *output, nil
}
