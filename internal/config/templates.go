package config

import (
	"os"

	"github.com/pkg/errors"
)

func Template() string {
	return template
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("config already exists: %s", path)
		}
	}
	return errors.Wrap(os.WriteFile(path, []byte(template), 0o600), "write template")
}

const template = `[run]
radicand = 9.0
iterations = 25
trace = true

[precision]
# single | all | full
mode = "all"
# S | x (single mode only)
variable = ""
# optional CSV export path
csv = ""
# deviation limit for demoted variants (the baseline always uses 1e-6)
threshold = 1e-2
`
