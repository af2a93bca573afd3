package config

import (
	"fmt"
	"os"
)

func Template() string {
	return reportctlTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(reportctlTemplate), 0o644)
}

const reportctlTemplate = `# one report per line, whitespace separated integers
input = "reports.txt"

# exhaustive | heuristic
strategy = "exhaustive"

workers = 1

# prometheus text exposition written after each run; empty disables
metrics_out = ""
`
