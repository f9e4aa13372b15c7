package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/paramkit/internal/config"
	"github.com/NikitaCOEUR/paramkit/internal/host"
)

// Validate validates a paramkit configuration file
func Validate(p Params, configPath string) error {
	out := p.out()

	if configPath == "" {
		dir := p.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			dir = wd
		}
		configPath = config.FindConfigFile(dir)
		if configPath == "" {
			return fmt.Errorf("no config file found")
		}
	}

	_, _ = fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	result, err := config.ValidateFile(configPath)
	if err != nil {
		return err
	}

	// Reply templates are only compiled when the host is built
	if result.Valid {
		cfg, err := config.New().Load(configPath)
		if err != nil {
			return err
		}
		if _, err := host.New(cfg); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, config.ValidationError{Field: "commands", Message: err.Error()})
		}
	}

	if result.Valid {
		_, _ = fmt.Fprintln(out, "✅ Configuration is valid!")
		return nil
	}

	_, _ = fmt.Fprintln(out, "❌ Configuration has errors:")
	for i, e := range result.Errors {
		_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, e.Field, e.Message)
	}
	_, _ = fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
