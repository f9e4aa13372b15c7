package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/paramkit/internal/config"
)

// Schema displays or exports the JSON Schema for paramkit configuration files
func Schema(p Params, outputPath string) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, schema, 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		_, _ = fmt.Fprintf(p.out(), "JSON Schema written to: %s\n", outputPath)
		return nil
	}

	_, _ = fmt.Fprintln(p.out(), string(schema))
	return nil
}
