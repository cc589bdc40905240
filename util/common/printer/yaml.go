package printer

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// PrintYaml prints the provided data as YAML to w, defaulting to stdout
func PrintYaml(w io.Writer, res any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
