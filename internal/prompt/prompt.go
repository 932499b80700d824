// Package prompt provides the system prompt sent with every diff.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed prompt.txt
var Default string

// Load returns the prompt stored at path, or Default when path is blank.
// The text is returned as-is; emptiness is checked by the caller.
func Load(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return Default, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt template: %w", err)
	}
	return string(b), nil
}
