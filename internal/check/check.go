// Package check holds the precondition checks run before any request is sent.
// Each check returns nil or a *config.ConfigError.
package check

import (
	"strings"

	"github.com/hoanghonghuy/aicommit/internal/config"
)

// APIKeyPresent fails when the key for provider is empty.
func APIKeyPresent(provider, key string) error {
	if strings.TrimSpace(key) != "" {
		return nil
	}
	return &config.ConfigError{
		Op: "check",
		Err: &config.MissingKeyError{
			Key:  provider + " api key",
			Hint: "set " + config.EnvName(provider, "API_KEY") + " or run: aicommit config",
		},
	}
}

// APIURLPresent fails when the endpoint for provider is empty.
func APIURLPresent(provider, url string) error {
	if strings.TrimSpace(url) != "" {
		return nil
	}
	return &config.ConfigError{
		Op: "check",
		Err: &config.MissingKeyError{
			Key:  provider + " api url",
			Hint: "set " + config.EnvName(provider, "BASE_URL"),
		},
	}
}

// PromptNotEmpty fails when the system prompt is blank.
func PromptNotEmpty(prompt string) error {
	if strings.TrimSpace(prompt) != "" {
		return nil
	}
	return &config.ConfigError{
		Op:  "check",
		Err: &config.MissingKeyError{Key: "system prompt", Hint: "prompt template is empty"},
	}
}
