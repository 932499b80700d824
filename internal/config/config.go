package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const fileName = ".aicommit.json"

type ProviderConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	Model   string `json:"model,omitempty"`
	BaseURL string `json:"base_url,omitempty"` // overrides the built-in endpoint
}

type FileConfig struct {
	Provider  string                    `json:"provider,omitempty"` // deepseek, openai, groq, ...
	Providers map[string]ProviderConfig `json:"providers,omitempty"`

	PromptTemplate string `json:"prompt_template,omitempty"` // path to a prompt file

	IgnoredFiles []string `json:"ignored_files,omitempty"`

	// Advanced Settings
	TimeoutSeconds *int `json:"timeout_seconds,omitempty"`
}

// DefaultPath returns ~/.aicommit.json, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fileName)
}

func Load(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, &ConfigError{Op: "read", Err: err}
	}

	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, &ConfigError{Op: "unmarshal", Err: err}
	}
	return cfg, nil
}

func Save(cfg FileConfig, path string) error {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return &ConfigError{Op: "save", Err: os.ErrNotExist}
		}
	}

	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// keys live in this file
	return os.WriteFile(path, b, 0600)
}

// ProviderSettings returns the per-provider block, zero value if absent.
func (c FileConfig) ProviderSettings(name string) ProviderConfig {
	if c.Providers == nil {
		return ProviderConfig{}
	}
	return c.Providers[name]
}

// SetProvider stores pc under name, allocating the map on first use.
func (c *FileConfig) SetProvider(name string, pc ProviderConfig) {
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	c.Providers[name] = pc
}

func ResolveString(flagVal, envVal, fileVal, defVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	if fileVal != "" {
		return fileVal
	}
	return defVal
}

func ResolveInt(flagVal int, flagSet bool, fileVal *int, defVal int) int {
	if flagSet {
		return flagVal
	}
	if fileVal != nil {
		return *fileVal
	}
	return defVal
}
