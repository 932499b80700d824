package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvProvider selects the default provider.
const EnvProvider = "AICOMMIT_PROVIDER"

// Store answers API key and model lookups from the environment and the config file.
// Environment variables win over the file.
type Store struct {
	File   FileConfig
	getenv func(string) string
}

// LoadEnvFile loads KEY=VALUE pairs from the given .env files (default ".env")
// without overriding variables that are already set. Missing files are ignored.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return &ConfigError{Op: "read", Err: err}
		}
	}
	return nil
}

func NewStore(file FileConfig) *Store {
	return &Store{File: file, getenv: os.Getenv}
}

// EnvName builds the environment variable for provider and suffix, e.g. DEEPSEEK_API_KEY.
func EnvName(provider, suffix string) string {
	p := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(provider))
	return p + "_" + suffix
}

// APIKey returns the key for provider, or "" if none is configured.
func (s *Store) APIKey(provider string) string {
	return strings.TrimSpace(ResolveString("", s.getenv(EnvName(provider, "API_KEY")), s.File.ProviderSettings(provider).APIKey, ""))
}

// Model returns the preferred model for provider, or "" to use the provider default.
func (s *Store) Model(provider string) string {
	return strings.TrimSpace(ResolveString("", s.getenv(EnvName(provider, "MODEL")), s.File.ProviderSettings(provider).Model, ""))
}

// BaseURL returns the endpoint override for provider, or "".
func (s *Store) BaseURL(provider string) string {
	return strings.TrimSpace(ResolveString("", s.getenv(EnvName(provider, "BASE_URL")), s.File.ProviderSettings(provider).BaseURL, ""))
}

// DefaultProvider resolves the provider name from env, then file, then def.
func (s *Store) DefaultProvider(def string) string {
	return strings.ToLower(ResolveString("", s.getenv(EnvProvider), s.File.Provider, def))
}
