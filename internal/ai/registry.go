package ai

import (
	"sort"
	"strings"
)

// Default is the provider used when none is configured.
const Default = "deepseek"

// Spec describes a chat-completions endpoint.
type Spec struct {
	Name         string
	Endpoint     string
	DefaultModel string
}

var builtin = map[string]Spec{
	"deepseek": {
		Name:         "deepseek",
		Endpoint:     "https://api.deepseek.com/chat/completions",
		DefaultModel: "deepseek-chat",
	},
	"openai": {
		Name:         "openai",
		Endpoint:     "https://api.openai.com/v1/chat/completions",
		DefaultModel: "gpt-4o-mini",
	},
	"groq": {
		Name:         "groq",
		Endpoint:     "https://api.groq.com/openai/v1/chat/completions",
		DefaultModel: "llama-3.1-8b-instant",
	},
	"openrouter": {
		Name:         "openrouter",
		Endpoint:     "https://openrouter.ai/api/v1/chat/completions",
		DefaultModel: "deepseek/deepseek-chat",
	},
	"mistral": {
		Name:         "mistral",
		Endpoint:     "https://api.mistral.ai/v1/chat/completions",
		DefaultModel: "mistral-small-latest",
	},
	// Ollama's OpenAI-compatible endpoint ignores the key, but one is still required locally.
	"ollama": {
		Name:         "ollama",
		Endpoint:     "http://localhost:11434/v1/chat/completions",
		DefaultModel: "llama3",
	},
}

// Lookup returns the built-in spec for name (case-insensitive).
func Lookup(name string) (Spec, bool) {
	s, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Names lists the built-in providers, sorted, with Default first.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		if n != Default {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return append([]string{Default}, names...)
}

// WithEndpoint returns a copy of s pointing at endpoint when it is non-empty.
func (s Spec) WithEndpoint(endpoint string) Spec {
	if strings.TrimSpace(endpoint) != "" {
		s.Endpoint = strings.TrimSpace(endpoint)
	}
	return s
}

// Model returns preferred, or the spec default when preferred is blank.
func (s Spec) Model(preferred string) string {
	if strings.TrimSpace(preferred) != "" {
		return strings.TrimSpace(preferred)
	}
	return s.DefaultModel
}
