// Package redact masks API keys before text reaches the terminal.
package redact

import (
	"regexp"
	"strings"
)

// Placeholder replaces every masked secret.
const Placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Anthropic keys first so the generic sk- pattern does not leave "ant-" behind.
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]{20,}`),
	// OpenAI / DeepSeek style keys
	regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`),
	// Groq keys
	regexp.MustCompile(`gsk_[a-zA-Z0-9]{20,}`),
	// Google AI keys
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`),
}

// query and header forms keep their prefix so the output still reads naturally.
var (
	queryKey    = regexp.MustCompile(`([?&]key=)[^&\s"]+`)
	bearerToken = regexp.MustCompile(`(Bearer\s+)[^\s"]+`)
)

// String masks well-known key formats, `key=` query values and bearer tokens in s.
// Any extra secrets passed in are replaced verbatim as well.
func String(s string, secrets ...string) string {
	for _, secret := range secrets {
		if strings.TrimSpace(secret) == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	s = queryKey.ReplaceAllString(s, "${1}"+Placeholder)
	s = bearerToken.ReplaceAllString(s, "${1}"+Placeholder)
	for _, p := range patterns {
		s = p.ReplaceAllString(s, Placeholder)
	}
	return s
}

// Error is String applied to err.Error(); nil stays empty.
func Error(err error, secrets ...string) string {
	if err == nil {
		return ""
	}
	return String(err.Error(), secrets...)
}
