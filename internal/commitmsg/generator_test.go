package commitmsg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/hoanghonghuy/aicommit/internal/config"
	"github.com/hoanghonghuy/aicommit/internal/openai"
	"github.com/hoanghonghuy/aicommit/internal/ui"
)

type fakeConfig struct {
	key, model string
}

func (f fakeConfig) APIKey(string) string { return f.key }
func (f fakeConfig) Model(string) string  { return f.model }

type fakeDiff struct {
	diff string
	err  error
}

func (f fakeDiff) Diff(context.Context) (string, error) { return f.diff, f.err }

func contentBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
	})
	return string(b)
}

// newServer returns a test server answering with body and a counter of requests received.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newGenerator(endpoint string, cfg ConfigProvider, diffs DiffProvider) *Generator {
	return &Generator{
		Spec:   ai.Spec{Name: "deepseek", Endpoint: endpoint, DefaultModel: "deepseek-chat"},
		Config: cfg,
		Diffs:  diffs,
		Prompt: "Write a commit message.",
		Logger: ui.Discard(),
	}
}

func TestGenerate_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(contentBody("  \"Fix bug in parser\"\n")))
	}))
	defer srv.Close()

	g := newGenerator(srv.URL, fakeConfig{key: "sk-test"}, fakeDiff{diff: "diff --git a/p.go b/p.go"})
	msg, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Fix bug in parser", msg)

	// empty model preference falls back to the provider default
	assert.Equal(t, "deepseek-chat", got["model"])
	msgs := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Write a commit message.", msgs[0].(map[string]any)["content"])
	assert.Equal(t, "diff --git a/p.go b/p.go", msgs[1].(map[string]any)["content"])
}

func TestGenerate_ModelPreference(t *testing.T) {
	var model string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		model = body.Model
		w.Write([]byte(contentBody("no quotes here")))
	}))
	defer srv.Close()

	g := newGenerator(srv.URL, fakeConfig{key: "sk-test", model: "deepseek-reasoner"}, fakeDiff{diff: "d"})
	msg, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "no quotes here", msg)
	assert.Equal(t, "deepseek-reasoner", model)
}

func TestGenerate_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		endpoint bool
		prompt   string
	}{
		{name: "missing key", key: "", endpoint: true, prompt: "p"},
		{name: "blank key", key: "  ", endpoint: true, prompt: "p"},
		{name: "missing endpoint", key: "sk-test", endpoint: false, prompt: "p"},
		{name: "empty prompt", key: "sk-test", endpoint: true, prompt: " \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := newServer(t, http.StatusOK, contentBody("x"))

			endpoint := ""
			if tt.endpoint {
				endpoint = srv.URL
			}
			g := newGenerator(endpoint, fakeConfig{key: tt.key}, fakeDiff{diff: "d"})
			g.Prompt = tt.prompt

			msg, err := g.Generate(context.Background())
			assert.Empty(t, msg)
			assert.True(t, config.IsConfigError(err), "err = %v, want ConfigError", err)
			assert.Zero(t, atomic.LoadInt32(hits), "no request may be sent")
		})
	}
}

func TestGenerate_DiffProblems(t *testing.T) {
	diffErr := errors.New("git exploded")

	tests := []struct {
		name   string
		diffs  fakeDiff
		target error
	}{
		{"diff error", fakeDiff{err: diffErr}, diffErr},
		{"empty diff", fakeDiff{diff: "  \n"}, ErrNoChanges},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := newServer(t, http.StatusOK, contentBody("x"))
			g := newGenerator(srv.URL, fakeConfig{key: "sk-test"}, tt.diffs)

			msg, err := g.Generate(context.Background())
			assert.Empty(t, msg)
			assert.ErrorIs(t, err, tt.target)
			assert.Zero(t, atomic.LoadInt32(hits))
		})
	}
}

func TestGenerate_RecoverableFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"malformed json", http.StatusOK, `{"choices": [`},
		{"missing path", http.StatusOK, `{"id": "x"}`},
		{"api error", http.StatusUnauthorized, `{"error": {"message": "Authentication Fails"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := newServer(t, tt.status, tt.body)
			g := newGenerator(srv.URL, fakeConfig{key: "sk-test"}, fakeDiff{diff: "d"})

			msg, err := g.Generate(context.Background())
			assert.NoError(t, err)
			assert.Empty(t, msg)
			assert.EqualValues(t, 1, atomic.LoadInt32(hits))
		})
	}
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	g := newGenerator(srv.URL, fakeConfig{key: "sk-test"}, fakeDiff{diff: "d"})
	g.Timeout = 50 * time.Millisecond

	msg, err := g.Generate(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, msg)
}

func TestGenerate_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	g := newGenerator(endpoint, fakeConfig{key: "sk-test"}, fakeDiff{diff: "d"})
	msg, err := g.Generate(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, msg)
}

func TestGenerate_FailureIsLogged(t *testing.T) {
	refused := httptest.NewServer(http.NotFoundHandler())
	refusedURL := refused.URL
	refused.Close()
	malformed, _ := newServer(t, http.StatusOK, `{"choices": [`)

	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{"connection refused", refusedURL, "send"},
		{"malformed json", malformed.URL, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			g := newGenerator(tt.endpoint, fakeConfig{key: "plainkey123"}, fakeDiff{diff: "d"})
			g.Logger = ui.NewWithWriter(&buf)

			msg, err := g.Generate(context.Background())
			require.NoError(t, err)
			assert.Empty(t, msg)

			out := buf.String()
			assert.Contains(t, out, "commit message generation failed")
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "plainkey123")
		})
	}
}

type stubProvider struct {
	text string
	err  error
}

func (s stubProvider) GenerateCommitMessage(context.Context, string, string) (string, error) {
	return s.text, s.err
}

func TestGenerate_ProviderFactory(t *testing.T) {
	g := newGenerator("https://api.deepseek.com/chat/completions", fakeConfig{key: "sk-test"}, fakeDiff{diff: "d"})
	g.NewProvider = func(cfg openai.Config) ai.Provider {
		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.Equal(t, 200, cfg.MaxTokens)
		return stubProvider{text: "\"refactor: split client\"\n"}
	}

	msg, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refactor: split client", msg)
}
