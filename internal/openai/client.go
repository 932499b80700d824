// Package openai talks to OpenAI-compatible chat-completions endpoints
// (DeepSeek, OpenAI, Groq, OpenRouter, Mistral, Ollama).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultMaxTokens = 200
	DefaultTimeout   = 20 * time.Second
)

type Config struct {
	Endpoint  string
	APIKey    string
	Model     string
	MaxTokens int           // DefaultMaxTokens when zero
	Timeout   time.Duration // DefaultTimeout when zero
}

type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type StreamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// ChatRequest is the request body. StreamOptions is always serialized, as null when unset.
type ChatRequest struct {
	Model         string         `json:"model"`
	StreamOptions *StreamOptions `json:"stream_options"`
	MaxTokens     int            `json:"max_tokens"`
	Messages      []Message      `json:"messages"`
	Stream        bool           `json:"stream"`
}

// BuildRequest returns a non-streaming request with the system prompt followed by the diff.
func BuildRequest(model, systemPrompt, diff string, maxTokens int) ChatRequest {
	return ChatRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: diff},
		},
		Stream: false,
	}
}

// Request returns the body this client would send for systemPrompt and diff.
func (c *Client) Request(systemPrompt, diff string) ChatRequest {
	return BuildRequest(c.cfg.Model, systemPrompt, diff, c.cfg.MaxTokens)
}

// URL returns the endpoint with the API key added as the "key" query parameter.
// Some providers read the key from the query string, others from the bearer header; both are sent.
func (c *Client) URL() (string, error) {
	u, err := url.Parse(strings.TrimSpace(c.cfg.Endpoint))
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", c.cfg.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// GenerateCommitMessage implements ai.Provider. The returned text is not cleaned.
func (c *Client) GenerateCommitMessage(ctx context.Context, systemPrompt, diff string) (string, error) {
	payload, err := json.Marshal(c.Request(systemPrompt, diff))
	if err != nil {
		return "", &Error{Op: "encode", Err: err}
	}

	target, err := c.URL()
	if err != nil {
		return "", &Error{Op: "encode", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Op: "encode", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &Error{Op: "send", Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Op: "read", Status: resp.StatusCode, Err: err}
	}

	content, err := ExtractContent(b)
	if err != nil {
		op := "extract"
		if isDecodeError(err) {
			op = "decode"
		}
		return "", &Error{Op: op, Status: resp.StatusCode, Err: err}
	}
	return content, nil
}
