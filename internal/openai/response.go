package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

var (
	ErrInvalidJSON    = errors.New("response is not valid JSON")
	ErrMissingContent = errors.New("response has no choices[0].message.content")
)

// Error reports which step of a chat completion failed.
type Error struct {
	Op     string // encode, send, read, decode, extract
	Status int    // HTTP status; 0 when no response arrived
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("chat completion %s failed (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("chat completion %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExtractContent returns choices[0].message.content from a chat-completions body.
// String content is unescaped; any other JSON value is returned as its raw JSON text.
// A missing or null content is ErrMissingContent, annotated with the provider's
// error message when the body carries one.
func ExtractContent(body []byte) (string, error) {
	if !json.Valid(body) {
		return "", fmt.Errorf("%w: %s", ErrInvalidJSON, snippet(body))
	}

	value, typ, _, err := jsonparser.Get(body, "choices", "[0]", "message", "content")
	if err != nil || typ == jsonparser.NotExist || typ == jsonparser.Null {
		if msg := apiErrorMessage(body); msg != "" {
			return "", fmt.Errorf("%w: %s", ErrMissingContent, msg)
		}
		return "", ErrMissingContent
	}

	if typ == jsonparser.String {
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return s, nil
	}
	return string(value), nil
}

// apiErrorMessage reads {"error":{"message":...}} or {"error":"..."}.
func apiErrorMessage(body []byte) string {
	if msg, err := jsonparser.GetString(body, "error", "message"); err == nil {
		return msg
	}
	if msg, err := jsonparser.GetString(body, "error"); err == nil {
		return msg
	}
	return ""
}

func isDecodeError(err error) bool {
	return errors.Is(err, ErrInvalidJSON)
}

func snippet(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
