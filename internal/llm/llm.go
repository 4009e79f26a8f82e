package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Client abstracts LLM providers for schema-constrained text completion.
type Client interface {
	Complete(ctx context.Context, input CompleteInput) (json.RawMessage, error)
}

// CompleteInput captures one completion request. Schema is a JSON-Schema map
// the response must conform to; Label identifies the call in logs.
type CompleteInput struct {
	Instruction string
	Context     string
	Schema      map[string]any
	Label       string
}

// CompletionError covers transport errors and schema-coercion failures from
// the completion capability. The extraction engine is the only component that
// catches it.
type CompletionError struct {
	Label string
	Err   error
}

func (e *CompletionError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("completion failed: %v", e.Err)
	}
	return fmt.Sprintf("completion failed for %s: %v", e.Label, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// NewCompletionError wraps err as a CompletionError for the given label.
func NewCompletionError(label string, err error) *CompletionError {
	return &CompletionError{Label: label, Err: err}
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, input CompleteInput) (json.RawMessage, error) {
	_ = ctx
	return nil, NewCompletionError(input.Label, ErrNotImplemented)
}
