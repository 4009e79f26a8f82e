package extraction

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"token-analysis-backend/internal/docload"
	"token-analysis-backend/internal/llm"
	"token-analysis-backend/internal/shared/metrics"
	"token-analysis-backend/internal/shared/telemetry"
)

const (
	// maxContextChars is the hard ceiling on the concatenated document text
	// handed to the completion capability. Longer contexts are cut to exactly
	// this many characters from the start.
	maxContextChars = 100000

	docSeparator = "\n\n---\n\n"
)

// Spec describes one extraction call: what to ask, the JSON schema the answer
// must match, and a label for logs.
type Spec struct {
	Label       string
	Instruction string
	Schema      map[string]any
}

// Engine runs schema-constrained extractions over assembled document text.
type Engine struct {
	Client llm.Client
}

// Extract invokes the completion capability for one spec and returns the raw
// schema-valid JSON, or nil. Nil covers both "nothing to extract from" (empty
// context, no LLM call made) and any completion or validation failure; a
// failure for one factor or question never aborts the others.
func (e *Engine) Extract(ctx context.Context, spec Spec, documents []docload.Document) json.RawMessage {
	text := joinDocuments(documents)
	if truncated := truncateRunes(text, maxContextChars); len(truncated) != len(text) {
		telemetry.Warn("extraction.context_truncated", map[string]any{
			"label": spec.Label,
			"chars": utf8.RuneCountInString(text),
			"limit": maxContextChars,
		})
		text = truncated
	}
	if strings.TrimSpace(text) == "" {
		telemetry.Warn("extraction.empty_context", map[string]any{"label": spec.Label})
		return nil
	}

	metrics.IncExtractionCall()
	raw, err := e.Client.Complete(ctx, llm.CompleteInput{
		Instruction: spec.Instruction,
		Context:     text,
		Schema:      spec.Schema,
		Label:       spec.Label,
	})
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Error("extraction.failed", map[string]any{
			"label": spec.Label,
			"error": err.Error(),
		})
		return nil
	}

	if err := validateAgainstSchema(spec.Schema, raw); err != nil {
		metrics.IncExtractionFailed()
		telemetry.Error("extraction.schema_mismatch", map[string]any{
			"label": spec.Label,
			"error": err.Error(),
		})
		return nil
	}

	telemetry.Info("extraction.complete", map[string]any{"label": spec.Label})
	return raw
}

// truncateRunes cuts s to at most limit characters. Counting runes rather
// than bytes keeps multibyte text intact: the cut never lands inside a rune.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	seen := 0
	for i := range s {
		if seen == limit {
			return s[:i]
		}
		seen++
	}
	return s
}

// joinDocuments concatenates document text with a visible separator,
// preserving the given order.
func joinDocuments(documents []docload.Document) string {
	parts := make([]string, 0, len(documents))
	for _, doc := range documents {
		parts = append(parts, doc.Text)
	}
	return strings.Join(parts, docSeparator)
}
