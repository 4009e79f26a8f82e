package analysis

import (
	"context"
	"encoding/json"
	"sort"

	"token-analysis-backend/internal/docload"
	"token-analysis-backend/internal/extraction"
	"token-analysis-backend/internal/schema"
	"token-analysis-backend/internal/shared/telemetry"
)

// Orchestrator drives the extraction engine across every factor group and
// every declared question, merging the typed results into one aggregate.
type Orchestrator struct {
	Engine *extraction.Engine

	// Summarize produces the extraction summary. Left nil, the placeholder
	// summary is used; it exists so the stub can be overridden without
	// touching the aggregate shape.
	Summarize func(t *schema.TokenAnalysis) *schema.ExtractionSummary
}

// Run extracts everything from the given documents into one TokenAnalysis.
// Per-group and per-question failures leave the corresponding field absent;
// this call has no error return path for partial failures. Zero-document
// input is the caller's responsibility to pre-check.
func (o *Orchestrator) Run(ctx context.Context, documents []docload.Document, identity schema.TokenIdentity) schema.TokenAnalysis {
	result := schema.TokenAnalysis{
		TokenName:            identity.Name,
		TokenSymbol:          identity.Symbol,
		TokenTypeMethodology: identity.TypeMethodology,
	}

	for _, name := range distinctSourceNames(documents) {
		result.AddDocumentSource(name, "Unknown")
	}

	for _, kind := range schema.FactorKinds() {
		telemetry.Info("analysis.factor_group", map[string]any{"factor": kind.Name})
		raw := o.Engine.Extract(ctx, extraction.Spec{
			Label:       kind.Name,
			Instruction: extraction.FactorInstruction(kind.Name),
			Schema:      kind.Schema(),
		}, documents)
		if raw == nil {
			telemetry.Warn("analysis.factor_group_empty", map[string]any{"factor": kind.Name})
			continue
		}
		if err := kind.Attach(&result.StablecoinFactors, raw); err != nil {
			telemetry.Warn("analysis.factor_group_attach_failed", map[string]any{
				"factor": kind.Name,
				"error":  err.Error(),
			})
		}
	}

	for _, q := range schema.UserRightsQuestionList() {
		result.UserRightsQuestions.SetAnswer(q.Key, o.askQuestion(ctx, q, documents))
	}
	for _, q := range schema.RegulatoryCoverQuestionList() {
		result.RegulatoryCoverQuestions.SetAnswer(q.Key, o.askQuestion(ctx, q, documents))
	}

	if o.Summarize != nil {
		result.ExtractionSummary = o.Summarize(&result)
	} else {
		result.ExtractionSummary = placeholderSummary()
	}

	telemetry.Info("analysis.complete", map[string]any{
		"sources": len(result.SourceDocumentsAnalyzed),
	})
	return result
}

// askQuestion runs one single-answer extraction. A nil return means the
// question stays unanswered in its group.
func (o *Orchestrator) askQuestion(ctx context.Context, q schema.Question, documents []docload.Document) *schema.ExtractionAnswer {
	telemetry.Info("analysis.question", map[string]any{"key": q.Key})
	raw := o.Engine.Extract(ctx, extraction.Spec{
		Label:       q.Key,
		Instruction: extraction.QuestionInstruction(q.Prompt),
		Schema:      schema.AnswerJSONSchema(),
	}, documents)
	if raw == nil {
		telemetry.Warn("analysis.question_empty", map[string]any{"key": q.Key})
		return nil
	}
	var ans schema.ExtractionAnswer
	if err := json.Unmarshal(raw, &ans); err != nil {
		telemetry.Warn("analysis.question_decode_failed", map[string]any{
			"key":   q.Key,
			"error": err.Error(),
		})
		return nil
	}
	return &ans
}

// placeholderSummary is the explicit stub summary; real confidence scoring is
// not implemented.
func placeholderSummary() *schema.ExtractionSummary {
	return &schema.ExtractionSummary{
		OverallConfidence: "Medium",
		KeyFindingsOrGaps: "Summary generation not implemented; review individual factor notes.",
	}
}

// distinctSourceNames dedups source names across documents. Sorted so two
// runs over the same set produce identical aggregates.
func distinctSourceNames(documents []docload.Document) []string {
	seen := make(map[string]struct{}, len(documents))
	var names []string
	for _, doc := range documents {
		name := doc.SourceName
		if name == "" {
			name = "Unknown Document"
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
