package openai

import (
	"encoding/json"

	"token-analysis-backend/internal/llm"
)

const systemPrompt = "You are a meticulous legal and financial analyst. You extract structured risk and compliance information about crypto tokens strictly from the provided document context. Never invent facts; when information is missing, say what is missing. Return ONLY a JSON object that matches the provided schema."

// buildMessages assembles the chat messages for one completion: the analyst
// system prompt, the instruction plus document context, and the JSON schema
// the output must match.
func buildMessages(input llm.CompleteInput) []chatMessage {
	messages := []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: input.Instruction + "\n\nContext:\n" + input.Context},
	}
	if len(input.Schema) > 0 {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: "JSON Schema:\n" + mustJSON(input.Schema),
		})
	}
	return messages
}

// buildFixMessages asks the model to repair a previous non-JSON response.
func buildFixMessages(input llm.CompleteInput, raw json.RawMessage) []chatMessage {
	messages := []chatMessage{
		{Role: "system", Content: "The previous response was not valid JSON. Re-emit it as a single valid JSON object with no surrounding text."},
		{Role: "user", Content: string(raw)},
	}
	if len(input.Schema) > 0 {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: "JSON Schema:\n" + mustJSON(input.Schema),
		})
	}
	return messages
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
