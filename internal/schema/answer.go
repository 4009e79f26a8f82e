package schema

// Reference is a citation pointer into a source document.
type Reference struct {
	Filename string  `json:"filename"`
	Page     *int    `json:"page,omitempty"`
	Line     *int    `json:"line,omitempty"`
	Quote    *string `json:"quote,omitempty"`
}

// ExtractionAnswer is the atomic unit returned for every factor or question.
// Optional fields convey "not found" rather than being required-but-empty.
type ExtractionAnswer struct {
	Answer      string      `json:"answer"`
	Context     *string     `json:"context,omitempty"`
	Quotes      []string    `json:"quotes,omitempty"`
	References  []Reference `json:"references,omitempty"`
	AgentLogic  *string     `json:"agentLogic,omitempty"`
	MissingInfo *string     `json:"missingInfo,omitempty"`
}

// AnswerJSONSchema returns the JSON-Schema (draft 2020-12 subset) for a single
// ExtractionAnswer as a generic map. It is passed to the LLM as a structured
// output constraint and also used locally to validate the response.
func AnswerJSONSchema() map[string]any {
	return answerProp()
}

func answerProp() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"answer":  map[string]any{"type": "string"},
			"context": map[string]any{"type": "string"},
			"quotes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"references": map[string]any{
				"type":  "array",
				"items": referenceProp(),
			},
			"agentLogic":  map[string]any{"type": "string"},
			"missingInfo": map[string]any{"type": "string"},
		},
		"required": []string{"answer"},
	}
}

func referenceProp() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"filename": map[string]any{"type": "string"},
			"page":     map[string]any{"type": "integer"},
			"line":     map[string]any{"type": "integer"},
			"quote":    map[string]any{"type": "string"},
		},
		"required": []string{"filename"},
	}
}
