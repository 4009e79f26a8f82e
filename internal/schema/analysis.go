package schema

// TokenIdentity carries the caller-supplied token fields. All optional.
type TokenIdentity struct {
	Name              string
	Symbol            string
	TypeMethodology   string
	AdditionalContext string
}

// DocumentSource identifies one source document used for an analysis.
type DocumentSource struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ExtractionSummary is a high-level summary of the extraction run.
type ExtractionSummary struct {
	OverallConfidence string `json:"overallConfidence"`
	KeyFindingsOrGaps string `json:"keyFindingsOrGaps"`
}

// TokenAnalysis is the aggregate result of one pipeline run. It is built
// incrementally by the orchestrator; every leaf answer is either fully
// populated or absent, never partial.
type TokenAnalysis struct {
	TokenName                string                    `json:"tokenName,omitempty"`
	TokenSymbol              string                    `json:"tokenSymbol,omitempty"`
	TokenTypeMethodology     string                    `json:"tokenTypeMethodology,omitempty"`
	SourceDocumentsAnalyzed  []DocumentSource          `json:"sourceDocumentsAnalyzed,omitempty"`
	ExtractionSummary        *ExtractionSummary        `json:"extractionSummary,omitempty"`
	StablecoinFactors        StablecoinSpecificFactors `json:"stablecoinSpecificFactors"`
	UserRightsQuestions      UserRightsQuestions       `json:"userRightsQuestions"`
	RegulatoryCoverQuestions RegulatoryCoverQuestions  `json:"regulatoryCoverQuestions"`
	GeneralNotesOrConcerns   string                    `json:"generalNotesOrConcerns,omitempty"`
}

// AddDocumentSource appends a source entry to the analyzed-documents list.
func (t *TokenAnalysis) AddDocumentSource(name, docType string) {
	if docType == "" {
		docType = "Unknown"
	}
	t.SourceDocumentsAnalyzed = append(t.SourceDocumentsAnalyzed, DocumentSource{Name: name, Type: docType})
}
