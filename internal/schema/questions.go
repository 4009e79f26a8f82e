package schema

// Question is one (key, prompt) pair from a question group. Prompts are asked
// verbatim, one extraction call per question.
type Question struct {
	Key    string
	Prompt string
}

// UserRightsQuestions holds one answer field per declared user-rights
// question. Every key is always present; a nil value means that question's
// extraction returned nothing.
type UserRightsQuestions struct {
	RedemptionRights       *ExtractionAnswer `json:"redemptionRights"`
	AssetSegregationIssuer *ExtractionAnswer `json:"assetSegregationIssuer"`
	BeneficialOwnership    *ExtractionAnswer `json:"beneficialOwnership"`
}

// SetAnswer stores an answer under the given question key. It reports false
// for a key not declared in the group.
func (q *UserRightsQuestions) SetAnswer(key string, ans *ExtractionAnswer) bool {
	switch key {
	case "redemption_rights":
		q.RedemptionRights = ans
	case "asset_segregation_issuer":
		q.AssetSegregationIssuer = ans
	case "beneficial_ownership":
		q.BeneficialOwnership = ans
	default:
		return false
	}
	return true
}

// RegulatoryCoverQuestions holds one answer field per declared
// regulatory-cover question.
type RegulatoryCoverQuestions struct {
	Licenses                  *ExtractionAnswer `json:"licenses"`
	LicensesRelevant          *ExtractionAnswer `json:"licensesRelevant"`
	LegalJurisdiction         *ExtractionAnswer `json:"legalJurisdiction"`
	AssetSegregationIssuer    *ExtractionAnswer `json:"assetSegregationIssuer"`
	AssetSegregationCustodian *ExtractionAnswer `json:"assetSegregationCustodian"`
}

// SetAnswer stores an answer under the given question key. It reports false
// for a key not declared in the group.
func (q *RegulatoryCoverQuestions) SetAnswer(key string, ans *ExtractionAnswer) bool {
	switch key {
	case "licenses":
		q.Licenses = ans
	case "licenses_relevant":
		q.LicensesRelevant = ans
	case "legal_jurisdiction":
		q.LegalJurisdiction = ans
	case "asset_segregation_issuer":
		q.AssetSegregationIssuer = ans
	case "asset_segregation_custodian":
		q.AssetSegregationCustodian = ans
	default:
		return false
	}
	return true
}

// UserRightsQuestionList returns the ordered user-rights questions.
func UserRightsQuestionList() []Question {
	return []Question{
		{
			Key:    "redemption_rights",
			Prompt: "Based only on the terms of service/legals, does it explicitly state that the issued token can be redeemed in exchange for the underlying token through the issuer? If redemptions are possible, are there any restrictions?",
		},
		{
			Key:    "asset_segregation_issuer",
			Prompt: "Based only on the terms of service/legals or other materials provided, does it explicitly state that the underlying reserve assets are segregated from the operating entity?",
		},
		{
			Key:    "beneficial_ownership",
			Prompt: "Based only on the terms of service/legals, does it explicitly state that the token holders are the beneficial owners of the underlying reserve assets?",
		},
	}
}

// RegulatoryCoverQuestionList returns the ordered regulatory-cover questions.
func RegulatoryCoverQuestionList() []Question {
	return []Question{
		{
			Key:    "licenses",
			Prompt: "What licenses and from what jurisdiction has the issuing entity obtained? Only include licenses related to the entity which issued the token. If other group entities have licenses, mention them but clarify they are not for the issuing entity. If the token is issued by multiple entities, include all. Highlight if licenses are not relevant. Include a short overview of each license and the issuing jurisdiction.",
		},
		{
			Key:    "licenses_relevant",
			Prompt: "Out of the licenses identified above, which if any specifically relate to the issuance of the type of asset it is (e.g. stablecoin, wrapped token)? List and explain.",
		},
		{
			Key:    "legal_jurisdiction",
			Prompt: "What is the legal jurisdiction of the token's issuing entity? If the issuer is DeFi native, note if there is no definitive jurisdiction.",
		},
		{
			Key:    "asset_segregation_issuer",
			Prompt: "Is there asset segregation from the issuing entity and the reserves? If yes, explain and provide sources. Look for keywords like Trust, segregated accounts, etc. Note if NA for smart contract control.",
		},
		{
			Key:    "asset_segregation_custodian",
			Prompt: "Is there asset segregation from the custodian and the reserves? If yes, explain and provide sources. Look for keywords like Trust, segregated accounts, etc. Note if NA for smart contract control.",
		},
	}
}

func init() {
	// Malformed registration is a config error, not a runtime one: verify
	// every declared key is unique and maps onto a group field.
	verifyQuestionList(UserRightsQuestionList(), func(key string) bool {
		var q UserRightsQuestions
		return q.SetAnswer(key, nil)
	})
	verifyQuestionList(RegulatoryCoverQuestionList(), func(key string) bool {
		var q RegulatoryCoverQuestions
		return q.SetAnswer(key, nil)
	})
}

func verifyQuestionList(questions []Question, accepts func(key string) bool) {
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if _, dup := seen[q.Key]; dup {
			panic("schema: duplicate question key " + q.Key)
		}
		seen[q.Key] = struct{}{}
		if !accepts(q.Key) {
			panic("schema: question key " + q.Key + " has no group field")
		}
	}
}
