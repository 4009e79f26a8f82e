package schema

import (
	"encoding/json"
	"fmt"
)

// RegulatoryFactors covers licensing, oversight, and regulatory clarity.
type RegulatoryFactors struct {
	LicensingAndRegistration                ExtractionAnswer `json:"licensingAndRegistration"`
	RegulatoryOversightLevel                ExtractionAnswer `json:"regulatoryOversightLevel"`
	ComplianceWithSpecificRegulations       ExtractionAnswer `json:"complianceWithSpecificRegulations"`
	ClarityOfRegulatoryTreatmentForStrategy ExtractionAnswer `json:"clarityOfRegulatoryTreatmentForStrategy"`
}

// LegalFactors covers issuer structure, user terms, and collateral interests.
type LegalFactors struct {
	IssuerLegalStructure                      ExtractionAnswer `json:"issuerLegalStructure"`
	UserRightsAndTermsOfService               ExtractionAnswer `json:"userRightsAndTermsOfService"`
	CounterpartyRiskLegalAgreements           ExtractionAnswer `json:"counterpartyRiskLegalAgreements"`
	PerfectionOfSecurityInterestsInCollateral ExtractionAnswer `json:"perfectionOfSecurityInterestsInCollateral"`
}

// OperationalFactors covers reserves, redemption, and custody.
type OperationalFactors struct {
	ReservesManagement              ExtractionAnswer `json:"reservesManagement"`
	RedemptionMechanism             ExtractionAnswer `json:"redemptionMechanism"`
	ThirdPartyCustodiansForReserves ExtractionAnswer `json:"thirdPartyCustodiansForReserves"`
}

// GovernanceFactors covers the governance framework and parameter control.
type GovernanceFactors struct {
	GovernanceFrameworkDescription ExtractionAnswer `json:"governanceFrameworkDescription"`
	RoleOfTokenHolders             ExtractionAnswer `json:"roleOfTokenHolders"`
	SmartContractGovernance        ExtractionAnswer `json:"smartContractGovernance"`
	CollateralManagementGovernance ExtractionAnswer `json:"collateralManagementGovernance"`
	StrategyParameterControl       ExtractionAnswer `json:"strategyParameterControl"`
}

// InsuranceFactors covers insurance on reserves and strategy risks.
type InsuranceFactors struct {
	InsuranceOnReserveAssets          ExtractionAnswer `json:"insuranceOnReserveAssets"`
	InsuranceForStrategySpecificRisks ExtractionAnswer `json:"insuranceForStrategySpecificRisks"`
}

// StablecoinSpecificFactors holds one field per factor group. Each field is
// independently nullable because extraction may fail per-group; a group is
// either fully populated or absent, never partial.
type StablecoinSpecificFactors struct {
	RegulatoryFactors  *RegulatoryFactors  `json:"regulatoryFactors,omitempty"`
	LegalFactors       *LegalFactors       `json:"legalFactors,omitempty"`
	OperationalFactors *OperationalFactors `json:"operationalFactors,omitempty"`
	GovernanceFactors  *GovernanceFactors  `json:"governanceFactors,omitempty"`
	InsuranceFactors   *InsuranceFactors   `json:"insuranceFactors,omitempty"`
}

// FactorKind binds a factor group's name, its JSON schema, and the attach
// function that stores a decoded result on StablecoinSpecificFactors. The
// bindings are enumerated here so a registry/aggregate mismatch is a compile
// error instead of a runtime string lookup.
type FactorKind struct {
	Name   string
	Schema func() map[string]any
	Attach func(dst *StablecoinSpecificFactors, raw json.RawMessage) error
}

// FactorKinds returns the factor group bindings in their fixed processing
// order. The order governs log/progress order only; results merge by field.
func FactorKinds() []FactorKind {
	return []FactorKind{
		{
			Name:   "RegulatoryFactors",
			Schema: func() map[string]any { return factorGroupSchema(regulatoryFactorFields) },
			Attach: func(dst *StablecoinSpecificFactors, raw json.RawMessage) error {
				var v RegulatoryFactors
				if err := json.Unmarshal(raw, &v); err != nil {
					return fmt.Errorf("decode RegulatoryFactors: %w", err)
				}
				dst.RegulatoryFactors = &v
				return nil
			},
		},
		{
			Name:   "LegalFactors",
			Schema: func() map[string]any { return factorGroupSchema(legalFactorFields) },
			Attach: func(dst *StablecoinSpecificFactors, raw json.RawMessage) error {
				var v LegalFactors
				if err := json.Unmarshal(raw, &v); err != nil {
					return fmt.Errorf("decode LegalFactors: %w", err)
				}
				dst.LegalFactors = &v
				return nil
			},
		},
		{
			Name:   "OperationalFactors",
			Schema: func() map[string]any { return factorGroupSchema(operationalFactorFields) },
			Attach: func(dst *StablecoinSpecificFactors, raw json.RawMessage) error {
				var v OperationalFactors
				if err := json.Unmarshal(raw, &v); err != nil {
					return fmt.Errorf("decode OperationalFactors: %w", err)
				}
				dst.OperationalFactors = &v
				return nil
			},
		},
		{
			Name:   "GovernanceFactors",
			Schema: func() map[string]any { return factorGroupSchema(governanceFactorFields) },
			Attach: func(dst *StablecoinSpecificFactors, raw json.RawMessage) error {
				var v GovernanceFactors
				if err := json.Unmarshal(raw, &v); err != nil {
					return fmt.Errorf("decode GovernanceFactors: %w", err)
				}
				dst.GovernanceFactors = &v
				return nil
			},
		},
		{
			Name:   "InsuranceFactors",
			Schema: func() map[string]any { return factorGroupSchema(insuranceFactorFields) },
			Attach: func(dst *StablecoinSpecificFactors, raw json.RawMessage) error {
				var v InsuranceFactors
				if err := json.Unmarshal(raw, &v); err != nil {
					return fmt.Errorf("decode InsuranceFactors: %w", err)
				}
				dst.InsuranceFactors = &v
				return nil
			},
		},
	}
}

var (
	regulatoryFactorFields = []string{
		"licensingAndRegistration",
		"regulatoryOversightLevel",
		"complianceWithSpecificRegulations",
		"clarityOfRegulatoryTreatmentForStrategy",
	}
	legalFactorFields = []string{
		"issuerLegalStructure",
		"userRightsAndTermsOfService",
		"counterpartyRiskLegalAgreements",
		"perfectionOfSecurityInterestsInCollateral",
	}
	operationalFactorFields = []string{
		"reservesManagement",
		"redemptionMechanism",
		"thirdPartyCustodiansForReserves",
	}
	governanceFactorFields = []string{
		"governanceFrameworkDescription",
		"roleOfTokenHolders",
		"smartContractGovernance",
		"collateralManagementGovernance",
		"strategyParameterControl",
	}
	insuranceFactorFields = []string{
		"insuranceOnReserveAssets",
		"insuranceForStrategySpecificRisks",
	}
)

// factorGroupSchema returns the JSON schema for a factor group: an object
// with one required ExtractionAnswer per field.
func factorGroupSchema(fields []string) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = answerProp()
	}
	required := make([]string, len(fields))
	copy(required, fields)
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}
