// Package models defines core data structures for contracts, clause analyses, and reports.
package models

// ContractType is the classified category of a contract document.
type ContractType string

// Known contract types, in classification priority order.
const (
	TypeEmployment  ContractType = "Employment Agreement"
	TypeLease       ContractType = "Lease Agreement"
	TypeVendor      ContractType = "Vendor Contract"
	TypePartnership ContractType = "Partnership Deed"
	TypeService     ContractType = "Service Contract"
	TypeGeneral     ContractType = "General Agreement"
)

// RiskLevel is the qualitative risk rating assigned to a clause.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// EntityBundle groups extracted entity spans by category. Within a bucket the
// spans are deduplicated and unordered; a span never appears in two buckets
// from the same extraction pass.
type EntityBundle struct {
	Parties      []string `json:"Parties"`
	Dates        []string `json:"Dates"`
	Amounts      []string `json:"Amounts"`
	Jurisdiction []string `json:"Jurisdiction"`
}

// ClauseAnalysis is the structured judgment for a single clause.
type ClauseAnalysis struct {
	Explanation string    `json:"explanation"`
	RiskLevel   RiskLevel `json:"risk_level"`
	RiskReason  string    `json:"risk_reason"`
	Suggestion  string    `json:"suggestion"`
	Category    string    `json:"category"`
}

// AnalyzedClause pairs a clause's source text with its analysis.
type AnalyzedClause struct {
	OriginalText string         `json:"original_text"`
	Analysis     ClauseAnalysis `json:"analysis"`
}

// SummaryReport is the document-level summary and composite risk assessment.
type SummaryReport struct {
	Summary            []string `json:"summary"`
	CompositeRiskScore int      `json:"composite_risk_score"`
	TopRisks           []string `json:"top_risks"`
	MissingClauses     []string `json:"missing_clauses"`
}

// Translation is the result of the language detection/translation task.
type Translation struct {
	Language       string `json:"language"`
	TranslatedText string `json:"translated_text"`
}

// AnalysisReport is the terminal artifact of one analysis run. Appended
// immutably to the audit log and returned to the caller by value.
type AnalysisReport struct {
	Timestamp        string           `json:"timestamp"`
	Filename         string           `json:"filename"`
	OriginalFilename string           `json:"original_filename,omitempty"`
	Language         string           `json:"language,omitempty"`
	ContractType     ContractType     `json:"contract_type"`
	Entities         EntityBundle     `json:"entities"`
	Summary          SummaryReport    `json:"summary"`
	ClauseAnalysis   []AnalyzedClause `json:"clause_analysis"`
}
