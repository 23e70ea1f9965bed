package reason

import (
	"strings"

	"github.com/karar-labs/karar/internal/models"
)

// clauseRule maps trigger keywords in a clause to a fixed simulated analysis.
// Rules are evaluated in slice order; the first keyword hit wins.
type clauseRule struct {
	keywords []string
	analysis models.ClauseAnalysis
}

var clauseRules = []clauseRule{
	{
		keywords: []string{"payment", "fee", "price"},
		analysis: models.ClauseAnalysis{
			Explanation: "[DEMO MODE] This clause outlines the payment obligations, including deadlines and potential interest for late payments.",
			RiskLevel:   models.RiskMedium,
			RiskReason:  "Vague payment timelines can lead to cash flow issues for SMEs.",
			Suggestion:  "Specify 'Payment within 30 days of invoice date' to ensure predictable cash flow.",
			Category:    "Payment Terms",
		},
	},
	{
		keywords: []string{"terminate", "cancellation"},
		analysis: models.ClauseAnalysis{
			Explanation: "[DEMO MODE] This section defines how and when the agreement can be ended by either party.",
			RiskLevel:   models.RiskHigh,
			RiskReason:  "One-sided termination rights can leave an SME vulnerable after making investments.",
			Suggestion:  "Negotiate mutual termination for convenience with a 60-day notice period.",
			Category:    "Termination",
		},
	},
	{
		keywords: []string{"liability", "indemnify"},
		analysis: models.ClauseAnalysis{
			Explanation: "[DEMO MODE] This clause limits or assigns financial responsibility for damages or losses.",
			RiskLevel:   models.RiskHigh,
			RiskReason:  "Unlimited liability clauses are high-risk for SMEs and can lead to business failure.",
			Suggestion:  "Limit total liability to the amount paid under the contract in the last 12 months.",
			Category:    "Liability & Indemnity",
		},
	},
	{
		keywords: []string{"intellectual property", "copyright"},
		analysis: models.ClauseAnalysis{
			Explanation: "[DEMO MODE] Defines ownership of work results and pre-existing assets.",
			RiskLevel:   models.RiskMedium,
			RiskReason:  "Broad IP transfers might strip the SME of its core technology or methodology.",
			Suggestion:  "Ensure the SME retains ownership of its background IP and only licenses it for the project.",
			Category:    "Intellectual Property",
		},
	},
}

// generalProvisions is the fallthrough when no clause rule matches.
var generalProvisions = models.ClauseAnalysis{
	Explanation: "[DEMO MODE] This clause covers general administrative or standard operating procedures of the agreement.",
	RiskLevel:   models.RiskLow,
	RiskReason:  "Seems to be standard boilerplate language with minimal commercial risk.",
	Suggestion:  "Verify that the governing law is set to your local jurisdiction (e.g., Delhi or Mumbai).",
	Category:    "General Provisions",
}

// SimulateClauseAnalysis returns the deterministic offline analysis for a
// clause, selected by case-insensitive keyword sniffing in documented
// priority order: payment, termination, liability, IP, then general.
func SimulateClauseAnalysis(clauseText string) models.ClauseAnalysis {
	lower := strings.ToLower(clauseText)
	for _, rule := range clauseRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.analysis
			}
		}
	}
	return generalProvisions
}

// SimulateSummary returns the fixed offline document summary.
func SimulateSummary() models.SummaryReport {
	return models.SummaryReport{
		Summary: []string{
			"General business obligation to provide services on time.",
			"Standard payment terms (30 days credit).",
			"Mutual confidentiality agreement included.",
			"Termination requires 30 days written notice.",
		},
		CompositeRiskScore: 4,
		TopRisks:           []string{"Vague IP transfer terms", "Missing arbitration city"},
		MissingClauses:     []string{"Force Majeure", "Severability Clause"},
	}
}

// SimulateTranslation returns the fixed offline detection/translation result.
func SimulateTranslation() models.Translation {
	return models.Translation{
		Language:       "Hindi (Simulated)",
		TranslatedText: "This is a simulated translation of your Hindi contract text for demonstration purposes.",
	}
}
