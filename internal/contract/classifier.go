// Package contract provides heuristic text analysis for contract documents:
// type classification, clause segmentation, and entity extraction.
package contract

import (
	"strings"

	"github.com/karar-labs/karar/internal/models"
)

// typeRule maps trigger keywords to a contract type. Rules are evaluated in
// slice order and the first match wins; the ordering is the tie-break policy
// and must stay stable for reproducible classification.
type typeRule struct {
	keywords []string
	result   models.ContractType
}

var typeRules = []typeRule{
	{[]string{"employment", "employee"}, models.TypeEmployment},
	{[]string{"lease", "tenant"}, models.TypeLease},
	{[]string{"vendor", "supplier"}, models.TypeVendor},
	{[]string{"partnership"}, models.TypePartnership},
	{[]string{"service", "master service"}, models.TypeService},
}

// ClassifyType classifies a contract by case-insensitive keyword match.
// Falls back to General Agreement when no rule matches.
func ClassifyType(text string) models.ContractType {
	lower := strings.ToLower(text)
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.result
			}
		}
	}
	return models.TypeGeneral
}
