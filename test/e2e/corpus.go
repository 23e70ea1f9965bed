// Package e2e runs the full analysis pipeline over a corpus of contract
// fixtures and checks the assembled reports and the audit trail.
package e2e

import (
	"fmt"
	"strings"

	"github.com/karar-labs/karar/internal/models"
)

// ContractFixture is one contract document with the report fields the offline
// analysis must produce for it.
type ContractFixture struct {
	Name           string
	Ext            string
	Text           string
	WantType       models.ContractType
	WantLanguage   string
	WantClauses    int
	WantCategories []string
}

// BuildCorpus returns the contract fixtures. Each fixture's clause bodies are
// written to clear the minimum clause length, and headings alone are short
// enough to be dropped by segmentation.
func BuildCorpus() []ContractFixture {
	return []ContractFixture{
		{
			Name: "employment", Ext: ".txt",
			Text: strings.Join([]string{
				"EMPLOYMENT AGREEMENT",
				"",
				"1. Compensation: The employee receives a monthly fee of INR 80,000 payable on the first working day.",
				"2. Termination: The company may terminate this agreement with thirty days written notice to the employee.",
				"3. Confidentiality: The employee must keep all business information of the company strictly confidential.",
			}, "\n"),
			WantType:       models.TypeEmployment,
			WantClauses:    3,
			WantCategories: []string{"Payment Terms", "Termination", "General Provisions"},
		},
		{
			Name: "lease", Ext: ".docx",
			Text: strings.Join([]string{
				"LEASE AGREEMENT",
				"",
				"1. Rent: The tenant pays a monthly price of INR 45,000 in advance before the fifth of each month.",
				"2. Liability: The tenant shall indemnify the landlord against damage caused to the premises.",
			}, "\n"),
			WantType:       models.TypeLease,
			WantClauses:    2,
			WantCategories: []string{"Payment Terms", "Liability & Indemnity"},
		},
		{
			Name: "vendor", Ext: ".txt",
			Text: strings.Join([]string{
				"VENDOR CONTRACT",
				"",
				"1. Payment: The supplier invoices monthly and payment is due within thirty days of the invoice date.",
				"2. Termination: Either party may terminate this contract by giving sixty days written notice.",
			}, "\n"),
			WantType:       models.TypeVendor,
			WantClauses:    2,
			WantCategories: []string{"Payment Terms", "Termination"},
		},
		{
			Name: "partnership", Ext: ".txt",
			Text: strings.Join([]string{
				"PARTNERSHIP DEED",
				"",
				"1. Capital: Each partner contributes an equal share of the initial capital of the firm.",
				"2. Intellectual property created by the firm is owned jointly by all partners in equal shares.",
			}, "\n"),
			WantType:       models.TypePartnership,
			WantClauses:    2,
			WantCategories: []string{"General Provisions", "Intellectual Property"},
		},
		{
			Name: "service", Ext: ".txt",
			Text: strings.Join([]string{
				"MASTER SERVICE AGREEMENT",
				"",
				"1. Scope: The provider delivers the agreed work within the timelines stated in each statement of work.",
				"2. Fees: All fees are invoiced monthly and carry interest of two percent per month when overdue.",
			}, "\n"),
			WantType:       models.TypeService,
			WantClauses:    2,
			WantCategories: []string{"General Provisions", "Payment Terms"},
		},
		{
			Name: "general", Ext: ".txt",
			Text: strings.Join([]string{
				"MEMORANDUM OF UNDERSTANDING",
				"",
				"1. The parties shall meet quarterly to review progress against the objectives recorded here.",
			}, "\n"),
			WantType:       models.TypeGeneral,
			WantClauses:    1,
			WantCategories: []string{"General Provisions"},
		},
		{
			Name: "hindi", Ext: ".txt",
			Text: strings.Join([]string{
				"अनुबंध",
				"",
				"1. यह अनुबंध दोनों पक्षों के बीच सेवाओं की आपूर्ति के लिए किया गया है और दोनों पर बाध्यकारी है।",
			}, "\n"),
			WantType:       models.TypeGeneral,
			WantLanguage:   "Hindi (Simulated)",
			WantClauses:    1,
			WantCategories: []string{"General Provisions"},
		},
	}
}

// BuildLongContract returns a contract with n numbered clauses, each long
// enough to survive segmentation and free of analysis trigger keywords.
func BuildLongContract(n int) string {
	var b strings.Builder
	b.WriteString("MEMORANDUM OF UNDERSTANDING\n\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d. The parties record item number %d of the shared obligations agreed during negotiation.\n", i, i)
	}
	return b.String()
}
