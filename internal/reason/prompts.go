package reason

import (
	"strings"

	"github.com/karar-labs/karar/internal/models"
	"github.com/karar-labs/karar/pkg/utils"
)

// buildClausePrompt embeds the clause and required output schema into a
// natural-language instruction. The simulated fallback sniffs the
// `Clause Text: "..."` marker, so its shape is part of the contract.
func buildClausePrompt(clauseText string, contractType models.ContractType) string {
	var b strings.Builder
	b.WriteString("You are a legal expert for Indian SMEs. Analyze the following clause from a ")
	b.WriteString(string(contractType))
	b.WriteString(".\n\nClause Text: \"")
	b.WriteString(clauseText)
	b.WriteString("\"\n\nProvide the output in valid JSON format with the following keys:\n")
	b.WriteString(`- "explanation": A plain-language explanation of what this clause means for a business owner.` + "\n")
	b.WriteString(`- "risk_level": "Low", "Medium", or "High".` + "\n")
	b.WriteString(`- "risk_reason": Why is this risky (or not)?` + "\n")
	b.WriteString(`- "suggestion": How can this be renegotiated to be more SME-friendly?` + "\n")
	b.WriteString(`- "category": (e.g., Liability, Termination, Payment, IP, etc.)`)
	return b.String()
}

// buildSummaryPrompt sends only the first maxChars of the document. Lossy
// sampling by policy: long contracts front-load their operative terms and the
// full text would blow the cost/latency budget.
func buildSummaryPrompt(fullText string, contractType models.ContractType, maxChars int) string {
	var b strings.Builder
	b.WriteString("Analyze this ")
	b.WriteString(string(contractType))
	b.WriteString(" and provide a summary for a business owner.\n\nContract Text: ")
	b.WriteString(utils.Truncate(fullText, maxChars))
	b.WriteString("\n\nProvide the output in valid JSON format with the following keys:\n")
	b.WriteString(`- "summary": A brief (3-4 bullet points) summary of the key obligations, as a JSON array of strings.` + "\n")
	b.WriteString(`- "composite_risk_score": An integer from 1-10 (10 being highest risk).` + "\n")
	b.WriteString(`- "top_risks": List of top 3 risky areas identified.` + "\n")
	b.WriteString(`- "missing_clauses": Any standard clauses missing that should be there for Indian SMEs.`)
	return b.String()
}

// buildTranslatePrompt asks for Hindi detection plus a semantic translation of
// the leading sample.
func buildTranslatePrompt(text string, maxChars int) string {
	var b strings.Builder
	b.WriteString("The following text might be in Hindi or a mix of English and Hindi.\n")
	b.WriteString("1. Detect the language.\n")
	b.WriteString("2. Translate it into professional English legal terminology while keeping the semantic meaning intact.\n\n")
	b.WriteString("Text: \"")
	b.WriteString(utils.Truncate(text, maxChars))
	b.WriteString("\"\n\nOutput format: JSON with \"language\" and \"translated_text\".")
	return b.String()
}
