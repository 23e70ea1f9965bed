package contract

import (
	"regexp"
	"strings"
)

// minClauseLen is the minimum fragment length (in bytes) to count as a clause.
// Anything at or below this is a header, a stray numeral, or noise.
const minClauseLen = 40

// clauseHeaderRe matches lines that open a new clause: "1.", "A.",
// "Article IV", "Section 12".
var clauseHeaderRe = regexp.MustCompile(`^\s*(\d+\.|[A-Z]\.|Article\s+[IVXLCDM]+|Section\s+\d+)`)

// headerOnlyRe matches fragments that are nothing but a clause number or letter.
var headerOnlyRe = regexp.MustCompile(`^\s*(\d+\.?|[A-Z]\.?)\s*$`)

// SegmentClauses splits text into clause fragments, starting a new fragment at
// each line that looks like a clause header so the header stays with its body.
// Fragments that are empty, at most minClauseLen bytes, or header-only are
// dropped, and exact duplicates are removed preserving first-seen order.
// This is a best-effort heuristic: false splits and merges are accepted.
func SegmentClauses(text string) []string {
	lines := strings.Split(text, "\n")

	var fragments []string
	var current strings.Builder
	for i, line := range lines {
		if i > 0 && clauseHeaderRe.MatchString(line) {
			fragments = append(fragments, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	fragments = append(fragments, current.String())

	seen := make(map[string]bool)
	var clauses []string
	for _, frag := range fragments {
		clause := strings.TrimSpace(frag)
		if clause == "" || len(clause) <= minClauseLen {
			continue
		}
		if headerOnlyRe.MatchString(clause) {
			continue
		}
		if seen[clause] {
			continue
		}
		seen[clause] = true
		clauses = append(clauses, clause)
	}
	return clauses
}
