package contract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/karar-labs/karar/internal/models"
)

// maxNERInput caps how much text the entity pass reads. Hard truncation, not
// an error; contracts longer than this have their tail ignored.
const maxNERInput = 1_000_000

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

var (
	// Dates: "12/01/2024", "2024-01-12", "12 January 2024", "January 12, 2024", "1st of March 2025".
	dateNumericRe = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`)
	dateWordyRe   = regexp.MustCompile(`\b(?:\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?(?:` + monthNames + `)\s+\d{4}|(?:` + monthNames + `)\s+\d{1,2},?\s+\d{4})\b`)

	// Amounts: currency symbol/code followed by digits, or digits followed by a
	// currency word. Indian notations (Rs., lakh, crore) included.
	amountSymbolRe = regexp.MustCompile(`(?:₹|\$|€|£|Rs\.?\s?|INR\s?|USD\s?|EUR\s?|GBP\s?)\d[\d,]*(?:\.\d+)?`)
	amountWordyRe  = regexp.MustCompile(`\b\d[\d,]*(?:\.\d+)?\s+(?:rupees|dollars|euros|pounds|lakhs?|crores?)\b`)

	// Parties: registered-entity names ("Acme Widgets Pvt. Ltd."), "M/s Name",
	// and honorific person names ("Mr. Ramesh Kumar").
	partyOrgRe    = regexp.MustCompile(`\b(?:[A-Z][A-Za-z&]+\s+){0,4}[A-Z][A-Za-z&]+\s+(?:Pvt\.?\s+Ltd\.?|Private\s+Limited|Ltd\.?|LLP|Inc\.?|Corp\.?|Corporation|Company|Enterprises|Industries|Technologies|Solutions|Associates)\b`)
	partyMsRe     = regexp.MustCompile(`\bM/s\.?\s+(?:[A-Z][A-Za-z&]+\s?)+`)
	partyPersonRe = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Shri|Smt|Dr)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}\b`)
)

// jurisdictionGazetteer lists place names treated as GPE spans. Matching is
// case-insensitive on word boundaries; the canonical form is reported.
var jurisdictionGazetteer = []string{
	"New Delhi", "Delhi", "Mumbai", "Bangalore", "Bengaluru", "Chennai",
	"Kolkata", "Hyderabad", "Pune", "Ahmedabad", "Gurgaon", "Noida",
	"Maharashtra", "Karnataka", "Tamil Nadu", "West Bengal", "Gujarat",
	"India", "Singapore", "London", "New York", "Dubai", "United States",
	"United Kingdom",
}

// ExtractEntities runs the heuristic NER pass over text (truncated to
// maxNERInput) and buckets spans into Parties, Dates, Amounts, and
// Jurisdiction. Buckets are deduplicated and unordered. A span is claimed by
// the first category that matches it, so the same text never appears in two
// buckets of one pass.
func ExtractEntities(text string) models.EntityBundle {
	text = truncateRunes(text, maxNERInput)

	claimed := make(map[string]bool)
	collect := func(spans []string) []string {
		set := make(map[string]bool)
		for _, s := range spans {
			s = strings.TrimSpace(s)
			if s == "" || claimed[s] {
				continue
			}
			set[s] = true
		}
		out := make([]string, 0, len(set))
		for s := range set {
			claimed[s] = true
			out = append(out, s)
		}
		return out
	}

	var dates []string
	dates = append(dates, dateNumericRe.FindAllString(text, -1)...)
	dates = append(dates, dateWordyRe.FindAllString(text, -1)...)

	var amounts []string
	amounts = append(amounts, amountSymbolRe.FindAllString(text, -1)...)
	amounts = append(amounts, amountWordyRe.FindAllString(text, -1)...)

	var jurisdictions []string
	lower := strings.ToLower(text)
	for _, place := range jurisdictionGazetteer {
		if containsWord(lower, strings.ToLower(place)) {
			jurisdictions = append(jurisdictions, place)
		}
	}

	var parties []string
	parties = append(parties, partyOrgRe.FindAllString(text, -1)...)
	parties = append(parties, partyMsRe.FindAllString(text, -1)...)
	parties = append(parties, partyPersonRe.FindAllString(text, -1)...)

	// Claim order is fixed so cross-category duplicates resolve deterministically.
	return models.EntityBundle{
		Dates:        collect(dates),
		Amounts:      collect(amounts),
		Jurisdiction: collect(jurisdictions),
		Parties:      collect(parties),
	}
}

// containsWord reports whether lower contains word bounded by non-letters.
func containsWord(lower, word string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(lower[start-1])
		afterOK := end == len(lower) || !isLetter(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
