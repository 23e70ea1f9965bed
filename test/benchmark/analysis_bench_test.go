package benchmark

import (
	"fmt"
	"strings"
	"testing"

	"github.com/karar-labs/karar/internal/contract"
	"github.com/karar-labs/karar/internal/reason"
)

func buildContractText(clauses int) string {
	var b strings.Builder
	b.WriteString("MASTER SERVICE AGREEMENT\n\nBetween Acme Technologies Pvt Ltd and Bharat Logistics Ltd.\n\n")
	for i := 1; i <= clauses; i++ {
		fmt.Fprintf(&b, "%d. The parties agree on obligation number %d, with payment of Rs. 1,00,000 due on 01/0%d/2026 in Mumbai.\n", i, i, i%9+1)
	}
	return b.String()
}

func BenchmarkSegmentClauses(b *testing.B) {
	text := buildContractText(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = contract.SegmentClauses(text)
	}
}

func BenchmarkClassifyType(b *testing.B) {
	text := buildContractText(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = contract.ClassifyType(text)
	}
}

func BenchmarkExtractEntities(b *testing.B) {
	text := buildContractText(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = contract.ExtractEntities(text)
	}
}

func BenchmarkSimulateClauseAnalysis(b *testing.B) {
	clause := "7. Termination: Either party may terminate this agreement with sixty days written notice."
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = reason.SimulateClauseAnalysis(clause)
	}
}
