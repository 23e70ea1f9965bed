package reason

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// clauseAnalysisSchema constrains the per-clause judgment returned by the
// reasoning service.
func clauseAnalysisSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"explanation": map[string]any{"type": "string", "minLength": 1},
			"risk_level":  map[string]any{"type": "string", "enum": []string{"Low", "Medium", "High"}},
			"risk_reason": map[string]any{"type": "string"},
			"suggestion":  map[string]any{"type": "string"},
			"category":    map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"explanation", "risk_level", "risk_reason", "suggestion", "category"},
	}
}

// summarySchema constrains the document-level summary.
func summarySchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"summary":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"composite_risk_score": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
			"top_risks":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"missing_clauses":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"summary", "composite_risk_score", "top_risks", "missing_clauses"},
	}
}

// translationSchema constrains the language detection/translation result.
func translationSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"language":        map[string]any{"type": "string", "minLength": 1},
			"translated_text": map[string]any{"type": "string"},
		},
		"required": []string{"language", "translated_text"},
	}
}

// ValidateAgainstSchema validates data against the schema map (draft 2020-12).
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
