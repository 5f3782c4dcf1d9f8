package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"chiefComplaint": map[string]any{"type": "string"},
			"triageLevel":    map[string]any{"type": "integer"},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"basic", "intermediate", "advanced"},
			},
			"presentingSymptoms": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"chiefComplaint", "triageLevel"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["chiefComplaint"].Type != "STRING" {
		t.Fatalf("expected STRING for chiefComplaint, got %s", schema.Properties["chiefComplaint"].Type)
	}
	if schema.Properties["triageLevel"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for triageLevel, got %s", schema.Properties["triageLevel"].Type)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Fatalf("expected 3 difficulty tiers, got %d", len(schema.Properties["difficulty"].Enum))
	}
	if schema.Properties["presentingSymptoms"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for presentingSymptoms, got %s", schema.Properties["presentingSymptoms"].Type)
	}
	if schema.Properties["presentingSymptoms"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for presentingSymptoms items, got %s", schema.Properties["presentingSymptoms"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
