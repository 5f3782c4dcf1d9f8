package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func triageNoteSchema() *Schema {
	return &Schema{
		Name:        "triage-note",
		Description: "A triage assessment note",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"complaint":   map[string]any{"type": "string"},
				"triageLevel": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"disposition": map[string]any{"type": "string", "enum": []any{"discharge", "observe", "admit"}},
			},
			"required": []any{"complaint", "triageLevel"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"complaint":"chest pain","triageLevel":2,"disposition":"admit"}`)
	err := validateResponse(triageNoteSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"complaint":"ankle sprain","triageLevel":5}`)
	err := validateResponse(triageNoteSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"complaint":"headache"}`)
	err := validateResponse(triageNoteSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"complaint":"dyspnea","triageLevel":"urgent"}`)
	err := validateResponse(triageNoteSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_OutOfRange(t *testing.T) {
	raw := json.RawMessage(`{"complaint":"syncope","triageLevel":7}`)
	err := validateResponse(triageNoteSchema(), raw)
	if err == nil {
		t.Fatal("expected error for triage level above range")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"complaint":"fever","triageLevel":3,"disposition":"transfer"}`)
	err := validateResponse(triageNoteSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(triageNoteSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-vitals",
		Description: "Vitals within a case",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"vitals": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"bloodPressure": map[string]any{"type": "string"},
					},
					"required": []any{"bloodPressure"},
				},
				"presentingSymptoms": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"vitals", "presentingSymptoms"},
		},
	}

	valid := json.RawMessage(`{"vitals":{"bloodPressure":"120/80"},"presentingSymptoms":["cough","fever"]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"vitals":{"bloodPressure":"120/80"},"presentingSymptoms":[1,2]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}
