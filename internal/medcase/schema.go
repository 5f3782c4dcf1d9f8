package medcase

import "github.com/IgorHWebDev/healthcare-sim/internal/llm"

// CaseSchema defines the JSON schema for LLM case generation responses.
var CaseSchema = &llm.Schema{
	Name:        "medical-case",
	Description: "A synthetic emergency department case for diagnostic training",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": "Unique case identifier",
			},
			"demographics": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"age":       map[string]any{"type": "integer", "minimum": 0, "maximum": 120},
					"gender":    map[string]any{"type": "string"},
					"ethnicity": map[string]any{"type": "string"},
				},
				"required": []any{"age", "gender"},
			},
			"vitals": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"bloodPressure":    map[string]any{"type": "string", "description": "systolic/diastolic, e.g. 120/80"},
					"heartRate":        map[string]any{"type": "number"},
					"respiratoryRate":  map[string]any{"type": "number"},
					"temperature":      map[string]any{"type": "number", "description": "degrees Celsius"},
					"oxygenSaturation": map[string]any{"type": "number"},
					"gcs":              map[string]any{"type": "integer"},
				},
				"required": []any{"bloodPressure", "heartRate", "respiratoryRate", "temperature", "oxygenSaturation"},
			},
			"chiefComplaint": map[string]any{
				"type":        "string",
				"description": "Presenting complaint in the patient's words",
			},
			"presentingSymptoms": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"history": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"presentIllness": map[string]any{"type": "string"},
					"pastMedical":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"medications":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"allergies":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"socialHistory":  map[string]any{"type": "string"},
				},
				"required": []any{"presentIllness", "pastMedical", "medications"},
			},
			"physicalExam": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"imaging": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"expectedDiagnoses": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"primary":      map[string]any{"type": "string"},
					"differential": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []any{"primary", "differential"},
			},
			"triageLevel": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "ESI triage level, 1 (resuscitation) to 5 (non-urgent)",
			},
			"educationalPoints": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{
			"id", "demographics", "vitals", "chiefComplaint", "presentingSymptoms",
			"history", "physicalExam", "expectedDiagnoses", "triageLevel", "educationalPoints",
		},
	},
}

// HintsSchema defines the JSON schema for diagnostic hint responses.
var HintsSchema = &llm.Schema{
	Name:        "case-hints",
	Description: "Diagnostic hints for an active training case",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hints": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short hints that guide without revealing the diagnosis",
			},
		},
		"required": []any{"hints"},
	},
}
