package medcase

import "strings"

// Difficulty is the requested case complexity tier.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty maps user input to a Difficulty.
// Returns ("", false) for unrecognized input.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyBasic:
		return DifficultyBasic, true
	case DifficultyIntermediate:
		return DifficultyIntermediate, true
	case DifficultyAdvanced:
		return DifficultyAdvanced, true
	}
	return "", false
}

// UserLevel is the learner's training level.
type UserLevel string

const (
	LevelStudent   UserLevel = "student"
	LevelResident  UserLevel = "resident"
	LevelAttending UserLevel = "attending"
)

// ParseLevel maps user input ("student", "resident", "attending" or the
// shorthand "1"/"2"/"3") to a UserLevel. Returns ("", false) for
// unrecognized input.
func ParseLevel(s string) (UserLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "student":
		return LevelStudent, true
	case "2", "resident":
		return LevelResident, true
	case "3", "attending":
		return LevelAttending, true
	}
	return "", false
}

// DefaultDifficulty returns the difficulty tier matching a training level,
// used when a case is requested without an explicit difficulty.
func DefaultDifficulty(level UserLevel) Difficulty {
	switch level {
	case LevelAttending:
		return DifficultyAdvanced
	case LevelResident:
		return DifficultyIntermediate
	default:
		return DifficultyBasic
	}
}

// Demographics describes the synthetic patient.
type Demographics struct {
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Ethnicity string `json:"ethnicity,omitempty"`
}

// Vitals holds the presenting vital signs.
type Vitals struct {
	BloodPressure    string  `json:"bloodPressure"` // "systolic/diastolic"
	HeartRate        float64 `json:"heartRate"`
	RespiratoryRate  float64 `json:"respiratoryRate"`
	Temperature      float64 `json:"temperature"` // °C
	OxygenSaturation float64 `json:"oxygenSaturation"`
	GCS              int     `json:"gcs,omitempty"`
}

// History is the patient's clinical history.
type History struct {
	PresentIllness string   `json:"presentIllness"`
	PastMedical    []string `json:"pastMedical"`
	Medications    []string `json:"medications"`
	Allergies      []string `json:"allergies,omitempty"`
	SocialHistory  string   `json:"socialHistory,omitempty"`
}

// LabResult is a single lab value with its unit and reference range.
type LabResult struct {
	Value     any    `json:"value"` // number or string
	Unit      string `json:"unit,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// Diagnoses holds the expected primary diagnosis and its differentials.
type Diagnoses struct {
	Primary      string   `json:"primary"`
	Differential []string `json:"differential"`
}

// Case is a complete emergency department scenario. A Case is immutable
// once validated and is owned by exactly one active session at a time.
type Case struct {
	ID                 string               `json:"id"`
	Demographics       Demographics         `json:"demographics"`
	Vitals             Vitals               `json:"vitals"`
	ChiefComplaint     string               `json:"chiefComplaint"`
	PresentingSymptoms []string             `json:"presentingSymptoms"`
	History            History              `json:"history"`
	PhysicalExam       []string             `json:"physicalExam"`
	LabResults         map[string]LabResult `json:"labResults,omitempty"`
	Imaging            []string             `json:"imaging,omitempty"`
	ExpectedDiagnoses  Diagnoses            `json:"expectedDiagnoses"`
	TriageLevel        int                  `json:"triageLevel"` // 1 (critical) – 5 (non-urgent)
	EducationalPoints  []string             `json:"educationalPoints"`
	Difficulty         Difficulty           `json:"difficulty"`

	// Fallback is true when the case came from the built-in bank rather
	// than the provider. Not part of the wire format.
	Fallback bool `json:"-"`
}

// Evaluation is the assessed outcome of a submitted diagnostic response.
type Evaluation struct {
	// Feedback is the full educator-style feedback text.
	Feedback string

	// CorrectDiagnosis reports whether the feedback credits the primary
	// diagnosis.
	CorrectDiagnosis bool

	// AppropriateTriage reports whether the feedback credits the triage
	// assessment.
	AppropriateTriage bool

	// Fallback is true when the feedback is the deterministic template
	// rather than generated content.
	Fallback bool
}

// ParseEvaluation derives the credit flags from feedback text by scanning
// for the crediting phrases, case-insensitively.
func ParseEvaluation(feedback string) Evaluation {
	lower := strings.ToLower(feedback)
	return Evaluation{
		Feedback:          feedback,
		CorrectDiagnosis:  strings.Contains(lower, "correct diagnosis"),
		AppropriateTriage: strings.Contains(lower, "appropriate triage"),
	}
}
