package medcase

import "fmt"

// Validator checks a generated case for schema and clinical-plausibility
// violations. Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, used in error
	// messages and logging, e.g. "required-fields", "vitals-range".
	Name() string

	// Validate checks the case and returns nil if it passes, or a
	// ValidationError describing the first violated rule.
	Validate(c *Case) *ValidationError
}

// ValidationError describes why a generated case was rejected. Validation
// failures are content problems: the scheduler never retries them, and the
// pipeline substitutes a fallback case instead.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the standard chain, in evaluation order:
// field presence, numeric ranges, then enums.
func DefaultValidators() []Validator {
	return []Validator{
		&RequiredFieldsValidator{},
		&RangeValidator{},
		&EnumValidator{},
	}
}

// Validate runs the chain in order; the first failure short-circuits.
// A case that passes is complete and safe to hand to a session.
func Validate(c *Case, validators []Validator) *ValidationError {
	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// RequiredFieldsValidator checks that all required fields and list fields
// are present and non-empty.
type RequiredFieldsValidator struct{}

func (v *RequiredFieldsValidator) Name() string { return "required-fields" }

func (v *RequiredFieldsValidator) Validate(c *Case) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	if c.ChiefComplaint == "" {
		return fail("chiefComplaint is empty")
	}
	if c.Demographics.Gender == "" {
		return fail("demographics.gender is empty")
	}
	if c.Vitals.BloodPressure == "" {
		return fail("vitals.bloodPressure is empty")
	}
	if c.History.PresentIllness == "" {
		return fail("history.presentIllness is empty")
	}
	if c.ExpectedDiagnoses.Primary == "" {
		return fail("expectedDiagnoses.primary is empty")
	}

	lists := []struct {
		name  string
		items []string
	}{
		{"presentingSymptoms", c.PresentingSymptoms},
		{"physicalExam", c.PhysicalExam},
		{"history.pastMedical", c.History.PastMedical},
		{"history.medications", c.History.Medications},
		{"expectedDiagnoses.differential", c.ExpectedDiagnoses.Differential},
		{"educationalPoints", c.EducationalPoints},
	}
	for _, l := range lists {
		if len(l.items) == 0 {
			return fail(l.name + " is empty")
		}
	}

	return nil
}

// RangeValidator checks numeric fields against physiologic bounds.
type RangeValidator struct{}

func (v *RangeValidator) Name() string { return "vitals-range" }

func (v *RangeValidator) Validate(c *Case) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if c.TriageLevel < 1 || c.TriageLevel > 5 {
		return fail("triageLevel %d outside [1,5]", c.TriageLevel)
	}
	if c.Demographics.Age <= 0 || c.Demographics.Age > 120 {
		return fail("age %d outside (0,120]", c.Demographics.Age)
	}
	if c.Vitals.HeartRate <= 0 || c.Vitals.HeartRate > 300 {
		return fail("heartRate %.0f outside (0,300]", c.Vitals.HeartRate)
	}
	if c.Vitals.RespiratoryRate <= 0 || c.Vitals.RespiratoryRate > 80 {
		return fail("respiratoryRate %.0f outside (0,80]", c.Vitals.RespiratoryRate)
	}
	if c.Vitals.Temperature < 25 || c.Vitals.Temperature > 45 {
		return fail("temperature %.1f outside [25,45]", c.Vitals.Temperature)
	}
	if c.Vitals.OxygenSaturation <= 0 || c.Vitals.OxygenSaturation > 100 {
		return fail("oxygenSaturation %.0f outside (0,100]", c.Vitals.OxygenSaturation)
	}

	return nil
}

// EnumValidator checks enumerated fields.
type EnumValidator struct{}

func (v *EnumValidator) Name() string { return "enum" }

func (v *EnumValidator) Validate(c *Case) *ValidationError {
	switch c.Difficulty {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return nil
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("difficulty %q is not one of basic, intermediate, advanced", c.Difficulty),
	}
}
