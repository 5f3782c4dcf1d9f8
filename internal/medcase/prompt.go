package medcase

import (
	"encoding/json"
	"fmt"
	"strings"
)

const generationSystemPrompt = `You are an emergency medicine educator creating synthetic training cases modeled on MIMIC-IV database patterns.

Rules:
- Generate a single realistic emergency department case at the requested complexity level.
- Use realistic vital signs and lab values; demographics must be fully synthetic.
- Include common ED presentations and their variations; maintain medical accuracy while ensuring patient privacy.
- The expected primary diagnosis must be consistent with the presentation, vitals, and history.
- Include at least two plausible differential diagnoses.
- The triage level must follow the ESI scale: 1 (resuscitation) to 5 (non-urgent).
- Include concrete educational points a learner should take away from the case.`

// buildGenerationMessage constructs the user message for case generation.
func buildGenerationMessage(difficulty Difficulty) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Complexity level: %s\n\n", difficulty)

	switch difficulty {
	case DifficultyBasic:
		b.WriteString("Target a clear presentation of a common condition with typical findings.")
	case DifficultyIntermediate:
		b.WriteString("Target a moderately complex pathology with some ambiguity in the findings.")
	case DifficultyAdvanced:
		b.WriteString("Target a challenging case: a rare condition, an atypical presentation, or confounding comorbidities.")
	}

	return b.String()
}

const evaluationSystemPrompt = `You are an experienced emergency medicine educator evaluating a learner's response to a medical case.

Provide a detailed analysis covering:
1. Diagnostic accuracy — correctness of the primary diagnosis, appropriateness of differentials, recognition of key clinical features.
2. Clinical reasoning — use of history and physical exam findings, interpretation of vital signs.
3. Management plan — appropriateness of the triage level, initial stabilization, diagnostic workup, treatment decisions.
4. Educational feedback — key learning points, areas for improvement, relevant clinical guidelines.

If the learner identified the expected primary diagnosis, state explicitly that they made the "correct diagnosis". If their triage assessment matches the expected level, state explicitly that they chose an "appropriate triage" level. Never use those exact phrases otherwise.

Format the response as clear educational prose appropriate for the learner's level.`

// buildEvaluationMessage constructs the user message for response evaluation.
func buildEvaluationMessage(c *Case, response string, level UserLevel) string {
	caseJSON, _ := json.MarshalIndent(c, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Learner level: %s\n\n", level)
	b.WriteString("Case details:\n")
	b.Write(caseJSON)
	b.WriteString("\n\nLearner's response:\n")
	b.WriteString(response)
	return b.String()
}

const hintsSystemPrompt = `You are an emergency medicine educator. Produce 2-4 short diagnostic hints for the given case. Hints should point the learner at discriminating features (vitals, history, exam findings) without naming the diagnosis.`

// buildHintsMessage constructs the user message for hint generation.
// The expected diagnoses are deliberately withheld from the prompt so a
// verbose model cannot echo them back.
func buildHintsMessage(c *Case) string {
	redacted := *c
	redacted.ExpectedDiagnoses = Diagnoses{}
	redacted.EducationalPoints = nil
	caseJSON, _ := json.MarshalIndent(&redacted, "", "  ")

	var b strings.Builder
	b.WriteString("Case details:\n")
	b.Write(caseJSON)
	return b.String()
}

const educationalSystemPrompt = `You are an emergency medicine educator creating a concise educational summary on a clinical topic.

Cover, briefly: key concepts, pathophysiology, clinical presentation, diagnostic approach, management principles, and one or two clinical pearls. Base the content on current evidence and guidelines, at a depth appropriate for the learner's level.`

// buildEducationalMessage constructs the user message for educational content.
func buildEducationalMessage(topic string, level UserLevel) string {
	return fmt.Sprintf("Topic: %s\nLearner level: %s", topic, level)
}
