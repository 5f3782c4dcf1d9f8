package bot

import (
	"fmt"
	"strings"

	"github.com/IgorHWebDev/healthcare-sim/internal/medcase"
	"github.com/IgorHWebDev/healthcare-sim/internal/session"
)

const welcomeMessage = `Welcome to MedSim Mentor! 🏥

Practice emergency medicine cases and receive detailed feedback on your clinical decision-making.

Commands:
/practice [difficulty] — start a new case (basic, intermediate, advanced)
/stats — view your performance statistics
/level [level] — set your training level (student, resident, attending)
/hint — get diagnostic hints for the active case
/learn <topic> — short teaching summary on a clinical topic
/cancel — discard the active case
/help — instructions and tips

Ready to begin? Use /practice to start your first case!`

const helpMessage = `MedSim Mentor — Help Guide

Practice flow:
1. /practice to start a new case
2. Review the patient presentation
3. Reply with your diagnosis, triage level (1-5), and management plan
4. Receive feedback and learning points

Difficulty levels:
• basic — clear presentations, common conditions
• intermediate — more complex cases
• advanced — challenging cases, atypical presentations

Without an explicit difficulty, /practice matches your /level.

Tips:
• Consider all vital signs and exam findings
• Review past medical history carefully
• Think about differential diagnoses
• Use /hint if you are stuck`

// caseMessage renders a case presentation. Expected diagnoses, triage,
// and educational points are withheld until evaluation.
func caseMessage(c *medcase.Case) string {
	var b strings.Builder

	b.WriteString("🏥 Emergency Department Case\n\n")
	fmt.Fprintf(&b, "Patient: %d-year-old %s\n\n", c.Demographics.Age, c.Demographics.Gender)
	fmt.Fprintf(&b, "Chief Complaint:\n%s\n\n", c.ChiefComplaint)

	b.WriteString("Vital Signs:\n")
	fmt.Fprintf(&b, "• BP: %s\n", c.Vitals.BloodPressure)
	fmt.Fprintf(&b, "• HR: %.0f\n", c.Vitals.HeartRate)
	fmt.Fprintf(&b, "• RR: %.0f\n", c.Vitals.RespiratoryRate)
	fmt.Fprintf(&b, "• Temp: %.1f°C\n", c.Vitals.Temperature)
	fmt.Fprintf(&b, "• SpO2: %.0f%%\n", c.Vitals.OxygenSaturation)
	if c.Vitals.GCS > 0 {
		fmt.Fprintf(&b, "• GCS: %d\n", c.Vitals.GCS)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "History of Present Illness:\n%s\n\n", c.History.PresentIllness)
	fmt.Fprintf(&b, "Past Medical History:\n%s\n\n", strings.Join(c.History.PastMedical, ", "))
	fmt.Fprintf(&b, "Current Medications:\n%s\n\n", strings.Join(c.History.Medications, ", "))
	fmt.Fprintf(&b, "Physical Examination:\n%s\n", strings.Join(c.PhysicalExam, "\n"))

	if len(c.LabResults) > 0 {
		b.WriteString("\nLab Results:\n")
		for name, r := range c.LabResults {
			fmt.Fprintf(&b, "• %s: %v %s (ref %s)\n", name, r.Value, r.Unit, r.Reference)
		}
	}
	if len(c.Imaging) > 0 {
		fmt.Fprintf(&b, "\nImaging:\n%s\n", strings.Join(c.Imaging, "\n"))
	}

	b.WriteString("\nWhat is your diagnosis, triage level (1-5), and management plan?")
	return b.String()
}

func feedbackMessage(ev medcase.Evaluation, stats session.Stats) string {
	var b strings.Builder

	switch {
	case ev.CorrectDiagnosis && ev.AppropriateTriage:
		b.WriteString("🎉 Excellent work!\n\n")
	case ev.CorrectDiagnosis || ev.AppropriateTriage:
		b.WriteString("👍 Partially correct.\n\n")
	default:
		b.WriteString("❌ Not quite.\n\n")
	}

	b.WriteString(ev.Feedback)
	fmt.Fprintf(&b, "\n\nRunning average: %.0f%% over %d case(s).", stats.AverageScore(), stats.TotalCases)
	b.WriteString("\nUse /practice to try another case.")
	return b.String()
}

func statsMessage(stats session.Stats, level medcase.UserLevel) string {
	var b strings.Builder
	b.WriteString("📊 Your Performance Statistics\n\n")
	fmt.Fprintf(&b, "Training level: %s\n", level)
	fmt.Fprintf(&b, "Total cases: %d\n", stats.TotalCases)
	fmt.Fprintf(&b, "Correct diagnoses: %d\n", stats.CorrectDiagnoses)
	fmt.Fprintf(&b, "Correct triage calls: %d\n", stats.CorrectTriages)
	fmt.Fprintf(&b, "Average score: %.0f%%\n", stats.AverageScore())
	b.WriteString("\nKeep practicing to improve your skills!")
	return b.String()
}

func levelMessage(level medcase.UserLevel) string {
	return fmt.Sprintf(
		"Your training level is %s.\nChange it with /level student, /level resident, or /level attending.",
		level)
}

func hintsMessage(hints []string) string {
	var b strings.Builder
	b.WriteString("💡 Diagnostic Hints:\n")
	for _, h := range hints {
		b.WriteString("• " + h + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
