package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/IgorHWebDev/healthcare-sim/internal/inference"
	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
	"github.com/IgorHWebDev/healthcare-sim/internal/medcase"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated cases for a difficulty (no database)",
	Long: `Generate cases at a specific difficulty and print them with answers revealed.

This is a stateless developer tool — no database, no session state, no events.
Useful for evaluating case quality and tuning prompts.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("difficulty", "basic", "Difficulty tier: basic, intermediate, or advanced")
	previewCmd.Flags().Int("count", 3, "Number of cases to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	difficulty, ok := medcase.ParseDifficulty(diffVal)
	if !ok {
		return fmt.Errorf("invalid difficulty %q: must be basic, intermediate, or advanced", diffVal)
	}

	// Create LLM provider (no EventRepo — logging skipped).
	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	icfg := inference.ConfigFromEnv()
	sched := inference.NewScheduler(provider, inference.NewCache(icfg.CacheTTL), icfg)
	defer sched.Close()

	pipeline := medcase.NewPipeline(sched, medcase.ConfigFromEnv())

	fmt.Printf("Generating %d %s cases...\n\n", count, difficulty)

	for i := 1; i <= count; i++ {
		c := pipeline.GenerateCase(ctx, difficulty)

		fmt.Printf("── Case %d/%d ──\n", i, count)
		if c.Fallback {
			fmt.Println("(served from built-in bank — generation failed)")
		}
		fmt.Printf("%d-year-old %s — %s\n", c.Demographics.Age, c.Demographics.Gender, c.ChiefComplaint)
		fmt.Printf("Symptoms: %s\n", strings.Join(c.PresentingSymptoms, ", "))
		fmt.Printf("Vitals: BP %s, HR %.0f, RR %.0f, T %.1f, SpO2 %.0f%%\n",
			c.Vitals.BloodPressure, c.Vitals.HeartRate, c.Vitals.RespiratoryRate,
			c.Vitals.Temperature, c.Vitals.OxygenSaturation)
		fmt.Printf("Expected diagnosis: %s\n", c.ExpectedDiagnoses.Primary)
		fmt.Printf("Expected triage:    ESI %d\n", c.TriageLevel)
		fmt.Println()
	}

	return nil
}
