package cmd

import (
	"fmt"

	"github.com/IgorHWebDev/healthcare-sim/internal/session"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		us, err := st.StatsRepo().GetUserStats(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		if us == nil {
			fmt.Println("No practice history yet. Run `medsim play` to start a case.")
			return nil
		}

		s := session.Stats{
			TotalCases:       us.TotalCases,
			CorrectDiagnoses: us.CorrectDiagnoses,
			CorrectTriages:   us.CorrectTriages,
		}
		fmt.Printf("Level:             %s\n", us.Level)
		fmt.Printf("Total cases:       %d\n", s.TotalCases)
		fmt.Printf("Correct diagnoses: %d\n", s.CorrectDiagnoses)
		fmt.Printf("Correct triages:   %d\n", s.CorrectTriages)
		fmt.Printf("Average score:     %.0f%%\n", s.AverageScore())
		return nil
	},
}

func init() {
	statsCmd.Flags().String("user", "local", "User ID to show stats for")
}
