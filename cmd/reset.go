package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.StatsRepo().ResetUserStats(cmd.Context(), userID); err != nil {
			return fmt.Errorf("reset stats: %w", err)
		}
		fmt.Println("Practice statistics reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().String("user", "local", "User ID to reset")
}
