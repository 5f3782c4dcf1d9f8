package cmd

import (
	"fmt"
	"os"

	"github.com/IgorHWebDev/healthcare-sim/internal/app"
	"github.com/IgorHWebDev/healthcare-sim/internal/inference"
	"github.com/IgorHWebDev/healthcare-sim/internal/llm"
	"github.com/IgorHWebDev/healthcare-sim/internal/medcase"
	"github.com/IgorHWebDev/healthcare-sim/internal/session"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds the inference stack, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Running with built-in practice cases only.")
		provider = llm.NewMockProvider()
	}

	icfg := inference.ConfigFromEnv()
	sched := inference.NewScheduler(provider, inference.NewCache(icfg.CacheTTL), icfg)
	defer sched.Close()

	pipeline := medcase.NewPipeline(sched, medcase.ConfigFromEnv())
	sessions := session.NewManager(pipeline, st.StatsRepo())

	return app.Run(sessions, pipeline)
}
