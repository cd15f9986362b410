package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/santaclaude2025/ccretro/pkg/config"
)

var (
	daysFlag   int
	dryRunFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "ccretro",
	Short: "Review your recent Claude Code sessions",
	Long: `ccretro reads your recent Claude Code session transcripts together with your
settings, CLAUDE.md, agents and slash commands, asks a model where your setup
causes friction, and writes a Markdown report to ~/.claude/analysis.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := analyzeOptions{dryRun: dryRunFlag}
		if cmd.Flags().Changed("days") {
			if daysFlag <= 0 {
				return fmt.Errorf("--days must be positive, got %d", daysFlag)
			}
			opts.days = daysFlag
		}
		return runAnalysis(cmd.Context(), opts, defaultRunEnv())
	},
}

// ExecuteContext runs the root command; ctx is cancelled on SIGINT/SIGTERM
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVar(&daysFlag, "days", config.DefaultDaysToAnalyze, "Analyze sessions modified in the last N days")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Build the prompt and report without calling the model")
}
