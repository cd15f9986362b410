package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/santaclaude2025/ccretro/pkg/logger"
	"github.com/santaclaude2025/ccretro/pkg/redactor"
)

// redactionFs is swapped out by tests
var redactionFs = afero.NewOsFs()

var redactionCmd = &cobra.Command{
	Use:   "redaction",
	Short: "Manage sensitive data redaction",
	Long: `Manage redaction of sensitive data (API keys, passwords, secrets) before
transcripts and settings are sent to the model.

Redaction is on by default with built-in patterns. Writing ~/.ccretro/redaction.json
replaces the built-in patterns; setting "disabled": true in it turns redaction off.`,
}

var redactionEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable redaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRedactionDisabled(cmd.OutOrStdout(), false)
	},
}

var redactionDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable redaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRedactionDisabled(cmd.OutOrStdout(), true)
	},
}

var redactionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show redaction status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRedactionStatus(cmd.OutOrStdout())
	},
}

// setRedactionDisabled flips the disabled flag, writing the default
// patterns first when no config file exists
func setRedactionDisabled(out io.Writer, disabled bool) error {
	path, err := redactor.GetConfigPath()
	if err != nil {
		return err
	}

	cfg, found, err := redactor.LoadConfig(redactionFs, path)
	if err != nil {
		logger.Error("Failed to load redaction config: %v", err)
		return fmt.Errorf("failed to load redaction config: %w", err)
	}
	if !found {
		fmt.Fprintln(out, "No redaction config found. Initializing with default patterns...")
	}

	cfg.Disabled = disabled
	if _, err := redactor.New(cfg); err != nil {
		return fmt.Errorf("redaction config is invalid: %w", err)
	}
	if err := redactor.SaveConfig(redactionFs, path, cfg); err != nil {
		logger.Error("Failed to save redaction config: %v", err)
		return err
	}

	if disabled {
		logger.Info("Redaction disabled")
		fmt.Fprintln(out, "✓ Redaction disabled")
		fmt.Fprintln(out, "Transcripts and settings will be sent to the model without redaction.")
		fmt.Fprintln(out, "To re-enable, run: ccretro redaction enable")
	} else {
		logger.Info("Redaction enabled")
		fmt.Fprintln(out, "✓ Redaction enabled")
		fmt.Fprintln(out, "Config file:", path)
	}
	return nil
}

func printRedactionStatus(out io.Writer) error {
	path, err := redactor.GetConfigPath()
	if err != nil {
		return err
	}

	cfg, found, err := redactor.LoadConfig(redactionFs, path)
	if err != nil {
		fmt.Fprintln(out, "Error: Failed to load configuration")
		fmt.Fprintf(out, "  %v\n", err)
		return nil
	}

	fmt.Fprintln(out, "=== Redaction Status ===")
	fmt.Fprintln(out)

	if cfg.Disabled {
		fmt.Fprintln(out, "Status: ✗ Disabled")
	} else {
		fmt.Fprintln(out, "Status: ✓ Enabled")
	}
	if found {
		fmt.Fprintln(out, "Config:", path)
	} else {
		fmt.Fprintln(out, "Config: built-in defaults (no", path+")")
	}

	if cfg.Disabled || len(cfg.Patterns) == 0 {
		return nil
	}

	fmt.Fprintf(out, "Patterns: %d configured\n", len(cfg.Patterns))
	typeCounts := make(map[string]int)
	for _, p := range cfg.Patterns {
		typeCounts[p.Type]++
	}
	types := make([]string, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(out, "  - %s: %d pattern(s)\n", t, typeCounts[t])
	}
	return nil
}

func init() {
	rootCmd.AddCommand(redactionCmd)
	redactionCmd.AddCommand(redactionEnableCmd)
	redactionCmd.AddCommand(redactionDisableCmd)
	redactionCmd.AddCommand(redactionStatusCmd)
}
