package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/logger"
	"github.com/santaclaude2025/ccretro/pkg/utils"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Manage ccretro logs",
	Long:  "View or manage ccretro logs",
}

var logsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print log directory path",
	RunE: func(cmd *cobra.Command, args []string) error {
		logDir, err := config.GetLogDir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), logDir)
		return nil
	},
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all log files",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := logFiles(logPattern(""))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "No log files found")
			return nil
		}

		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil {
				logger.Warn("Failed to stat %s: %v", file, err)
				continue
			}
			fmt.Fprintf(out, "%s (%s)\n", filepath.Base(file), utils.FormatSize(info.Size()))
		}
		return nil
	},
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all old log files (keeps current)",
	RunE: func(cmd *cobra.Command, args []string) error {
		// rotated logs only (ccretro-<time>.log[.gz]); the active file stays
		files, err := logFiles(logPattern("-"))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "No old log files to delete")
			return nil
		}

		deletedCount := 0
		for _, file := range files {
			if err := os.Remove(file); err != nil {
				logger.Warn("Failed to delete %s: %v", filepath.Base(file), err)
			} else {
				fmt.Fprintf(out, "Deleted %s\n", filepath.Base(file))
				deletedCount++
			}
		}

		fmt.Fprintf(out, "\nDeleted %d old log file(s)\n", deletedCount)
		return nil
	},
}

// logPattern globs the log file and its lumberjack backups. A "-" infix
// restricts the match to backups.
func logPattern(infix string) string {
	ext := filepath.Ext(config.LogFileName)
	return strings.TrimSuffix(config.LogFileName, ext) + infix + "*" + ext + "*"
}

func logFiles(pattern string) ([]string, error) {
	logDir, err := config.GetLogDir()
	if err != nil {
		return nil, err
	}
	files, err := filepath.Glob(filepath.Join(logDir, pattern))
	if err != nil {
		logger.Error("Failed to list logs: %v", err)
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return files, nil
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsPathCmd)
	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsClearCmd)
}
