package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/santaclaude2025/ccretro/pkg/analyzer"
	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/discovery"
	"github.com/santaclaude2025/ccretro/pkg/logger"
	"github.com/santaclaude2025/ccretro/pkg/prompt"
	"github.com/santaclaude2025/ccretro/pkg/redactor"
	"github.com/santaclaude2025/ccretro/pkg/report"
	"github.com/santaclaude2025/ccretro/pkg/transcript"
	"github.com/santaclaude2025/ccretro/pkg/utils"
)

type analyzeOptions struct {
	days   int // 0 means use the configured window
	dryRun bool
}

// runEnv carries the side-effecting pieces of a run so tests can swap them
type runEnv struct {
	fs         afero.Fs
	out        io.Writer
	now        func() time.Time
	newInvoker func(cfg *config.Config) (analyzer.Invoker, error)

	// termWidth is 0 when out is not a terminal; the summary is then
	// printed as plain Markdown
	termWidth int
}

func defaultRunEnv() *runEnv {
	env := &runEnv{
		fs:         afero.NewOsFs(),
		out:        os.Stdout,
		now:        time.Now,
		newInvoker: newInvoker,
	}
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			env.termWidth = w
		} else {
			env.termWidth = report.DefaultTerminalWidth
		}
	}
	return env
}

// newInvoker picks the model backend named by the configuration
func newInvoker(cfg *config.Config) (analyzer.Invoker, error) {
	switch cfg.Backend {
	case config.BackendAPI:
		return analyzer.NewAPIInvoker(os.Getenv(config.APIKeyEnv), cfg.Model)
	default:
		inv := analyzer.NewCLIInvoker(cfg.ClaudeBinary, cfg.Model)
		return inv, nil
	}
}

// runAnalysis runs the whole pipeline once: select, extract, compose,
// invoke, recover, render, write
func runAnalysis(ctx context.Context, opts analyzeOptions, env *runEnv) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Init()
	defer logger.Close()

	runID := uuid.NewString()
	logger.Get().SetRunID(runID[:8])
	defer logger.Get().SetRunID("")
	logger.Info("Running analysis (dry-run=%v)", opts.dryRun)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		return fmt.Errorf("failed to load config: %w", err)
	}

	days := cfg.DaysToAnalyze
	if opts.days > 0 {
		days = opts.days
	}
	now := env.now()

	projectsDir, err := config.GetProjectsDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "📂 Scanning sessions from the last %d days...\n", days)
	recs, err := discovery.Select(env.fs, projectsDir, discovery.SelectOptions{
		Days:    days,
		Exclude: cfg.ProjectsToExclude,
		Now:     now,
	})
	if err != nil {
		logger.Error("Failed to select sessions: %v", err)
		return fmt.Errorf("failed to select sessions: %w", err)
	}
	if len(recs) == 0 {
		logger.Info("No sessions in window")
		fmt.Fprintln(env.out, "No sessions found to analyze")
		return nil
	}
	fmt.Fprintf(env.out, "   Found %d sessions\n", len(recs))

	red := loadRedactor(env)

	limits := transcript.LimitsFromConfig(cfg)
	limits.Redactor = red
	sessions, gathered := prompt.Gather(env.fs, recs, limits, config.MaxSessionsInPrompt)
	logger.Info("Read %d transcripts: %d with messages, %d empty, %d failed",
		gathered.Read, len(sessions), gathered.Empty, gathered.Failed)
	if len(sessions) == 0 {
		fmt.Fprintln(env.out, "No sessions with messages to analyze")
		return nil
	}

	if opts.dryRun {
		printSessionList(env.out, sessions, now)
	}

	sessionsText, included := prompt.FormatSessions(sessions, prompt.DefaultFormatOptions(red))

	claudeDir, err := config.GetClaudeStateDir()
	if err != nil {
		return err
	}
	snap := config.LoadSnapshot(env.fs, claudeDir)
	for _, s := range snap.Skipped {
		logger.Warn("Skipped config fragment: %s", s)
	}

	promptText := (&prompt.Builder{Redactor: red}).Build(sessionsText, snap)
	if red.Count() > 0 {
		logger.Info("Redacted %d sensitive values", red.Count())
	}

	var inv analyzer.Invoker
	if opts.dryRun {
		fmt.Fprintf(env.out, "🔍 Dry run: prompt is %s, model not called\n", utils.FormatSize(int64(len(promptText))))
	} else {
		inv, err = env.newInvoker(cfg)
		if err != nil {
			logger.Error("Failed to set up %s backend: %v", cfg.Backend, err)
			return fmt.Errorf("failed to set up %s backend: %w", cfg.Backend, err)
		}
		fmt.Fprintf(env.out, "🤖 Analyzing %d sessions with %s (%s prompt)...\n",
			included, cfg.Model, utils.FormatSize(int64(len(promptText))))
	}

	outcome := analyzer.Analyze(ctx, inv, promptText, opts.dryRun)

	md := report.Render(outcome.Result, report.Metadata{
		GeneratedAt:  now,
		SessionCount: included,
		Days:         days,
	})

	paths, err := report.NewWriter(env.fs, cfg.OutputDir).Write(md, outcome.Raw, now)
	if err != nil {
		logger.Error("Failed to write report: %v", err)
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written to %s", paths.Report)

	fmt.Fprintf(env.out, "📄 Report saved: %s\n", paths.Report)
	fmt.Fprintf(env.out, "   Latest: %s\n", paths.Latest)
	if paths.Raw != "" {
		fmt.Fprintf(env.out, "   Raw response: %s\n", paths.Raw)
	}
	fmt.Fprintln(env.out)

	summary := report.SummaryMarkdown("Quick Summary", report.SummaryLines(outcome.Result))
	if env.termWidth > 0 {
		summary = report.RenderTerminal(summary, env.termWidth)
	}
	fmt.Fprint(env.out, summary)

	return nil
}

// loadRedactor falls back to the built-in patterns when the user's
// redaction file is unusable
func loadRedactor(env *runEnv) *redactor.Redactor {
	path, err := redactor.GetConfigPath()
	if err == nil {
		var red *redactor.Redactor
		red, err = redactor.Load(env.fs, path)
		if err == nil {
			return red
		}
	}

	logger.Warn("Failed to load redaction config, using defaults: %v", err)
	fmt.Fprintf(env.out, "⚠️  Redaction config unusable (%v), using default patterns\n", err)
	red, err := redactor.New(redactor.DefaultConfig())
	if err != nil {
		// the built-in patterns are compiled in tests
		logger.Error("Default redaction patterns invalid: %v", err)
		return redactor.Nop()
	}
	return red
}

func printSessionList(out io.Writer, sessions []transcript.Session, now time.Time) {
	fmt.Fprintln(out, "   Sessions to analyze:")
	for _, s := range sessions {
		label := s.Title
		if label == "" {
			label = filepath.Base(s.Record.Path)
		}
		fmt.Fprintf(out, "   - %s  %s  %s  %d msgs  %s\n",
			s.Record.ShortProject(),
			utils.FormatAge(s.Record.ModTime, now),
			utils.FormatSize(s.Record.SizeBytes),
			len(s.Messages),
			utils.TruncateEllipsis(label, 60),
		)
	}
}
