// Package analyzer sends the composed prompt to a model and turns whatever
// comes back into an AnalysisResult.
package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/santaclaude2025/ccretro/pkg/config"
	"github.com/santaclaude2025/ccretro/pkg/logger"
	"github.com/santaclaude2025/ccretro/pkg/recovery"
	"github.com/santaclaude2025/ccretro/pkg/types"
	"github.com/santaclaude2025/ccretro/pkg/utils"
)

// Invoker is the text-in, text-out model boundary
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// ErrTimeout is returned when the model call exceeds its deadline
var ErrTimeout = errors.New("model call timed out")

// Outcome is the result of one analysis attempt
type Outcome struct {
	Result   *types.AnalysisResult
	Raw      string // full model output, empty on dry run or failure
	Duration time.Duration
}

// Analyze runs one model call and recovers its result. It never fails:
// a dry run returns the dry-run sentinel without calling inv, and invoker
// errors become error-tagged results. There are no retries.
func Analyze(ctx context.Context, inv Invoker, prompt string, dryRun bool) Outcome {
	if dryRun {
		logger.Info("Dry run: skipping model call (prompt %d chars)", len(prompt))
		return Outcome{Result: types.NewDryRunResult()}
	}

	start := time.Now()
	raw, err := inv.Invoke(ctx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		kind, diag := classify(err)
		logger.Error("Model call failed after %s (%s): %v", elapsed.Round(time.Millisecond), kind, err)
		return Outcome{
			Result:   types.NewErrorResult(kind, utils.TruncateRunes(diag, config.MaxDiagnosticExcerpt)),
			Duration: elapsed,
		}
	}

	logger.Info("Model responded in %s (%d chars)", elapsed.Round(time.Millisecond), len(raw))

	result := recovery.Recover(raw)
	if result.ErrorKind() == types.ErrorParseFailed {
		logger.Warn("Could not parse model response as JSON")
	}

	return Outcome{Result: result, Raw: raw, Duration: elapsed}
}

// classify maps an invoker error to an error kind and diagnostic text
func classify(err error) (kind, diagnostic string) {
	var exitErr *ExitError
	var apiErr *APIError

	switch {
	case errors.Is(err, ErrTimeout):
		return types.ErrorTimeout, err.Error()
	case errors.As(err, &exitErr):
		if exitErr.Stderr != "" {
			return types.ErrorCLI, exitErr.Stderr
		}
		return types.ErrorCLI, exitErr.Error()
	case errors.As(err, &apiErr):
		return types.ErrorAPI, apiErr.Error()
	default:
		return types.ErrorCLI, err.Error()
	}
}
