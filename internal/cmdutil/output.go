package cmdutil

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/IObundle/versat-ai/internal/batch"
	"github.com/IObundle/versat-ai/internal/core"
	oerrors "github.com/IObundle/versat-ai/internal/errors"
	"github.com/IObundle/versat-ai/internal/output"
)

// PrintBuildError logs a failed build. Composition errors are printed
// with their kind and the context naming the offending declaration.
func PrintBuildError(label string, err error) {
	logger := output.ModuleLogger(label)

	var ce core.Error
	if !errors.As(err, &ce) {
		logger.Error(err.Error())
		return
	}

	keyvals := []interface{}{"kind", ce.Kind()}
	var be *core.BuildError
	if errors.As(err, &be) {
		keyvals = append(keyvals, "stage", be.Stage)
	}
	details := ce.Details()
	for _, k := range slices.Sorted(maps.Keys(details)) {
		keyvals = append(keyvals, k, details[k])
	}
	logger.Error(ce.Error(), keyvals...)
}

// ReportResults prints one status line per build result, and the error of
// each failed one. It returns an error carrying the exit code when any
// build failed, with Printed set.
func ReportResults(results []batch.Result) error {
	var firstErr error
	failed := 0
	for _, r := range results {
		status := output.StatusBuilt
		if r.Err != nil {
			status = output.StatusFailed
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
		}
		output.Info(output.FormatTargetLine(r.Label, "", status),
			"duration", r.Duration.Round(time.Millisecond))
		if r.Err != nil {
			PrintBuildError(r.Label, r.Err)
		}
	}
	if failed == 0 {
		return nil
	}

	output.Error(fmt.Sprintf("%d of %d builds failed", failed, len(results)))
	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(oerrors.FromComposition("", firstErr)),
		Err:     fmt.Errorf("%d of %d builds failed: %w", failed, len(results), firstErr),
		Printed: true,
	}
}

// CompositionExitError turns a single failed assembly into an ExitError
// whose message is the detailed composition report.
func CompositionExitError(label string, err error) error {
	detail := oerrors.FromComposition(label, err)
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(detail), Err: detail}
}

// Styles returns colored styles on a terminal and plain ones otherwise.
func Styles() *output.Styles {
	if output.IsTTY() {
		return output.GetStyles()
	}
	return output.NoColorStyles()
}
