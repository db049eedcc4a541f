// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/amalgamate/amalgamate/internal/amalgam"
	"github.com/amalgamate/amalgamate/internal/issue"

	"github.com/charmbracelet/log"
)

// logPrefix prefixes every diagnostic line.
const logPrefix = "amalgamate"

type (
	// DiagnosticRenderer renders amalgamation diagnostics as they are produced.
	DiagnosticRenderer interface {
		Render(d amalgam.Diagnostic)
	}

	logDiagnosticRenderer struct {
		logger *log.Logger
	}
)

// newLogger returns the stderr logger used for diagnostics.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: logPrefix,
		Level:  level,
	})
}

// newDiagnosticRenderer returns a DiagnosticRenderer backed by logger.
func newDiagnosticRenderer(logger *log.Logger) DiagnosticRenderer {
	return &logDiagnosticRenderer{logger: logger}
}

// Render logs one diagnostic. Warnings go out at warn level, progress at info.
func (r *logDiagnosticRenderer) Render(d amalgam.Diagnostic) {
	keyvals := []any{"path", d.Path}
	if line := strings.TrimSpace(d.Line); line != "" {
		keyvals = append(keyvals, "line", line)
	}

	if d.Severity == amalgam.SeverityWarning {
		r.logger.Warn(d.Message, keyvals...)
		return
	}
	r.logger.Info(d.Message, keyvals...)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// classifyRunError maps an amalgamation failure to its issue catalog page.
// Zero means no page applies.
func classifyRunError(err error) issue.Id {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 0
	case errors.Is(err, amalgam.ErrIncludeNotFound):
		return issue.IncludeNotFoundId
	case errors.Is(err, amalgam.ErrCyclicInclude):
		return issue.CyclicIncludeId
	default:
		return issue.OutputWriteFailedId
	}
}
