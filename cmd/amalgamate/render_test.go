// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/amalgamate/amalgamate/internal/amalgam"
	"github.com/amalgamate/amalgamate/internal/issue"
)

func TestLogDiagnosticRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := newDiagnosticRenderer(newLogger(&buf, false))

	r.Render(amalgam.Diagnostic{
		Severity: amalgam.SeverityInfo,
		Code:     amalgam.CodeFileFound,
		Message:  "found file",
		Path:     "/src/a.h",
	})
	r.Render(amalgam.Diagnostic{
		Severity: amalgam.SeverityWarning,
		Code:     amalgam.CodeIncludeMalformed,
		Message:  "invalid include",
		Path:     "/src/b.h",
		Line:     "#include \"\"\n",
	})

	out := buf.String()
	for _, want := range []string{"INFO", "amalgamate", "found file", "/src/a.h", "WARN", "invalid include", "/src/b.h"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewLogger_VerboseEnablesDebug(t *testing.T) {
	var quiet, loud bytes.Buffer
	newLogger(&quiet, false).Debug("resolving")
	newLogger(&loud, true).Debug("resolving")

	if quiet.Len() != 0 {
		t.Errorf("debug line should be hidden without verbose: %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "resolving") {
		t.Errorf("debug line should be shown in verbose mode: %q", loud.String())
	}
}

func TestClassifyRunError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"missing include", &amalgam.IncludeNotFoundError{Name: "x.h"}, issue.IncludeNotFoundId},
		{"cycle", fmt.Errorf("expanding: %w", &amalgam.CyclicIncludeError{Chain: []string{"a", "a"}}), issue.CyclicIncludeId},
		{"unreadable directory", fmt.Errorf("failed to list directory src: %w", os.ErrPermission), issue.OutputWriteFailedId},
		{"canceled", fmt.Errorf("interrupted: %w", context.Canceled), 0},
		{"io", errors.New("disk full"), issue.OutputWriteFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyRunError(tt.err); got != tt.want {
				t.Errorf("classifyRunError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	ae := issue.NewErrorContext().
		WithOperation("create output file").
		WithResource("/out/Output.txt").
		WithSuggestion("Choose another location with --output").
		Wrap(errors.New("permission denied")).
		BuildError()
	got := formatErrorForDisplay(ae, false)
	if !strings.Contains(got, "failed to create output file: /out/Output.txt") {
		t.Errorf("missing operation/resource: %q", got)
	}
	if !strings.Contains(got, "Choose another location with --output") {
		t.Errorf("missing suggestion: %q", got)
	}
}
