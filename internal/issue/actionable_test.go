// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load configuration"},
			expected: "failed to load configuration",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "create output file",
				Resource:  "Output.txt",
			},
			expected: "failed to create output file: Output.txt",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "create output file",
				Resource:  "Output.txt",
				Cause:     errors.New("permission denied"),
			},
			expected: "failed to create output file: Output.txt: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("no such file")
	err := NewErrorContext().
		WithOperation("load configuration").
		WithResource("amalgamate.cue").
		WithSuggestion("Run 'amalgamate config init'").
		WithSuggestion("Pass --config").
		Wrap(fmt.Errorf("open: %w", root)).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "  • Run 'amalgamate config init'") {
		t.Errorf("Format(false) should list suggestions, got:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Errorf("Format(false) should not include the error chain, got:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "2. no such file") {
		t.Errorf("Format(true) should include the full chain, got:\n%s", verbose)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("disk full")
	err := WrapWithContext(cause, "write output", "Output.txt")
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if err.Resource != "Output.txt" {
		t.Errorf("Resource = %q, want %q", err.Resource, "Output.txt")
	}
}
