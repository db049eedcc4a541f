// SPDX-License-Identifier: MPL-2.0

package amalgam

const (
	// SeverityInfo marks expected, steady-state progress notices.
	SeverityInfo Severity = "info"
	// SeverityWarning marks a recoverable problem in the input.
	SeverityWarning Severity = "warning"

	// CodeFileFound is emitted for each top-level header picked up by the driver.
	CodeFileFound DiagnosticCode = "file_found"
	// CodePragmaOnce is emitted when a file is recorded in the dedup set.
	CodePragmaOnce DiagnosticCode = "pragma_once"
	// CodeIncludeSkipped is emitted when an include names an already-emitted file.
	CodeIncludeSkipped DiagnosticCode = "include_skipped"
	// CodeIncludeMalformed is emitted for an include directive with an empty name.
	CodeIncludeMalformed DiagnosticCode = "include_malformed"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic is a structured console notice produced during amalgamation.
	// Diagnostics are returned to the caller rather than printed so the CLI
	// layer owns the rendering policy.
	Diagnostic struct {
		Severity Severity
		Code     DiagnosticCode
		Message  string
		// Path is the file the notice is about.
		Path string
		// Line is the offending source line for include diagnostics (optional).
		Line string
	}

	// Report summarizes a run.
	Report struct {
		Diagnostics []Diagnostic
		// Directories is the number of source directories processed.
		Directories int
		// TopLevelFiles is the number of header files picked up by the driver.
		TopLevelFiles int
		// Expanded is the number of file expansions written, at any depth.
		Expanded int
	}
)

// Warnings returns the warning-level diagnostics of the report.
func (r Report) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Count returns how many diagnostics carry the given code.
func (r Report) Count(code DiagnosticCode) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}
