// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/amalgamate/amalgamate/internal/issue"
	"github.com/amalgamate/amalgamate/pkg/types"
)

// ServiceError is an error that carries rendering information for the CLI
// layer: an optional issue catalog page and the exit code to leave with.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// Code is the process exit code.
	Code types.ExitCode
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, code types.ExitCode) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:     err,
		IssueID: issueID,
		Code:    code,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError prints the error followed by the issue help page, if any,
// and returns the ExitError that carries the exit code out of RunE.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, verbose bool, stylePath string) *ExitError {
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(svcErr.Err, verbose))

	if svcErr.IssueID != 0 {
		if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
			rendered, renderErr := catalogEntry.Render(stylePath)
			if renderErr != nil {
				fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+"failed to render help: "+renderErr.Error())
			} else {
				fmt.Fprint(stderr, rendered)
			}
		}
	}

	return &ExitError{Code: svcErr.Code, Err: svcErr}
}
