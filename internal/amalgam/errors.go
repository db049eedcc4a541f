// SPDX-License-Identifier: MPL-2.0

package amalgam

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amalgamate/amalgamate/pkg/types"
)

var (
	// ErrIncludeNotFound is the sentinel error wrapped by IncludeNotFoundError.
	ErrIncludeNotFound = errors.New("include not found")
	// ErrCyclicInclude is the sentinel error wrapped by CyclicIncludeError.
	ErrCyclicInclude = errors.New("cyclic include")
	// ErrInvalidDirectory is the sentinel error wrapped by InvalidDirectoryError.
	ErrInvalidDirectory = errors.New("invalid directory")
)

type (
	// IncludeNotFoundError is returned when an include name cannot be resolved
	// next to the including file nor in any search directory.
	IncludeNotFoundError struct {
		// Name is the include name as written between the quotes.
		Name string
		// Requester is the file containing the directive.
		Requester string
		// Searched lists every candidate path that was tried, in order.
		Searched []string
	}

	// CyclicIncludeError is returned when a file includes itself, directly or
	// transitively, before declaring "#pragma once".
	CyclicIncludeError struct {
		// Chain is the include path from the outermost file to the repeated one.
		Chain []string
	}

	// InvalidDirectoryError is returned for a source or search directory that
	// does not exist or is not a directory.
	InvalidDirectoryError struct {
		Path types.FilesystemPath
		// Cause is the underlying stat error, or nil if the path is not a directory.
		Cause error
	}
)

// Error implements the error interface for IncludeNotFoundError.
func (e *IncludeNotFoundError) Error() string {
	return fmt.Sprintf("include not found: %q inside file: %s", e.Name, e.Requester)
}

// Unwrap returns ErrIncludeNotFound for errors.Is() compatibility.
func (e *IncludeNotFoundError) Unwrap() error { return ErrIncludeNotFound }

// Error implements the error interface for CyclicIncludeError.
func (e *CyclicIncludeError) Error() string {
	return "cyclic include: " + strings.Join(e.Chain, " -> ")
}

// Unwrap returns ErrCyclicInclude for errors.Is() compatibility.
func (e *CyclicIncludeError) Unwrap() error { return ErrCyclicInclude }

// Error implements the error interface for InvalidDirectoryError.
func (e *InvalidDirectoryError) Error() string {
	return fmt.Sprintf("'%s' is not a valid directory.", e.Path)
}

// Unwrap returns ErrInvalidDirectory for errors.Is() compatibility.
func (e *InvalidDirectoryError) Unwrap() error { return ErrInvalidDirectory }
