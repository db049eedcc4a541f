// SPDX-License-Identifier: MPL-2.0

// Package amalgam concatenates header files into a single amalgamated output.
//
// Each top-level header of a source directory is streamed to the output sink with
// every locally-quoted include directive (#include "name") replaced by the expanded
// contents of the file it names. Files that declare "#pragma once" are recorded in a
// per-directory PathSet and are never expanded twice within that directory's pass.
//
// Resolution looks next to the including file first, then in each extra search
// directory in the order supplied. An unresolvable include aborts the run with an
// *IncludeNotFoundError; an include chain that re-enters a file still being expanded
// aborts with a *CyclicIncludeError.
//
// Everything else (malformed directives, skipped duplicates, discovered files) is
// reported as a Diagnostic and does not stop the run.
package amalgam
