// SPDX-License-Identifier: MPL-2.0

package amalgam

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/amalgamate/amalgamate/pkg/types"
)

// ProcessOnceLine is written once at the very start of every output.
const ProcessOnceLine = "#pragma once\n"

// DefaultHeaderSuffixes are the file name suffixes picked up from a source directory
// when Options.HeaderSuffixes is empty.
var DefaultHeaderSuffixes = []string{".h", ".hpp"}

type (
	// Options configures an Amalgamator.
	Options struct {
		// SearchDirs are extra include directories, consulted in order after the
		// directory of the including file.
		SearchDirs []string
		// HeaderSuffixes selects which top-level directory entries are expanded.
		// Defaults to DefaultHeaderSuffixes.
		HeaderSuffixes []string
		// Banners wraps every expanded file in comment banners naming it.
		Banners bool
		// StripBOM removes a UTF-8 byte order mark from each file's first line.
		StripBOM bool
		// OnDiagnostic, if set, is called for each diagnostic as it is produced,
		// in addition to the diagnostic being recorded in the Report.
		OnDiagnostic func(Diagnostic)
	}

	// Amalgamator writes the amalgamation of one or more source directories to a
	// single output sink. It is not safe for concurrent use; one Amalgamator
	// represents one run.
	Amalgamator struct {
		out           io.Writer
		opts          Options
		resolver      *Resolver
		markerWritten bool
		report        Report
	}
)

// New creates an Amalgamator writing to out.
func New(out io.Writer, opts Options) *Amalgamator {
	if len(opts.HeaderSuffixes) == 0 {
		opts.HeaderSuffixes = DefaultHeaderSuffixes
	}
	opts.HeaderSuffixes = slices.Clone(opts.HeaderSuffixes)
	return &Amalgamator{
		out:      out,
		opts:     opts,
		resolver: NewResolver(opts.SearchDirs),
	}
}

// Report returns a summary of everything processed so far.
func (a *Amalgamator) Report() Report {
	r := a.report
	r.Diagnostics = slices.Clone(a.report.Diagnostics)
	return r
}

// Run processes each directory in order, each against its own fresh dedup set,
// all writing into the same sink. Paths in exclude (typically the output file) are
// never expanded as top-level files. With no directories, only the leading
// process-once line is written.
func (a *Amalgamator) Run(ctx context.Context, dirs []string, exclude PathSet) error {
	if err := a.writeMarker(); err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := a.ProcessDirectory(ctx, dir, exclude); err != nil {
			return err
		}
	}
	return nil
}

// ProcessDirectory expands every header file at the top level of dir, in
// lexicographic order, sharing one fresh dedup set across the directory's pass.
// Subdirectories are not descended into.
func (a *Amalgamator) ProcessDirectory(ctx context.Context, dir string, exclude PathSet) error {
	if err := a.writeMarker(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list directory %s: %w", dir, err)
	}
	a.report.Directories++

	p := a.newPass(dir, NewPathSet())
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("amalgamation of %s interrupted: %w", dir, err)
		}

		path := Normalize(filepath.Join(dir, entry.Name()))
		if exclude.Contains(path) || p.dedup.Contains(path) {
			continue
		}
		if !a.isHeader(entry.Name()) || !isRegularFile(path) {
			continue
		}

		a.report.TopLevelFiles++
		a.notify(Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeFileFound,
			Message:  "found file",
			Path:     path,
		})
		if err := p.expand(path); err != nil {
			return err
		}
	}
	return nil
}

// Expand writes the expansion of the file at path, recording process-once files in
// dedup. It is the single-file entry point used by ProcessDirectory.
func (a *Amalgamator) Expand(path string, dedup PathSet) error {
	return a.newPass(filepath.Dir(path), dedup).expand(Normalize(path))
}

func (a *Amalgamator) writeMarker() error {
	if a.markerWritten {
		return nil
	}
	if _, err := io.WriteString(a.out, ProcessOnceLine); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.markerWritten = true
	return nil
}

func (a *Amalgamator) isHeader(name string) bool {
	for _, suffix := range a.opts.HeaderSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func (a *Amalgamator) notify(d Diagnostic) {
	a.report.Diagnostics = append(a.report.Diagnostics, d)
	if a.opts.OnDiagnostic != nil {
		a.opts.OnDiagnostic(d)
	}
}

// isRegularFile follows symbolic links.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CheckDirectories returns one *InvalidDirectoryError for every path that is blank,
// missing, or not a directory. The result is empty when all paths are usable.
func CheckDirectories(paths []string) []error {
	var errs []error
	for _, p := range paths {
		fp := types.FilesystemPath(p)
		if err := fp.Validate(); err != nil {
			errs = append(errs, &InvalidDirectoryError{Path: fp, Cause: err})
			continue
		}
		info, err := os.Stat(p)
		switch {
		case err != nil:
			errs = append(errs, &InvalidDirectoryError{Path: fp, Cause: err})
		case !info.IsDir():
			errs = append(errs, &InvalidDirectoryError{Path: fp})
		}
	}
	return errs
}
