// SPDX-License-Identifier: MPL-2.0

package amalgam

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/amalgamate/amalgamate/internal/testutil"
)

func runDirs(t *testing.T, opts Options, exclude PathSet, dirs ...string) (string, Report, error) {
	t.Helper()
	var out bytes.Buffer
	a := New(&out, opts)
	err := a.Run(context.Background(), dirs, exclude)
	return out.String(), a.Report(), err
}

func TestRun_SuffixFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"a.h":   "X\n",
		"b.txt": "not a header\n",
	})

	got, report, err := runDirs(t, Options{}, nil, dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "#pragma once\nX\n\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
	if report.TopLevelFiles != 1 {
		t.Errorf("TopLevelFiles = %d, want 1", report.TopLevelFiles)
	}
}

func TestRun_CustomSuffixes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"a.h":   "A\n",
		"b.inl": "B\n",
	})

	got, _, err := runDirs(t, Options{HeaderSuffixes: []string{".inl"}}, nil, dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "#pragma once\nB\n\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
}

func TestRun_NoDirectoriesWritesOnlyMarker(t *testing.T) {
	t.Parallel()

	got, report, err := runDirs(t, Options{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != ProcessOnceLine {
		t.Errorf("Run() output = %q, want %q", got, ProcessOnceLine)
	}
	if report.Directories != 0 {
		t.Errorf("Directories = %d, want 0", report.Directories)
	}
}

func TestRun_DedupSetsAreScopedPerDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteTree(t, root, map[string]string{
		"d1/x.h": "#pragma once\nX\n",
		"d2/x.h": "#pragma once\nX\n",
	})

	got, report, err := runDirs(t, Options{}, nil, filepath.Join(root, "d1"), filepath.Join(root, "d2"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "#pragma once\nX\n\nX\n\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
	if report.Directories != 2 {
		t.Errorf("Directories = %d, want 2", report.Directories)
	}
}

func TestRun_SharedHeaderReprocessedPerDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteTree(t, root, map[string]string{
		"common/shared.h": "#pragma once\nSHARED\n",
		"d1/one.h":        "#include \"shared.h\"\n#include \"shared.h\"\nONE\n",
		"d2/two.h":        "#include \"shared.h\"\nTWO\n",
	})

	opts := Options{SearchDirs: []string{filepath.Join(root, "common")}}
	got, _, err := runDirs(t, opts, nil, filepath.Join(root, "d1"), filepath.Join(root, "d2"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "#pragma once\n" +
		"SHARED\n\nONE\n\n" +
		"SHARED\n\nTWO\n\n"
	if got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
}

func TestProcessDirectory_SkipsFilesAlreadyExpanded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"main.h": "#include \"util.h\"\nM\n",
		"util.h": "#pragma once\nU\n",
	})

	got, report, err := runDirs(t, Options{}, nil, dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "#pragma once\nU\n\nM\n\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
	if report.TopLevelFiles != 1 {
		t.Errorf("TopLevelFiles = %d, want 1", report.TopLevelFiles)
	}
}

func TestProcessDirectory_LexicographicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"c.h":   "C\n",
		"a.h":   "A\n",
		"b.hpp": "B\n",
	})

	got, report, err := runDirs(t, Options{}, nil, dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "#pragma once\nA\n\nB\n\nC\n\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}

	var found []string
	for _, d := range report.Diagnostics {
		if d.Code == CodeFileFound {
			found = append(found, filepath.Base(d.Path))
		}
	}
	if want := []string{"a.h", "b.hpp", "c.h"}; !slices.Equal(found, want) {
		t.Errorf("file_found order = %v, want %v", found, want)
	}
}

func TestProcessDirectory_TopLevelOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"top.h":        "TOP\n",
		"nested/low.h": "LOW\n",
	})
	testutil.MustMkdirAll(t, filepath.Join(dir, "dir.h"))

	got, _, err := runDirs(t, Options{}, nil, dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "#pragma once\nTOP\n\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
}

func TestProcessDirectory_ExcludesOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"a.h":      "A\n",
		"Output.h": "stale output\n",
	})

	exclude := NewPathSet(filepath.Join(dir, "Output.h"))
	got, _, err := runDirs(t, Options{}, exclude, dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "#pragma once\nA\n\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
}

func TestProcessDirectory_WritesMarkerOnce(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.MustWriteTree(t, root, map[string]string{
		"d1/a.h": "A\n",
		"d2/b.h": "B\n",
	})

	var out bytes.Buffer
	a := New(&out, Options{})
	for _, d := range []string{"d1", "d2"} {
		if err := a.ProcessDirectory(context.Background(), filepath.Join(root, d), nil); err != nil {
			t.Fatalf("ProcessDirectory(%s) error = %v", d, err)
		}
	}
	if want := "#pragma once\nA\n\nB\n\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_MissingIncludeAborts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"a.h": "#include \"gone.h\"\n",
		"b.h": "B\n",
	})

	got, _, err := runDirs(t, Options{}, nil, dir)
	if !errors.Is(err, ErrIncludeNotFound) {
		t.Fatalf("Run() error = %v, want ErrIncludeNotFound", err)
	}
	if got != ProcessOnceLine {
		t.Errorf("Run() output = %q, want only the leading marker", got)
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, _, err := runDirs(t, Options{}, nil, filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Run() should fail for a missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got: %v", err)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "a.h"), "A\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(&out, Options{}).Run(ctx, []string{dir}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if out.String() != ProcessOnceLine {
		t.Errorf("output = %q, want only the leading marker", out.String())
	}
}

func TestRun_OnDiagnosticStreams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"a.h": "#pragma once\n#include \"\"\n",
	})

	var streamed []DiagnosticCode
	opts := Options{OnDiagnostic: func(d Diagnostic) { streamed = append(streamed, d.Code) }}
	_, report, err := runDirs(t, opts, nil, dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []DiagnosticCode{CodeFileFound, CodePragmaOnce, CodeIncludeMalformed}
	if !slices.Equal(streamed, want) {
		t.Errorf("streamed = %v, want %v", streamed, want)
	}
	if len(report.Diagnostics) != len(want) {
		t.Errorf("report diagnostics = %d, want %d", len(report.Diagnostics), len(want))
	}
}

func TestCheckDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := testutil.MustWriteFile(t, filepath.Join(root, "file.h"), "")
	missing := filepath.Join(root, "missing")

	errs := CheckDirectories([]string{root, file, missing, "  "})
	if len(errs) != 3 {
		t.Fatalf("CheckDirectories() returned %d errors, want 3: %v", len(errs), errs)
	}

	wantPaths := []string{file, missing, "  "}
	for i, err := range errs {
		if !errors.Is(err, ErrInvalidDirectory) {
			t.Errorf("errs[%d] should wrap ErrInvalidDirectory, got: %v", i, err)
		}
		var dirErr *InvalidDirectoryError
		if !errors.As(err, &dirErr) {
			t.Fatalf("errs[%d] should be *InvalidDirectoryError, got: %T", i, err)
		}
		if string(dirErr.Path) != wantPaths[i] {
			t.Errorf("errs[%d].Path = %q, want %q", i, dirErr.Path, wantPaths[i])
		}
	}

	if got, want := errs[1].Error(), "'"+missing+"' is not a valid directory."; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPathSet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := NewPathSet(filepath.Join(root, "b.h"))
	s.Add(filepath.Join(root, "sub", "..", "a.h"))

	if !s.Contains(filepath.Join(root, "a.h")) {
		t.Error("set should contain the cleaned form of an added path")
	}
	if s.Contains(filepath.Join(root, "c.h")) {
		t.Error("set should not contain c.h")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	want := []string{filepath.Join(root, "a.h"), filepath.Join(root, "b.h")}
	if got := s.Sorted(); !slices.Equal(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}

	var nilSet PathSet
	if nilSet.Contains(root) {
		t.Error("nil set should contain nothing")
	}
}

func TestRun_FileSinkInsideSourceDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteTree(t, dir, map[string]string{
		"a.h": "A\n",
	})
	outPath := filepath.Join(dir, "all.h")

	f, err := os.Create(outPath)
	if err != nil {
		t.Fatalf("os.Create() error = %v", err)
	}
	a := New(f, Options{})
	runErr := a.Run(context.Background(), []string{dir}, NewPathSet(outPath))
	testutil.MustClose(t, f)
	if runErr != nil {
		t.Fatalf("Run() error = %v", runErr)
	}

	if got, want := testutil.MustReadFile(t, outPath), "#pragma once\nA\n\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if got := a.Report().TopLevelFiles; got != 1 {
		t.Errorf("TopLevelFiles = %d, want 1", got)
	}
}
