// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/amalgamate/amalgamate/internal/amalgam"
	"github.com/amalgamate/amalgamate/internal/config"
	"github.com/amalgamate/amalgamate/internal/issue"
	"github.com/amalgamate/amalgamate/pkg/types"

	"github.com/spf13/cobra"
)

// runSettings is the effective configuration of one run: config file values
// with command line flags layered on top.
type runSettings struct {
	directories    []string
	searchDirs     []string
	output         string
	headerSuffixes []string
	banners        bool
	stripBOM       bool
	verbose        bool
	stylePath      string
}

// runAmalgamate is the root command handler.
func runAmalgamate(cmd *cobra.Command, app *App, flags *rootFlags) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, app, flags)
	if err != nil {
		return renderServiceError(app.stderr, newServiceError(err, issue.ConfigLoadFailedId, types.ExitUsage), flags.verbose, string(config.ColorSchemeAuto))
	}

	s := resolveSettings(cmd, cfg, flags)
	logger := newLogger(app.stderr, s.verbose)
	logger.Debug("settings", "output", s.output, "search_dirs", s.searchDirs, "suffixes", s.headerSuffixes)

	if dirErrs := amalgam.CheckDirectories(slices.Concat(s.directories, s.searchDirs)); len(dirErrs) > 0 {
		for _, dirErr := range dirErrs {
			fmt.Fprintln(app.stderr, ErrorStyle.Render(dirErr.Error()))
		}
		if s.verbose {
			if rendered, renderErr := issue.Get(issue.InvalidDirectoryId).Render(s.stylePath); renderErr == nil {
				fmt.Fprint(app.stderr, rendered)
			}
		}
		return &ExitError{Code: types.ExitUsage, Err: errors.Join(dirErrs...)}
	}

	report, err := writeAmalgamation(ctx, s, newDiagnosticRenderer(logger))
	if err != nil {
		return renderServiceError(app.stderr, newServiceError(err, classifyRunError(err), types.ExitFailure), s.verbose, s.stylePath)
	}

	summary := fmt.Sprintf("Amalgamated %d file(s) (%d expansion(s)) from %d directory(ies) into %s",
		report.TopLevelFiles, report.Expanded, report.Directories, PathStyle.Render(s.output))
	if n := len(report.Warnings()); n > 0 {
		summary += WarningStyle.Render(fmt.Sprintf(" with %d warning(s)", n))
	}
	fmt.Fprintln(app.stdout, SuccessStyle.Render("✓")+" "+summary)
	return nil
}

// loadConfig loads configuration, honoring the --config flag.
func loadConfig(ctx context.Context, app *App, flags *rootFlags) (*config.Config, error) {
	return app.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
	})
}

// resolveSettings layers explicitly set flags over the loaded configuration.
func resolveSettings(cmd *cobra.Command, cfg *config.Config, flags *rootFlags) runSettings {
	s := runSettings{
		directories:    flags.directories,
		searchDirs:     slices.Concat(flags.includes, cfg.IncludeDirs),
		output:         cfg.Output.String(),
		headerSuffixes: cfg.Suffixes(),
		banners:        cfg.Banners,
		stripBOM:       cfg.StripBOM,
		verbose:        flags.verbose || cfg.UI.Verbose,
		stylePath:      cfg.UI.ColorScheme.String(),
	}
	if cmd.Flags().Changed("output") {
		s.output = flags.output
	}
	if cmd.Flags().Changed("banners") {
		s.banners = flags.banners
	}
	return s
}

// writeAmalgamation creates the output file and runs the amalgamation into it.
// On failure the partially written file is left in place.
func writeAmalgamation(ctx context.Context, s runSettings, renderer DiagnosticRenderer) (amalgam.Report, error) {
	outPath := amalgam.Normalize(s.output)

	f, err := os.Create(outPath)
	if err != nil {
		return amalgam.Report{}, issue.NewErrorContext().
			WithOperation("create output file").
			WithResource(outPath).
			WithSuggestion("Check that the output directory exists and is writable").
			WithSuggestion("Choose another location with --output").
			Wrap(err).
			BuildError()
	}

	w := bufio.NewWriter(f)
	a := amalgam.New(w, amalgam.Options{
		SearchDirs:     s.searchDirs,
		HeaderSuffixes: s.headerSuffixes,
		Banners:        s.banners,
		StripBOM:       s.stripBOM,
		OnDiagnostic:   renderer.Render,
	})

	runErr := a.Run(ctx, s.directories, amalgam.NewPathSet(outPath))
	flushErr := w.Flush()
	closeErr := f.Close()

	if runErr != nil {
		return a.Report(), runErr
	}
	if err := errors.Join(flushErr, closeErr); err != nil {
		return a.Report(), issue.NewErrorContext().
			WithOperation("write output file").
			WithResource(outPath).
			WithSuggestion("Check the free space on the target file system").
			Wrap(err).
			BuildError()
	}
	return a.Report(), nil
}
