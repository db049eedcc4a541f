// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amalgamate/amalgamate/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the values bound to the root command's flags.
type rootFlags struct {
	directories []string
	includes    []string
	output      string
	banners     bool
	verbose     bool
	configPath  string
}

// NewRootCommand builds the amalgamate command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "amalgamate",
		Short: "Amalgamate a directory of header files into a single file",
		Long: TitleStyle.Render("amalgamate") + SubtitleStyle.Render(" - single-file header amalgamation") + `

amalgamate concatenates every header at the top level of each source
directory into one output file. Quoted includes are inlined recursively,
looked up next to the including file first and then in each -I directory.
A file that declares "#pragma once" is emitted at most once per directory.

` + SubtitleStyle.Render("Examples:") + `
  amalgamate -D include/mylib                  Write Output.txt from one directory
  amalgamate -D src -D extra -I third_party    Two directories plus a search path
  amalgamate -D include -o mylib.hpp           Choose the output file
  amalgamate config show                       Show the effective configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAmalgamate(cmd, app, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/amalgamate/config.cue)")

	f := rootCmd.Flags()
	f.StringArrayVarP(&flags.directories, "directory", "D", nil, "source directory to amalgamate (repeatable)")
	f.StringArrayVarP(&flags.includes, "include", "I", nil, "extra include search directory (repeatable)")
	f.StringVarP(&flags.output, "output", "o", "", "output file (default \"Output.txt\")")
	f.BoolVar(&flags.banners, "banners", false, "wrap every expanded file in comment banners")

	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits with its status.
// This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// fang.WithVersion is required since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		code := exitCodeFor(err)
		if code.IsSuccess() {
			// An ExitError with code 0 still failed the run.
			code = types.ExitFailure
		}
		os.Exit(int(code))
	}
}

// errorHandler leaves already-rendered ExitErrors alone and hands usage
// errors to fang's default styling.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// exitCodeFor returns the process status for an error returned by the command tree.
// Errors that never reached a handler (bad flags, unknown commands) are usage errors;
// an ExitError carrying an out-of-range code is reported as a failure.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code.Validate() != nil {
			return types.ExitFailure
		}
		return exitErr.Code
	}
	return types.ExitUsage
}
