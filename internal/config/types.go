// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultOutput is the output file written when none is configured.
	DefaultOutput OutputPath = "Output.txt"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidHeaderSuffix is returned when a HeaderSuffix is not of the form ".ext".
	ErrInvalidHeaderSuffix = errors.New("invalid header suffix")
	// ErrInvalidOutputPath is returned when an OutputPath is empty or whitespace-only.
	ErrInvalidOutputPath = errors.New("invalid output path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// HeaderSuffix is a file name suffix such as ".h" or ".hpp".
	HeaderSuffix string

	// InvalidHeaderSuffixError is returned when a HeaderSuffix does not start with
	// a dot or contains a path separator.
	InvalidHeaderSuffixError struct {
		Value HeaderSuffix
	}

	// OutputPath is the path of the amalgamated output file.
	OutputPath string

	// InvalidOutputPathError is returned when an OutputPath is blank.
	InvalidOutputPathError struct {
		Value OutputPath
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Output is the file the amalgamation is written to.
		Output OutputPath `json:"output" mapstructure:"output" toml:"output"`
		// HeaderSuffixes selects which top-level files of a source directory are expanded.
		HeaderSuffixes []HeaderSuffix `json:"header_suffixes" mapstructure:"header_suffixes" toml:"header_suffixes"`
		// IncludeDirs are extra search directories appended after -I directories.
		IncludeDirs []string `json:"include_dirs" mapstructure:"include_dirs" toml:"include_dirs"`
		// Banners wraps every expanded file in comment banners.
		Banners bool `json:"banners" mapstructure:"banners" toml:"banners"`
		// StripBOM removes a UTF-8 byte order mark from each file's first line.
		StripBOM bool `json:"strip_bom" mapstructure:"strip_bom" toml:"strip_bom"`
		// UI configures console output.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// UIConfig configures console output.
	UIConfig struct {
		// ColorScheme selects the style used to render help pages.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables debug diagnostics and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output:         DefaultOutput,
		HeaderSuffixes: []HeaderSuffix{".h", ".hpp"},
		IncludeDirs:    []string{},
		Banners:        false,
		StripBOM:       true,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// Suffixes returns the header suffixes as plain strings.
func (c *Config) Suffixes() []string {
	out := make([]string, len(c.HeaderSuffixes))
	for i, s := range c.HeaderSuffixes {
		out[i] = string(s)
	}
	return out
}

// IsValid returns whether the Config has valid fields, collecting every
// field-level error into a single InvalidConfigError.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, s := range c.HeaderSuffixes {
		if valid, fieldErrs := s.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the OutputPath.
func (p OutputPath) String() string { return string(p) }

// IsValid returns whether the OutputPath is non-blank.
func (p OutputPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputPathError.
func (e *InvalidOutputPathError) Error() string {
	return fmt.Sprintf("invalid output path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidOutputPath for errors.Is() compatibility.
func (e *InvalidOutputPathError) Unwrap() error { return ErrInvalidOutputPath }

// String returns the string representation of the HeaderSuffix.
func (s HeaderSuffix) String() string { return string(s) }

// IsValid returns whether the suffix looks like ".ext".
func (s HeaderSuffix) IsValid() (bool, []error) {
	str := string(s)
	if len(str) < 2 || str[0] != '.' || strings.ContainsAny(str, `/\`) || strings.TrimSpace(str) != str {
		return false, []error{&InvalidHeaderSuffixError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHeaderSuffixError.
func (e *InvalidHeaderSuffixError) Error() string {
	return fmt.Sprintf("invalid header suffix %q (expected a form like \".h\")", e.Value)
}

// Unwrap returns ErrInvalidHeaderSuffix for errors.Is() compatibility.
func (e *InvalidHeaderSuffixError) Unwrap() error { return ErrInvalidHeaderSuffix }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}
