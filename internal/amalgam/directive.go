// SPDX-License-Identifier: MPL-2.0

package amalgam

import (
	"regexp"
	"strings"
)

const (
	// LineText is any line that is copied to the output verbatim.
	LineText LineKind = iota
	// LineInclude is a quoted include directive.
	LineInclude
	// LinePragmaOnce is a "#pragma once" marker.
	LinePragmaOnce
)

// utf8BOM is stripped from the first line of a file when Options.StripBOM is set.
const utf8BOM = "\xEF\xBB\xBF"

var (
	localIncludePattern = regexp.MustCompile(`^\s*#\s*include\s*"([^"]*)"`)
	pragmaOncePattern   = regexp.MustCompile(`^\s*#\s*pragma\s*once\b`)
)

type (
	// LineKind is the classification of a single source line.
	LineKind int

	// Directive is the result of classifying one line.
	Directive struct {
		Kind LineKind
		// Name is the text between the quotes of an include directive.
		// It is empty for other kinds and for malformed includes.
		Name string
	}
)

// String returns a human-readable name for the line kind.
func (k LineKind) String() string {
	switch k {
	case LineText:
		return "text"
	case LineInclude:
		return "include"
	case LinePragmaOnce:
		return "pragma once"
	default:
		return "unknown"
	}
}

// Classify inspects a line (with or without its terminator) and reports whether it
// is an include directive, a process-once marker, or plain text. An include match
// always takes priority over a pragma match.
func Classify(line string) Directive {
	body := strings.TrimRight(line, "\r\n")
	if m := localIncludePattern.FindStringSubmatch(body); m != nil {
		return Directive{Kind: LineInclude, Name: m[1]}
	}
	if pragmaOncePattern.MatchString(body) {
		return Directive{Kind: LinePragmaOnce}
	}
	return Directive{Kind: LineText}
}

// IsMalformed reports whether an include directive carries no usable name.
func (d Directive) IsMalformed() bool {
	return d.Kind == LineInclude && strings.TrimSpace(d.Name) == ""
}
