// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// DecodeMap compiles an embedded schema, unifies user data with one of its
// definitions, validates the result and decodes it into a generic map. Errors
// are reported with JSON-path style field locations:
//
//	amalgamate.cue: header_suffixes[1]: invalid value "h" (does not match =~"^\\.")
package cueutil
