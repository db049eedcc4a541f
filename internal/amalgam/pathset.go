// SPDX-License-Identifier: MPL-2.0

package amalgam

import (
	"maps"
	"path/filepath"
	"slices"
)

// PathSet is a set of absolute, cleaned file-system paths.
//
// It serves both as the per-directory dedup set (files that declared
// "#pragma once") and as the caller-supplied exclusion set (the output file).
type PathSet map[string]struct{}

// NewPathSet creates a set holding the given paths, normalized with Normalize.
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add records path in the set.
func (s PathSet) Add(path string) {
	s[Normalize(path)] = struct{}{}
}

// Contains reports whether path is in the set.
func (s PathSet) Contains(path string) bool {
	_, ok := s[Normalize(path)]
	return ok
}

// Len returns the number of paths in the set.
func (s PathSet) Len() int { return len(s) }

// Sorted returns the set's paths in lexicographic order.
func (s PathSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Normalize returns the absolute, lexically cleaned form of path.
// Symbolic links are not evaluated. If the working directory cannot be
// determined the cleaned path is returned unchanged.
func Normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
