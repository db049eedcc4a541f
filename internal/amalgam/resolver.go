// SPDX-License-Identifier: MPL-2.0

package amalgam

import (
	"os"
	"path/filepath"
	"slices"
)

// Resolver locates the file backing a quoted include directive.
// It performs no caching: every call re-checks the file system.
type Resolver struct {
	searchDirs []string
}

// NewResolver creates a Resolver that falls back to searchDirs, in order, when an
// include is not found next to the including file.
func NewResolver(searchDirs []string) *Resolver {
	return &Resolver{searchDirs: slices.Clone(searchDirs)}
}

// SearchDirs returns the extra search directories in lookup order.
func (r *Resolver) SearchDirs() []string {
	return slices.Clone(r.searchDirs)
}

// Resolve returns the absolute path of the first existing candidate for name:
// the directory of requester first, then each search directory. It returns an
// *IncludeNotFoundError if none exists.
func (r *Resolver) Resolve(name, requester string) (string, error) {
	candidates := r.candidates(name, requester)
	for _, cand := range candidates {
		if fileExists(cand) {
			return Normalize(cand), nil
		}
	}
	return "", &IncludeNotFoundError{Name: name, Requester: requester, Searched: candidates}
}

func (r *Resolver) candidates(name, requester string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	out := make([]string, 0, len(r.searchDirs)+1)
	out = append(out, filepath.Join(filepath.Dir(requester), name))
	for _, dir := range r.searchDirs {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
