// SPDX-License-Identifier: MPL-2.0

package amalgam

import (
	"path/filepath"
	"strings"
)

const (
	bannerWidth  = 118
	bannerPrefix = "//"
)

// banner renders a three-line comment block with title centered between dashes.
func banner(title string) string {
	width := bannerWidth - len(bannerPrefix)
	left := max((width-len(title))/2, 0)
	right := max(width-len(title)-left, 0)

	rule := bannerPrefix + strings.Repeat("-", width) + "\n"
	var sb strings.Builder
	sb.WriteString(rule)
	sb.WriteString(bannerPrefix + strings.Repeat("-", left) + title + strings.Repeat("-", right) + "\n")
	sb.WriteString(rule)
	return sb.String()
}

// label names path relative to the pass root when it lives beneath it, so banners
// do not depend on where the source tree is checked out.
func (p *pass) label(path string) string {
	rel, err := filepath.Rel(Normalize(p.root), path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
