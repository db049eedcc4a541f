// SPDX-License-Identifier: MPL-2.0

package amalgam

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// pass carries the state of one directory pass through the recursive expansion:
// the dedup set shared by every file of the pass and the stack of files currently
// being expanded.
type pass struct {
	*Amalgamator
	root   string
	dedup  PathSet
	active []string
	// dangling is set while the output does not end with a line terminator.
	dangling bool
}

func (a *Amalgamator) newPass(root string, dedup PathSet) *pass {
	if dedup == nil {
		dedup = NewPathSet()
	}
	return &pass{Amalgamator: a, root: root, dedup: dedup}
}

// expand streams the file at path (absolute, normalized) to the output, replacing
// include directives with the expansion of their targets, and terminates it with
// one blank line.
func (p *pass) expand(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	p.active = append(p.active, path)
	defer func() { p.active = p.active[:len(p.active)-1] }()
	p.report.Expanded++

	if p.opts.Banners {
		if err := p.write(banner(p.label(path)) + "\n"); err != nil {
			return err
		}
	}

	r := bufio.NewReader(f)
	first := true
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		if line != "" {
			if first && p.opts.StripBOM {
				line = strings.TrimPrefix(line, utf8BOM)
			}
			first = false
			if err := p.processLine(path, line); err != nil {
				return err
			}
		}
		if readErr != nil {
			break
		}
	}

	if p.opts.Banners {
		if p.dangling {
			if err := p.write("\n"); err != nil {
				return err
			}
		}
		if err := p.write(banner("END " + p.label(path))); err != nil {
			return err
		}
	}
	return p.write("\n")
}

func (p *pass) processLine(path, line string) error {
	d := Classify(line)
	switch d.Kind {
	case LineInclude:
		return p.include(path, line, d)
	case LinePragmaOnce:
		p.dedup.Add(path)
		p.notify(Diagnostic{
			Severity: SeverityInfo,
			Code:     CodePragmaOnce,
			Message:  "pragma once",
			Path:     path,
		})
		return nil
	default:
		return p.write(line)
	}
}

func (p *pass) include(requester, line string, d Directive) error {
	if d.IsMalformed() {
		p.notify(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeIncludeMalformed,
			Message:  "invalid include",
			Path:     requester,
			Line:     strings.TrimRight(line, "\r\n"),
		})
		return nil
	}

	target, err := p.resolver.Resolve(d.Name, requester)
	if err != nil {
		return err
	}
	if p.dedup.Contains(target) {
		p.notify(Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeIncludeSkipped,
			Message:  "skipping",
			Path:     target,
			Line:     strings.TrimRight(line, "\r\n"),
		})
		return nil
	}
	if i := slices.Index(p.active, target); i >= 0 {
		chain := append(slices.Clone(p.active[i:]), target)
		return &CyclicIncludeError{Chain: chain}
	}
	return p.expand(target)
}

func (p *pass) write(s string) error {
	if _, err := io.WriteString(p.out, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if s != "" {
		p.dangling = !strings.HasSuffix(s, "\n")
	}
	return nil
}
