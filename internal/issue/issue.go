// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	IncludeNotFoundId Id = iota + 1
	CyclicIncludeId
	InvalidDirectoryId
	ConfigLoadFailedId
	OutputWriteFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is Markdown help text.
	MarkdownMsg string

	// Issue is a catalog entry: a Markdown help page for one kind of failure.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

// render is swapped out in tests.
var render = glamour.Render

var (
	includeNotFoundIssue = &Issue{
		id: IncludeNotFoundId,
		mdMsg: `
# An include could not be resolved!

A quoted include names a file that exists neither next to the including file
nor in any include search directory.

## Search order
1. The directory of the file containing the include
2. Each ` + "`-I`" + ` directory, in the order given

## Things you can try
- Check the include name for typos
- Add the directory holding the header as a search directory:
~~~
$ amalgamate -D src -I third_party/include
~~~
- List search directories in your config file:
~~~cue
include_dirs: ["third_party/include"]
~~~`,
	}

	cyclicIncludeIssue = &Issue{
		id: CyclicIncludeId,
		mdMsg: `
# Cyclic include detected!

A header includes itself, directly or through other headers, before it
declares ` + "`#pragma once`" + `. Expanding it would never terminate.

## Things you can try
- Put ` + "`#pragma once`" + ` at the top of every header in the cycle
- Break the cycle with a forward declaration`,
	}

	invalidDirectoryIssue = &Issue{
		id: InvalidDirectoryId,
		mdMsg: `
# Invalid directory!

Every source directory (` + "`-D`" + `) and include directory (` + "`-I`" + `)
must exist. Nothing was written.

## Things you can try
- Check the paths for typos
- Paths are relative to the current working directory`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try
- Show the effective configuration:
~~~
$ amalgamate config show
~~~
- Write a fresh default file:
~~~
$ amalgamate config init
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write the output file!

## Things you can try
- Check that the output directory exists and is writable
- Choose another location with ` + "`--output`",
	}

	issues = map[Id]*Issue{
		includeNotFoundIssue.Id():   includeNotFoundIssue,
		cyclicIncludeIssue.Id():     cyclicIncludeIssue,
		invalidDirectoryIssue.Id():  invalidDirectoryIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		outputWriteFailedIssue.Id(): outputWriteFailedIssue,
	}
)

// Id returns the catalog identifier of the issue.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the help text for the terminal using a glamour style
// ("dark", "light", "auto", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(strings.TrimSpace(string(i.mdMsg)), stylePath)
}

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
