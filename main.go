// SPDX-License-Identifier: MPL-2.0

// Command amalgamate writes a single-file amalgamation of header directories.
package main

import cmd "github.com/amalgamate/amalgamate/cmd/amalgamate"

func main() {
	cmd.Execute()
}
