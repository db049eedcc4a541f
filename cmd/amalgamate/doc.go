// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the amalgamate command line interface.
//
// The root command amalgamates every header at the top level of each -D
// directory into one output file; the config subcommands inspect and create
// configuration files.
package cmd
