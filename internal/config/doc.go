// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is looked up in this order: an explicit --config file, the
// platform config directory ($XDG_CONFIG_HOME/amalgamate/config.cue on Linux,
// ~/Library/Application Support/amalgamate/config.cue on macOS,
// %APPDATA%\amalgamate\config.cue on Windows), then amalgamate.cue in the
// working directory. Without a file the defaults apply. Every key can also be
// set through an AMALGAMATE_ environment variable (AMALGAMATE_OUTPUT,
// AMALGAMATE_UI_VERBOSE, ...).
//
// Files are validated against the embedded config_schema.cue before they are
// merged over the defaults.
package config
