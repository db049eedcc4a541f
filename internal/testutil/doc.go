// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test on
// error instead of returning it.
//
// The helpers cover environment variables (MustSetenv, MustUnsetenv, SetHomeDir),
// the working directory (MustChdir) and source-tree fixtures (MustWriteFile,
// MustWriteTree, MustReadFile).
package testutil
