// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      FilesystemPath
		wantValid bool
	}{
		{"absolute path", FilesystemPath("/usr/include"), true},
		{"relative path", FilesystemPath("include"), true},
		{"windows style", FilesystemPath(`C:\src\lib`), true},
		{"path with spaces", FilesystemPath("/path/to/my headers"), true},
		{"dot path", FilesystemPath("."), true},
		{"empty is invalid", FilesystemPath(""), false},
		{"whitespace only is invalid", FilesystemPath("   "), false},
		{"tab only is invalid", FilesystemPath("\t"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if (err == nil) != tt.wantValid {
				t.Fatalf("FilesystemPath(%q).Validate() error = %v, wantValid %v", tt.path, err, tt.wantValid)
			}
			if tt.wantValid {
				return
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
			}
			var pathErr *InvalidFilesystemPathError
			if !errors.As(err, &pathErr) || pathErr.Value != tt.path {
				t.Errorf("error should be *InvalidFilesystemPathError for %q, got: %v", tt.path, err)
			}
		})
	}
}
