package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdlstyle/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".mdl_style.rb")
	if err := os.WriteFile(path, []byte("all\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := fsutil.ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "all\n" {
		t.Errorf("content = %q, want %q", got, "all\n")
	}
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	large := filepath.Join(dir, "large.rb")
	if err := os.WriteFile(large, []byte(strings.Repeat("#", fsutil.MaxFileSize+1)), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		path    string
		wantErr error
	}{
		{"missing", context.Background(), filepath.Join(dir, "missing.rb"), fsutil.ErrNotFound},
		{"missing wraps os error", context.Background(), filepath.Join(dir, "missing.rb"), os.ErrNotExist},
		{"directory", context.Background(), dir, fsutil.ErrIsDirectory},
		{"too large", context.Background(), large, fsutil.ErrTooLarge},
		{"cancelled", cancelled, large, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := fsutil.ReadFile(tt.ctx, tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "style.yml")
	if err := os.WriteFile(path, []byte("all: true\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fsutil.Exists(path) {
		t.Errorf("Exists(%q) = false, want true", path)
	}
	if fsutil.Exists(dir) {
		t.Errorf("Exists(%q) = true for a directory", dir)
	}
	if fsutil.Exists(filepath.Join(dir, "missing")) {
		t.Error("Exists() = true for a missing file")
	}
}
