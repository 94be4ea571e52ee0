package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdlstyle/pkg/fsutil"
)

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".mdl_style.rb")

	backup, err := fsutil.CreateBackup(ctx, path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if backup != "" {
		t.Errorf("expected no backup for a missing file, got %q", backup)
	}

	if err := os.WriteFile(path, []byte("original\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	backup, err = fsutil.CreateBackup(ctx, path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if backup != fsutil.BackupPath(path) {
		t.Errorf("backup = %q, want %q", backup, fsutil.BackupPath(path))
	}

	// A second backup keeps the oldest content.
	if err := os.WriteFile(path, []byte("changed\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	backup, err = fsutil.CreateBackup(ctx, path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if backup != "" {
		t.Errorf("expected existing backup to be kept, got %q", backup)
	}

	got, err := os.ReadFile(fsutil.BackupPath(path))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != "original\n" {
		t.Errorf("backup content = %q, want %q", got, "original\n")
	}

	info, err := os.Stat(fsutil.BackupPath(path))
	if err != nil {
		t.Fatalf("stat backup: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("backup mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".mdl_style.rb")

	restored, err := fsutil.RestoreBackup(ctx, path)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if restored {
		t.Error("restored without a backup")
	}

	if err := os.WriteFile(path, []byte("original\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := fsutil.CreateBackup(ctx, path); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("broken\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	restored, err = fsutil.RestoreBackup(ctx, path)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if !restored {
		t.Fatal("expected backup to be restored")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "original\n" {
		t.Errorf("content = %q, want %q", got, "original\n")
	}
	if fsutil.Exists(fsutil.BackupPath(path)) {
		t.Error("backup should be consumed by restore")
	}
}
