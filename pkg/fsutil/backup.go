package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is appended to a style file's path to name its backup.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies path to its sidecar backup. It returns the backup
// path, or "" when path does not exist or a backup is already present.
// An existing backup is never overwritten, so repeated writes keep the
// oldest content.
func CreateBackup(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	backupPath := BackupPath(path)
	if _, err := os.Stat(backupPath); err == nil {
		return "", nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat backup path: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat original for backup: %w", err)
	}

	content, err := ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read original for backup: %w", err)
	}
	if err := WriteAtomic(ctx, backupPath, content, stat.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

// RestoreBackup moves the backup of path back into place. It returns false
// when no backup exists.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("restore backup: %w", ctx.Err())
	default:
	}

	backupPath := BackupPath(path)
	if !Exists(backupPath) {
		return false, nil
	}
	if err := os.Rename(backupPath, path); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	return true, nil
}
