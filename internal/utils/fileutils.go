package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupTimeLayout is the timestamp embedded in backup file names
const BackupTimeLayout = "20060102-150405"

// backupExt is the suffix of every target-store backup
const backupExt = ".bak"

// Backup describes a timestamped copy of a target store
type Backup struct {
	Path      string
	CreatedAt time.Time
}

// ExpandHomeDir expands a path if it starts with "~/"
func ExpandHomeDir(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// AppendTextFile opens path for appending, writes content and closes it again.
// The file is created when missing.
func AppendTextFile(path string, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file for append: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		if cerr := f.Close(); cerr != nil {
			LogWarning("Failed to close file: %v", cerr)
		}
		return fmt.Errorf("failed to append to file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	LogDebug("Appended %d bytes to %s", len(content), path)
	return nil
}

// CopyFile copies a file from src to dst
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer func() {
		if err := sourceFile.Close(); err != nil {
			LogWarning("Failed to close source file: %v", err)
		}
	}()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if err := destFile.Close(); err != nil {
			LogWarning("Failed to close destination file: %v", err)
		}
	}()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return nil
}

// BackupPath returns the backup file name of target for the given instant
func BackupPath(target string, at time.Time) string {
	return fmt.Sprintf("%s.%s%s", target, at.Format(BackupTimeLayout), backupExt)
}

// BackupFile copies target next to itself under a timestamped name and
// returns the backup path.
func BackupFile(target string, at time.Time) (string, error) {
	dst := BackupPath(target, at)
	if err := CopyFile(target, dst); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", target, err)
	}
	return dst, nil
}

// ListBackups returns the backups of target, oldest first. Files whose
// timestamp cannot be parsed are ignored.
func ListBackups(target string) ([]Backup, error) {
	dir := filepath.Dir(target)
	prefix := filepath.Base(target) + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var backups []Backup
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, backupExt) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), backupExt)
		createdAt, err := time.ParseInLocation(BackupTimeLayout, stamp, time.Local)
		if err != nil {
			LogDebug("Ignoring %s: %v", name, err)
			continue
		}

		backups = append(backups, Backup{
			Path:      filepath.Join(dir, name),
			CreatedAt: createdAt,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.Before(backups[j].CreatedAt)
	})

	return backups, nil
}
