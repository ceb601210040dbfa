// Package store persists symbol snapshots as one hash-named JSON file per
// identifier under a single cache directory. Writes go through a temp
// file and an atomic rename, so a reader never observes a partial
// snapshot, even with concurrent writers racing on the same identifier.
package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	snapshotExt = ".json"
	tempExt     = ".tmp"
)

// Store is a directory of snapshot files. It is safe for concurrent use;
// all state lives on the filesystem.
type Store struct {
	dir string
}

// Open prepares a snapshot store rooted at dir, creating the directory
// when missing and dropping temp files left behind by an interrupted
// writer.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	// Temp files only survive a crash mid-write; sweep them on open.
	stale, err := filepath.Glob(filepath.Join(dir, "*"+tempExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for temp files: %w", err)
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to clean temp file: %w", err)
		}
	}

	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the snapshot file path for an identifier, whether or not
// the file exists.
func (s *Store) Path(identifier string) string {
	return filepath.Join(s.dir, Filename(identifier))
}

// Write stores snapshot data for an identifier atomically. Concurrent
// writers for the same identifier each get a private temp file; the
// renames serialize and the last one wins. Temp files live in the store
// directory itself so the rename never crosses a filesystem boundary.
func (s *Store) Write(identifier string, data []byte) error {
	temp, err := os.CreateTemp(s.dir, "."+Filename(identifier)+".*"+tempExt)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.Path(identifier)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Read returns the stored snapshot data for an identifier. A missing
// snapshot is not an error: found is false and err is nil.
func (s *Store) Read(identifier string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path(identifier))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, true, nil
}

// Delete removes the snapshot for an identifier. Deleting a snapshot
// that does not exist is a no-op.
func (s *Store) Delete(identifier string) error {
	if err := os.Remove(s.Path(identifier)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Clear removes every snapshot and temp file, leaving the directory
// itself in place. With no write in flight, the directory is empty
// afterwards.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read store directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, snapshotExt) && !strings.HasSuffix(name, tempExt)) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}
	}
	return nil
}

// Stats summarizes the store contents.
type Stats struct {
	Snapshots int
	SizeMB    float64
}

// Stats counts the snapshot files and their total size.
func (s *Store) Stats() (Stats, error) {
	entries, err := s.snapshotEntries()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Snapshots: len(entries)}
	var totalBytes int64
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		totalBytes += info.Size()
	}
	stats.SizeMB = float64(totalBytes) / bytesPerMB
	return stats, nil
}

// snapshotEntries lists the snapshot files in the store root. Anything
// without the snapshot extension, temp files included, is skipped.
func (s *Store) snapshotEntries() ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}
	snapshots := make([]fs.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		snapshots = append(snapshots, entry)
	}
	return snapshots, nil
}
