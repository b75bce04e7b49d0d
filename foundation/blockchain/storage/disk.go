package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk persists snapshots to a single JSON file. Writes go through a
// temporary file and a rename so a crash mid-write can't leave a torn
// snapshot behind. This implements the Store interface.
type Disk struct {
	path string
}

// NewDisk constructs a disk store, creating the parent directory if needed.
func NewDisk(path string) (*Disk, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create snapshot directory: %w", err)
	}

	return &Disk{path: path}, nil
}

// Save writes the snapshot durably to disk.
func (d *Disk) Save(snapshot Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal snapshot: %w", err)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("unable to write snapshot: %w", err)
	}

	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("unable to commit snapshot: %w", err)
	}

	return nil
}

// Load reads the snapshot back from disk. A missing file yields
// ErrNoSnapshot; an unreadable file yields the underlying decode error so
// the caller can log the data loss before reinitializing.
func (d *Disk) Load() (Snapshot, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("unable to read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("unable to decode snapshot: %w", err)
	}

	return snapshot, nil
}

// Reset removes the snapshot from disk.
func (d *Disk) Reset() error {
	if err := os.Remove(d.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// Close has nothing to do since the file is only held open during
// individual reads and writes.
func (d *Disk) Close() error {
	return nil
}
