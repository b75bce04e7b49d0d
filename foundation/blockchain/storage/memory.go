package storage

import "sync"

// Memory keeps the snapshot in process memory. Nothing survives a restart,
// which is what tests want. This implements the Store interface.
type Memory struct {
	mu       sync.Mutex
	snapshot Snapshot
	saved    bool
}

// NewMemory constructs an in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save captures the snapshot.
func (m *Memory) Save(snapshot Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = snapshot
	m.saved = true
	return nil
}

// Load returns the captured snapshot or ErrNoSnapshot if Save was
// never called.
func (m *Memory) Load() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.saved {
		return Snapshot{}, ErrNoSnapshot
	}

	return m.snapshot, nil
}

// Reset clears the captured snapshot.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = Snapshot{}
	m.saved = false
	return nil
}

// Close has nothing to release.
func (m *Memory) Close() error {
	return nil
}
