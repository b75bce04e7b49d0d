// Package account maintains the registry of generated wallet addresses,
// one per device.
package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Info represents what the registry knows about a generated address.
type Info struct {
	DeviceID    string    `json:"device_id"`
	DateCreated time.Time `json:"date_created"`
	LastSeen    time.Time `json:"last_seen"`
}

// Core manages the address registry and its persistence.
type Core struct {
	path string

	mu    sync.Mutex
	users map[string]Info
}

// New constructs an account core, loading any previously saved registry.
// An unreadable registry file is treated as empty.
func New(path string) (*Core, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create registry directory: %w", err)
	}

	c := Core{
		path:  path,
		users: make(map[string]Info),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &c, nil
	case err != nil:
		return nil, fmt.Errorf("unable to read registry: %w", err)
	}

	if err := json.Unmarshal(data, &c.users); err != nil {
		c.users = make(map[string]Info)
	}

	return &c, nil
}

// Generate returns the wallet address for the specified device, creating a
// new one for a device the registry hasn't seen. The existing flag reports
// whether the device was already registered.
func (c *Core) Generate(deviceID string) (address string, existing bool, err error) {
	if deviceID == "" {
		return "", false, errors.New("device id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()

	// A device keeps the address it was first given.
	for addr, info := range c.users {
		if info.DeviceID == deviceID {
			info.LastSeen = now
			c.users[addr] = info
			if err := c.save(); err != nil {
				return "", false, err
			}
			return addr, true, nil
		}
	}

	address = newAddress(now)
	c.users[address] = Info{
		DeviceID:    deviceID,
		DateCreated: now,
		LastSeen:    now,
	}

	if err := c.save(); err != nil {
		return "", false, err
	}

	return address, false, nil
}

// Count returns the number of registered addresses.
func (c *Core) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.users)
}

// =============================================================================

// newAddress forms an opaque wallet address. Collisions are improbable, not
// impossible, which is acceptable for opaque identifiers.
func newAddress(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("addr_%d_%s", now.UnixMilli(), random)
}

// save writes the registry durably. Callers must hold mu.
func (c *Core) save() error {
	data, err := json.MarshalIndent(c.users, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal registry: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("unable to write registry: %w", err)
	}

	return os.Rename(tmp, c.path)
}
