// Package faucet grants a fixed amount of tokens to an address through a
// network-issued transaction, with a per-address cooldown to stop draining.
package faucet

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chaind/chaind/foundation/blockchain/database"
)

// Default faucet settings, matching the network's public faucet.
const (
	DefaultAmount   = 100
	DefaultCooldown = time.Minute
)

// ErrCooldown indicates the address asked again before its cooldown expired.
var ErrCooldown = errors.New("faucet cooldown in effect")

// Ledger represents the behavior the faucet needs from the ledger. The
// faucet is just another caller of the ledger API.
type Ledger interface {
	SubmitTransaction(sender string, recipient string, amount uint64) (uint64, error)
}

// Core manages the faucet business rules.
type Core struct {
	ledger   Ledger
	amount   uint64
	cooldown time.Duration

	mu        sync.Mutex
	lastGrant map[string]time.Time
	now       func() time.Time
}

// New constructs a faucet core for use.
func New(ledger Ledger, amount uint64, cooldown time.Duration) *Core {
	return &Core{
		ledger:    ledger,
		amount:    amount,
		cooldown:  cooldown,
		lastGrant: make(map[string]time.Time),
		now:       time.Now,
	}
}

// Amount returns the number of tokens a single grant issues.
func (c *Core) Amount() uint64 {
	return c.amount
}

// Grant issues the faucet amount to the specified address. A second request
// inside the cooldown window fails with ErrCooldown, wrapped with the
// remaining wait.
func (c *Core) Grant(address string) (uint64, error) {
	if address == "" {
		return 0, errors.New("address is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if last, exists := c.lastGrant[address]; exists {
		if remaining := c.cooldown - c.now().Sub(last); remaining > 0 {
			return 0, fmt.Errorf("try again in %s: %w", remaining.Round(time.Second), ErrCooldown)
		}
	}

	if _, err := c.ledger.SubmitTransaction(database.NetworkAccount, address, c.amount); err != nil {
		return 0, fmt.Errorf("unable to issue grant: %w", err)
	}

	c.lastGrant[address] = c.now()

	return c.amount, nil
}
