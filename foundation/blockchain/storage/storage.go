// Package storage provides durable snapshot support for the chain and the
// pending transaction pool.
package storage

import (
	"errors"

	"github.com/chaind/chaind/foundation/blockchain/database"
)

// ErrNoSnapshot is returned from Load when no snapshot has been written yet.
// Callers fall back to a fresh genesis-only state.
var ErrNoSnapshot = errors.New("no snapshot exists")

// Snapshot is the self-describing record persisted after every ledger
// mutation. The block encoding is canonical, so reloaded blocks hash
// identically to their pre-persistence digests.
type Snapshot struct {
	Chain   []database.Block `json:"chain"`
	Mempool []database.Tx    `json:"mempool"`
}

// Store interface represents the behavior required to be implemented by any
// package providing snapshot persistence.
type Store interface {
	Save(snapshot Snapshot) error
	Load() (Snapshot, error)
	Reset() error
	Close() error
}
