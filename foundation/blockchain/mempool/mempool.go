// Package mempool maintains the ordered pool of transactions waiting to be
// mined into a block. Order of arrival is order of inclusion.
package mempool

import (
	"sync"

	"github.com/chaind/chaind/foundation/blockchain/database"
)

// Mempool represents the pending transaction pool.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs an empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool and returns the new
// pool length. Duplicates are permitted, there is no identity to key on.
func (mp *Mempool) Append(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)
	return len(mp.pool)
}

// Copy returns a copy of the pool in arrival order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.Tx, len(mp.pool))
	copy(cpy, mp.pool)
	return cpy
}

// Drain returns every transaction in arrival order and clears the pool.
// This is the atomic hand-off used when a new block is forged.
func (mp *Mempool) Drain() []database.Tx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	txs := mp.pool
	mp.pool = nil
	return txs
}

// Replace swaps the entire pool contents. Used when restoring a snapshot.
func (mp *Mempool) Replace(txs []database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make([]database.Tx, len(txs))
	copy(mp.pool, txs)
}
