// Package state is the core API for the ledger node and implements all the
// business rules and processing.
package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/mempool"
	"github.com/chaind/chaind/foundation/blockchain/peer"
	"github.com/chaind/chaind/foundation/blockchain/storage"
)

// EventHandler defines a function that is called when events occur in the
// processing of blocks and transactions.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing background support such as consensus reconciliation.
type Worker interface {
	Shutdown()
}

// =============================================================================

// Config represents the configuration required to start the ledger node.
type Config struct {
	AccountID   string
	Host        string
	Storage     storage.Store
	KnownPeers  *peer.PeerSet
	Fetcher     PeerFetcher
	PeerTimeout time.Duration
	EvHandler   EventHandler
}

// State manages the ledger: the block chain, the pending pool, and the known
// peer set. All chain and pool mutations serialize behind a single mutex so
// at most one writer exists at any time.
type State struct {
	mu sync.Mutex

	accountID string
	host      string
	evHandler EventHandler

	chain      []database.Block
	mempool    *mempool.Mempool
	storage    storage.Store
	knownPeers *peer.PeerSet
	fetcher    PeerFetcher

	Worker Worker
}

// New constructs a new ledger state, restoring the persisted snapshot or
// falling back to a fresh genesis-only chain.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = newHTTPFetcher(cfg.PeerTimeout)
	}

	state := State{
		accountID:  cfg.AccountID,
		host:       cfg.Host,
		evHandler:  ev,
		mempool:    mempool.New(),
		storage:    cfg.Storage,
		knownPeers: cfg.KnownPeers,
		fetcher:    fetcher,
	}

	if err := state.restore(); err != nil {
		return nil, err
	}

	ev("state: started: blocks[%d] mempool[%d]", len(state.chain), state.mempool.Count())

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start the background processing for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	defer func() {
		s.storage.Close()
	}()

	// Stop any background processing first so nothing mutates the
	// ledger while it closes.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// restore loads the persisted snapshot into memory. A missing snapshot means
// a first start; an unreadable one is real data loss, which is logged and
// then absorbed by reinitializing to a genesis-only chain.
func (s *State) restore() error {
	snapshot, err := s.storage.Load()

	switch {
	case err == nil && len(snapshot.Chain) > 0:
		s.chain = snapshot.Chain
		s.mempool.Replace(snapshot.Mempool)
		return nil

	case err == nil, errors.Is(err, storage.ErrNoSnapshot):
		s.evHandler("state: restore: no chain on disk, creating genesis block")

	default:
		s.evHandler("state: restore: WARNING: snapshot unreadable, discarding chain and pool: %s", err)
		if err := s.storage.Reset(); err != nil {
			return fmt.Errorf("unable to discard corrupt snapshot: %w", err)
		}
	}

	s.chain = []database.Block{database.Genesis()}
	s.mempool.Replace(nil)

	return s.persist()
}

// persist writes the current chain and pool durably. Callers must hold mu or
// otherwise have exclusive access to the state.
func (s *State) persist() error {
	snapshot := storage.Snapshot{
		Chain:   s.chain,
		Mempool: s.mempool.Copy(),
	}

	if err := s.storage.Save(snapshot); err != nil {
		return fmt.Errorf("unable to persist snapshot: %w", err)
	}

	return nil
}
