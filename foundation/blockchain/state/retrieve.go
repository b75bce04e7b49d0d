package state

import (
	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/peer"
)

// RetrieveAccountID returns the node's own account, the recipient of its
// mining rewards.
func (s *State) RetrieveAccountID() string {
	return s.accountID
}

// RetrieveHost returns the host this node identifies itself as.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveLatestBlock returns the most recently sealed block. The chain
// always holds at least the genesis block after construction.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain[len(s.chain)-1]
}

// RetrieveChain returns a copy of the current block chain.
func (s *State) RetrieveChain() []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain := make([]database.Block, len(s.chain))
	copy(chain, s.chain)
	return chain
}

// RetrieveMempool returns a copy of the pending pool in arrival order.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// RetrieveKnownPeers retrieves a copy of the known peer list, excluding
// this node itself.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}
