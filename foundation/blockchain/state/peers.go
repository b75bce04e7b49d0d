package state

import (
	"github.com/chaind/chaind/foundation/blockchain/peer"
)

// RegisterPeer adds a node address to the known peer set. Both bare
// host:port values and full URLs are accepted; the set deduplicates.
func (s *State) RegisterPeer(address string) (peer.Peer, error) {
	pr, err := peer.Parse(address)
	if err != nil {
		return peer.Peer{}, err
	}

	if s.knownPeers.Add(pr) {
		s.evHandler("state: RegisterPeer: added peer[%s]", pr.Host)
	}

	return pr, nil
}
