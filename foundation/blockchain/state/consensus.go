package state

import (
	"context"

	"github.com/chaind/chaind/foundation/blockchain/database"
)

// ResolveConflicts applies the longest chain rule across the known peer set.
// Each peer is asked for its chain under an independent bounded timeout;
// unreachable or erroring peers are skipped, never fatal. A peer chain
// becomes the candidate only when it is strictly longer than the best seen
// so far and passes full validation. When two longer peer chains tie on
// length, whichever the peer set yields first wins; peer set iteration has
// no defined order, so the tie-break is deliberately non-deterministic.
//
// The fetches and validation all happen outside the mutation lock. Only the
// final chain replacement takes it, and the replacement re-checks length so
// the local chain can never get shorter. The pending pool is untouched.
func (s *State) ResolveConflicts(ctx context.Context) (bool, error) {
	s.evHandler("state: ResolveConflicts: started: peers[%d]", s.knownPeers.Count())
	defer s.evHandler("state: ResolveConflicts: completed")

	best := len(s.RetrieveChain())
	var candidate []database.Block

	for _, pr := range s.knownPeers.Copy(s.host) {
		chain, err := s.fetcher.FetchChain(ctx, pr)
		if err != nil {
			s.evHandler("state: ResolveConflicts: WARNING: peer[%s] skipped: %s", pr.Host, err)
			continue
		}

		if len(chain) <= best {
			continue
		}

		if !database.ValidChain(chain) {
			s.evHandler("state: ResolveConflicts: WARNING: peer[%s] chain of length[%d] failed validation", pr.Host, len(chain))
			continue
		}

		s.evHandler("state: ResolveConflicts: peer[%s] has longer valid chain: length[%d]", pr.Host, len(chain))
		best = len(chain)
		candidate = chain
	}

	if candidate == nil {
		return false, nil
	}

	return s.replaceChain(candidate)
}

// replaceChain atomically swaps in the adopted chain. Local mining may have
// extended the chain while peers were being scanned, so the length check
// runs again under the lock.
func (s *State) replaceChain(candidate []database.Block) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(candidate) <= len(s.chain) {
		s.evHandler("state: ResolveConflicts: candidate no longer exceeds local chain, keeping ours")
		return false, nil
	}

	s.chain = candidate

	if err := s.persist(); err != nil {
		return true, err
	}

	s.evHandler("state: ResolveConflicts: chain replaced: length[%d]", len(candidate))

	return true, nil
}
