package state

import (
	"context"
	"errors"

	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/pow"
)

// MiningReward is the amount credited to the node's account for each block
// it seals.
const MiningReward = 1

// ErrStaleProof is returned from commitBlock when the chain tip moved while
// the proof was being mined. The proof is worthless against the new tip and
// must be discarded, never committed.
var ErrStaleProof = errors.New("proof is stale, chain tip changed")

// MineNewBlock performs the work to seal the pending pool into the next
// block of the chain. The proof search runs outside the mutation lock
// against a captured tip; if the tip changes before commit the result is
// discarded and the search starts over against the new tip. MineNewBlock
// blocks until a block is committed or ctx is cancelled.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	for {
		tip := s.RetrieveLatestBlock()

		s.evHandler("state: MineNewBlock: MINING: started: solving against proof[%d]", tip.Proof)

		proof, err := pow.Search(ctx, tip.Proof)
		if err != nil {
			s.evHandler("state: MineNewBlock: MINING: CANCELLED")
			return database.Block{}, err
		}

		block, err := s.commitBlock(tip, proof)
		switch {
		case errors.Is(err, ErrStaleProof):
			s.evHandler("state: MineNewBlock: MINING: WARNING: stale proof[%d], re-mining", proof)
			continue

		case err != nil:
			return database.Block{}, err
		}

		s.evHandler("state: MineNewBlock: MINING: SOLVED: block[%d] hash[%s] txs[%d]", block.Index, block.Hash(), len(block.Transactions))

		return block, nil
	}
}

// commitBlock is the atomic tail of a mining operation: credit the mining
// reward, drain the pool into a new block, extend the chain, and persist.
// The proof is re-validated against the current tip so a result computed
// against a replaced chain can never be silently accepted.
func (s *State) commitBlock(minedAgainst database.Block, proof uint64) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tip := s.chain[len(s.chain)-1]
	if tip.Hash() != minedAgainst.Hash() {
		return database.Block{}, ErrStaleProof
	}

	// The reward enters through the pool so it is sealed inside the new
	// block along with everything already waiting.
	reward, err := database.NewTx(database.NetworkAccount, s.accountID, MiningReward)
	if err != nil {
		return database.Block{}, err
	}
	s.mempool.Append(reward)

	block := database.New(tip.Index+1, proof, tip.Hash(), s.mempool.Drain())
	s.chain = append(s.chain, block)

	if err := s.persist(); err != nil {
		return database.Block{}, err
	}

	return block, nil
}
