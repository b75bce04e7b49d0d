package state

import (
	"github.com/chaind/chaind/foundation/blockchain/database"
)

// SubmitTransaction validates the transaction input and appends the
// transaction to the pending pool, returning the index of the block that
// will eventually hold it. No balance check is performed, enforcement is
// the caller's responsibility.
func (s *State) SubmitTransaction(sender string, recipient string, amount uint64) (uint64, error) {
	tx, err := database.NewTx(sender, recipient, amount)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.mempool.Append(tx)
	s.evHandler("state: SubmitTransaction: mempool[%d]: %s -> %s amount[%d]", count, tx.Sender, tx.Recipient, tx.Amount)

	if err := s.persist(); err != nil {
		return 0, err
	}

	return s.chain[len(s.chain)-1].Index + 1, nil
}
