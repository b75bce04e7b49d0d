package state

// Balance derives the balance for an address by replaying every confirmed
// transaction in chain order and then the pending pool in arrival order.
// Pending debits count immediately, so a balance can go negative. The value
// is recomputed from scratch on every call, which is fine at the chain
// sizes this node runs at.
func (s *State) Balance(address string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var balance int64

	for _, block := range s.chain {
		for _, tx := range block.Transactions {
			balance += balanceDelta(address, tx.Sender, tx.Recipient, tx.Amount)
		}
	}

	for _, tx := range s.mempool.Copy() {
		balance += balanceDelta(address, tx.Sender, tx.Recipient, tx.Amount)
	}

	return balance
}

// balanceDelta applies both legs of a transfer. A self-transfer nets zero.
// NewTx caps amounts at MaxInt64, so the conversion cannot wrap.
func balanceDelta(address string, sender string, recipient string, amount uint64) int64 {
	var delta int64
	if recipient == address {
		delta += int64(amount)
	}
	if sender == address {
		delta -= int64(amount)
	}
	return delta
}
