package database

import "github.com/chaind/chaind/foundation/blockchain/pow"

// ValidChain reports whether a candidate chain maintains hash linkage and
// proof of work between every adjacent pair of blocks. A chain with a single
// block is trivially valid. Balances and sender identity are not checked
// since proof of work is the only admission control.
func ValidChain(chain []Block) bool {
	for i := 1; i < len(chain); i++ {
		prev := chain[i-1]
		cur := chain[i]

		if cur.PrevHash != prev.Hash() {
			return false
		}

		if !pow.IsValidProof(prev.Proof, cur.Proof) {
			return false
		}
	}

	return true
}
