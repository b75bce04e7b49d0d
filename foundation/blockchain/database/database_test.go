package database_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/pow"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_BlockHash(t *testing.T) {
	t.Log("Given the need to compute a stable digest for a block.")
	{
		t.Logf("\tTest 0:\tWhen hashing the same block twice.")
		{
			block := database.Genesis()

			if block.Hash() != block.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould get the same digest for the same block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same digest for the same block.", success)
		}

		t.Logf("\tTest 1:\tWhen hashing a block after an encoding round trip.")
		{
			tx, err := database.NewTx("alice", "bob", 5)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct a transaction: %v", failed, err)
			}

			block := database.New(2, 35293, database.Genesis().Hash(), []database.Tx{tx})

			data, err := json.Marshal(block)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to encode the block: %v", failed, err)
			}

			var decoded database.Block
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to decode the block: %v", failed, err)
			}

			if decoded.Hash() != block.Hash() {
				t.Logf("\t%s\tTest 1:\tgot: %s", failed, decoded.Hash())
				t.Logf("\t%s\tTest 1:\texp: %s", failed, block.Hash())
				t.Fatalf("\t%s\tTest 1:\tShould reproduce the digest after a round trip.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reproduce the digest after a round trip.", success)
		}
	}
}

func Test_NewTx(t *testing.T) {
	type table struct {
		name      string
		sender    string
		recipient string
		amount    uint64
		valid     bool
	}

	tt := []table{
		{name: "basic", sender: "alice", recipient: "bob", amount: 5, valid: true},
		{name: "zero amount", sender: "alice", recipient: "bob", amount: 0, valid: true},
		{name: "missing sender", sender: "", recipient: "bob", amount: 5, valid: false},
		{name: "missing recipient", sender: "alice", recipient: "", amount: 5, valid: false},
		{name: "max representable amount", sender: "alice", recipient: "bob", amount: math.MaxInt64, valid: true},
		{name: "amount beyond balance range", sender: "alice", recipient: "bob", amount: uint64(math.MaxInt64) + 1, valid: false},
	}

	t.Log("Given the need to validate transaction construction.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen constructing transaction %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					_, err := database.NewTx(tst.sender, tst.recipient, tst.amount)
					if tst.valid && err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to construct the transaction: %v", failed, testID, err)
					}
					if !tst.valid && err == nil {
						t.Fatalf("\t%s\tTest %d:\tShould reject the malformed transaction.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected construction result.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_ValidChain(t *testing.T) {
	t.Log("Given the need to validate hash linkage and proof of work across a chain.")
	{
		t.Logf("\tTest 0:\tWhen checking a chain of a single genesis block.")
		{
			if !database.ValidChain([]database.Block{database.Genesis()}) {
				t.Fatalf("\t%s\tTest 0:\tShould report a single block chain as valid.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report a single block chain as valid.", success)
		}

		t.Logf("\tTest 1:\tWhen extending a chain with properly mined blocks.")
		{
			chain := mineChain(t, 3)

			if !database.ValidChain(chain) {
				t.Fatalf("\t%s\tTest 1:\tShould report a properly extended chain as valid.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould report a properly extended chain as valid.", success)
		}

		t.Logf("\tTest 2:\tWhen any sealed field of a block is mutated.")
		{
			mutations := []func(b *database.Block){
				func(b *database.Block) { b.Proof++ },
				func(b *database.Block) { b.TimeStamp++ },
				func(b *database.Block) { b.PrevHash = "tampered" },
				func(b *database.Block) { b.Transactions = append(b.Transactions, database.Tx{Amount: 1, Recipient: "x", Sender: "y"}) },
			}

			for i, mutate := range mutations {
				chain := mineChain(t, 3)
				mutate(&chain[1])

				if database.ValidChain(chain) {
					t.Fatalf("\t%s\tTest 2:\tShould report chain with mutation %d as invalid.", failed, i)
				}
				t.Logf("\t%s\tTest 2:\tShould report chain with mutation %d as invalid.", success, i)
			}
		}
	}
}

// =============================================================================

// mineChain builds a chain of the specified length with real proofs of work.
func mineChain(t *testing.T, length int) []database.Block {
	t.Helper()

	chain := []database.Block{database.Genesis()}

	for len(chain) < length {
		tip := chain[len(chain)-1]

		proof, err := pow.Search(context.Background(), tip.Proof)
		if err != nil {
			t.Fatalf("unable to mine test chain: %v", err)
		}

		tx, err := database.NewTx(database.NetworkAccount, "miner", 1)
		if err != nil {
			t.Fatalf("unable to construct test transaction: %v", err)
		}

		chain = append(chain, database.New(tip.Index+1, proof, tip.Hash(), []database.Tx{tx}))
	}

	return chain
}
