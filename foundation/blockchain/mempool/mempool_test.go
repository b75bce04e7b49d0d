package mempool_test

import (
	"testing"

	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Ordering(t *testing.T) {
	recipients := []string{"first", "second", "third", "second"}

	t.Log("Given the need to keep transactions in arrival order.")
	{
		t.Logf("\tTest 0:\tWhen appending and draining a set of transactions.")
		{
			mp := mempool.New()

			for i, recipient := range recipients {
				tx, err := database.NewTx("alice", recipient, uint64(i))
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to construct a transaction: %v", failed, err)
				}

				if got := mp.Append(tx); got != i+1 {
					t.Fatalf("\t%s\tTest 0:\tShould report pool length %d, got %d.", failed, i+1, got)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to append every transaction.", success)

			txs := mp.Drain()
			if len(txs) != len(recipients) {
				t.Fatalf("\t%s\tTest 0:\tShould drain every transaction.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould drain every transaction.", success)

			for i, tx := range txs {
				if tx.Recipient != recipients[i] {
					t.Logf("\t%s\tTest 0:\tgot: %s", failed, tx.Recipient)
					t.Logf("\t%s\tTest 0:\texp: %s", failed, recipients[i])
					t.Fatalf("\t%s\tTest 0:\tShould keep arrival order at position %d.", failed, i)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould keep arrival order.", success)

			if mp.Count() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the pool empty after a drain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the pool empty after a drain.", success)
		}
	}
}

func Test_Replace(t *testing.T) {
	t.Log("Given the need to restore the pool from a snapshot.")
	{
		t.Logf("\tTest 0:\tWhen replacing the pool contents.")
		{
			mp := mempool.New()

			tx, err := database.NewTx("alice", "bob", 1)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a transaction: %v", failed, err)
			}
			mp.Append(tx)

			restored := []database.Tx{
				{Amount: 7, Recipient: "carol", Sender: "dave"},
				{Amount: 9, Recipient: "dave", Sender: "carol"},
			}
			mp.Replace(restored)

			txs := mp.Copy()
			if len(txs) != len(restored) {
				t.Fatalf("\t%s\tTest 0:\tShould hold exactly the restored transactions.", failed)
			}
			for i := range restored {
				if txs[i] != restored[i] {
					t.Fatalf("\t%s\tTest 0:\tShould match the restored transaction at position %d.", failed, i)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould hold exactly the restored transactions.", success)
		}
	}
}
