package faucet_test

import (
	"errors"
	"testing"
	"time"

	"github.com/chaind/chaind/business/core/faucet"
	"github.com/chaind/chaind/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

// fakeLedger records the transactions the faucet submits.
type fakeLedger struct {
	txs []database.Tx
}

func (l *fakeLedger) SubmitTransaction(sender string, recipient string, amount uint64) (uint64, error) {
	tx, err := database.NewTx(sender, recipient, amount)
	if err != nil {
		return 0, err
	}
	l.txs = append(l.txs, tx)
	return 2, nil
}

// =============================================================================

func Test_Grant(t *testing.T) {
	t.Log("Given the need to grant tokens with a per address cooldown.")
	{
		t.Logf("\tTest 0:\tWhen an address asks twice inside the cooldown window.")
		{
			ledger := fakeLedger{}
			core := faucet.New(&ledger, faucet.DefaultAmount, time.Minute)

			amount, err := core.Grant("addr_1")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to grant tokens: %v", failed, err)
			}
			if amount != faucet.DefaultAmount {
				t.Fatalf("\t%s\tTest 0:\tShould grant %d tokens, got %d.", failed, faucet.DefaultAmount, amount)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to grant tokens.", success)

			if len(ledger.txs) != 1 || ledger.txs[0].Sender != database.NetworkAccount || ledger.txs[0].Recipient != "addr_1" {
				t.Fatalf("\t%s\tTest 0:\tShould issue the grant from the network account.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould issue the grant from the network account.", success)

			if _, err := core.Grant("addr_1"); !errors.Is(err, faucet.ErrCooldown) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrCooldown on the second request, got: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrCooldown on the second request.", success)

			if len(ledger.txs) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould not submit a transaction for a refused grant.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not submit a transaction for a refused grant.", success)
		}

		t.Logf("\tTest 1:\tWhen a different address asks during another's cooldown.")
		{
			ledger := fakeLedger{}
			core := faucet.New(&ledger, faucet.DefaultAmount, time.Minute)

			if _, err := core.Grant("addr_1"); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to grant tokens: %v", failed, err)
			}
			if _, err := core.Grant("addr_2"); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould grant to an unrelated address: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould grant to an unrelated address.", success)
		}

		t.Logf("\tTest 2:\tWhen the cooldown has expired.")
		{
			ledger := fakeLedger{}
			core := faucet.New(&ledger, faucet.DefaultAmount, time.Nanosecond)

			if _, err := core.Grant("addr_1"); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to grant tokens: %v", failed, err)
			}

			time.Sleep(time.Millisecond)

			if _, err := core.Grant("addr_1"); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould grant again after the cooldown: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould grant again after the cooldown.", success)
		}
	}
}
