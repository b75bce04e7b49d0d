package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/storage"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_DiskRoundTrip(t *testing.T) {
	t.Log("Given the need to persist and restore a snapshot from disk.")
	{
		t.Logf("\tTest 0:\tWhen saving and loading a chain with pending transactions.")
		{
			path := filepath.Join(t.TempDir(), "snapshot.json")

			store, err := storage.NewDisk(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the store: %v", failed, err)
			}
			defer store.Close()

			genesis := database.Genesis()
			tx, err := database.NewTx("alice", "bob", 5)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a transaction: %v", failed, err)
			}

			snapshot := storage.Snapshot{
				Chain:   []database.Block{genesis},
				Mempool: []database.Tx{tx},
			}
			if err := store.Save(snapshot); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to save the snapshot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to save the snapshot.", success)

			loaded, err := store.Load()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the snapshot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the snapshot.", success)

			if len(loaded.Chain) != 1 || len(loaded.Mempool) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould get back the saved chain and pool.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the saved chain and pool.", success)

			if loaded.Chain[0].Hash() != genesis.Hash() {
				t.Logf("\t%s\tTest 0:\tgot: %s", failed, loaded.Chain[0].Hash())
				t.Logf("\t%s\tTest 0:\texp: %s", failed, genesis.Hash())
				t.Fatalf("\t%s\tTest 0:\tShould reproduce the block digest after a round trip.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reproduce the block digest after a round trip.", success)
		}
	}
}

func Test_DiskMissing(t *testing.T) {
	t.Log("Given the need to distinguish a first start from data loss.")
	{
		t.Logf("\tTest 0:\tWhen loading with no snapshot on disk.")
		{
			store, err := storage.NewDisk(filepath.Join(t.TempDir(), "snapshot.json"))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the store: %v", failed, err)
			}
			defer store.Close()

			if _, err := store.Load(); !errors.Is(err, storage.ErrNoSnapshot) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrNoSnapshot, got: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrNoSnapshot.", success)
		}

		t.Logf("\tTest 1:\tWhen loading a corrupt snapshot.")
		{
			path := filepath.Join(t.TempDir(), "snapshot.json")
			if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write the corrupt file: %v", failed, err)
			}

			store, err := storage.NewDisk(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the store: %v", failed, err)
			}
			defer store.Close()

			_, err = store.Load()
			if err == nil || errors.Is(err, storage.ErrNoSnapshot) {
				t.Fatalf("\t%s\tTest 1:\tShould get a decode error, got: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get a decode error.", success)

			if err := store.Reset(); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to reset the store: %v", failed, err)
			}
			if _, err := store.Load(); !errors.Is(err, storage.ErrNoSnapshot) {
				t.Fatalf("\t%s\tTest 1:\tShould get ErrNoSnapshot after a reset, got: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get ErrNoSnapshot after a reset.", success)
		}
	}
}
