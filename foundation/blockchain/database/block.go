// Package database maintains the data model for the ledger: transactions,
// blocks, canonical hashing, and chain validation.
package database

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Genesis block settings. The first block in every chain carries these values
// so any two fresh nodes start from a common ancestor shape.
const (
	GenesisProof    uint64 = 100
	GenesisPrevHash        = "0"
)

// Block represents a group of transactions sealed together by a proof of
// work. Blocks are immutable after creation.
//
// The field order matches the sorted key order of the wire format: index,
// previous_hash, proof, timestamp, transactions. Hash depends on this
// ordering, do not rearrange the fields.
type Block struct {
	Index        uint64 `json:"index"`
	PrevHash     string `json:"previous_hash"`
	Proof        uint64 `json:"proof"`
	TimeStamp    int64  `json:"timestamp"`
	Transactions []Tx   `json:"transactions"`
}

// New constructs the next block in the chain from the drained pending pool.
func New(index uint64, proof uint64, prevHash string, txs []Tx) Block {
	return Block{
		Index:        index,
		PrevHash:     prevHash,
		Proof:        proof,
		TimeStamp:    time.Now().UTC().Unix(),
		Transactions: txs,
	}
}

// Genesis constructs the first block of a fresh chain.
func Genesis() Block {
	return New(1, GenesisProof, GenesisPrevHash, nil)
}

// Hash returns the unique SHA-256 digest of the block over its canonical
// encoding. The same encoding is written to the snapshot on disk, so a block
// that round-trips through persistence reproduces the identical digest.
func (b Block) Hash() string {

	// Marshaling a Block can't fail, every field has a defined encoding.
	data, _ := json.Marshal(b)
	hash := sha256.Sum256(data)

	return hex.EncodeToString(hash[:])
}
