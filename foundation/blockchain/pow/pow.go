// Package pow implements the proof of work engine. Finding a proof is a
// deliberately expensive brute force scan; checking one is a single hash.
package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"runtime"
	"strconv"
	"sync"
)

// zeroPrefix is the fixed difficulty for the chain. The hex form of the
// digest must lead with this many zero characters.
const zeroPrefix = "0000"

// IsValidProof reports whether proof solves the puzzle relative to the proof
// of the previous block. The puzzle hashes the decimal text of both values
// concatenated together and requires the digest to lead with four zeros.
func IsValidProof(lastProof uint64, proof uint64) bool {
	guess := strconv.FormatUint(lastProof, 10) + strconv.FormatUint(proof, 10)
	hash := sha256.Sum256([]byte(guess))

	return hex.EncodeToString(hash[:])[:len(zeroPrefix)] == zeroPrefix
}

// Search scans the non-negative integers for a proof satisfying IsValidProof
// against lastProof. The scan is split across workers walking disjoint
// strides and the first satisfying value found by any worker wins. That value
// may not be the smallest solution; callers only need a valid one. Search
// runs until a proof is found or ctx is cancelled, there is no internal
// timeout.
func Search(ctx context.Context, lastProof uint64) (uint64, error) {
	workers := uint64(runtime.GOMAXPROCS(0))

	// Buffered so a worker that solves the puzzle after cancellation
	// doesn't block on the send.
	found := make(chan uint64, workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(int(workers))

	for i := uint64(0); i < workers; i++ {
		go func(start uint64) {
			defer wg.Done()

			for proof := start; ; proof += workers {
				if ctx.Err() != nil {
					return
				}

				if IsValidProof(lastProof, proof) {
					found <- proof
					cancel()
					return
				}
			}
		}(i)
	}

	wg.Wait()

	select {
	case proof := <-found:
		return proof, nil
	default:
		return 0, ctx.Err()
	}
}
