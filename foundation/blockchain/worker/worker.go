// Package worker implements the background processing for the ledger node,
// currently the periodic consensus reconciliation against known peers.
package worker

import (
	"sync"
	"time"

	"github.com/chaind/chaind/foundation/blockchain/state"
)

// Worker manages the background goroutines for the node.
type Worker struct {
	state     *state.State
	wg        sync.WaitGroup
	ticker    *time.Ticker
	shut      chan struct{}
	evHandler state.EventHandler
}

// Run creates a worker, registers it with the state package, and starts the
// background processing. The interval controls how often the node
// reconciles its chain with the peer set.
func Run(st *state.State, interval time.Duration, evHandler state.EventHandler) *Worker {
	w := Worker{
		state:     st,
		ticker:    time.NewTicker(interval),
		shut:      make(chan struct{}),
		evHandler: evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	operations := []func(){
		w.consensusOperations,
	}

	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return &w
}

// Shutdown terminates the goroutines performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.ticker.Stop()
	close(w.shut)
	w.wg.Wait()
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
