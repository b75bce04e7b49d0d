package worker

import "context"

// consensusOperations periodically reconciles the local chain with the peer
// set using the longest chain rule.
func (w *Worker) consensusOperations() {
	w.evHandler("worker: consensusOperations: G started")
	defer w.evHandler("worker: consensusOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runConsensusOperation()
			}
		case <-w.shut:
			w.evHandler("worker: consensusOperations: received shut signal")
			return
		}
	}
}

// runConsensusOperation performs a single reconciliation pass. Each peer
// fetch is bounded by the state's peer timeout, so the pass itself doesn't
// need an overall deadline.
func (w *Worker) runConsensusOperation() {
	w.evHandler("worker: runConsensusOperation: started")
	defer w.evHandler("worker: runConsensusOperation: completed")

	replaced, err := w.state.ResolveConflicts(context.Background())
	if err != nil {
		w.evHandler("worker: runConsensusOperation: ERROR: %s", err)
		return
	}

	if replaced {
		w.evHandler("worker: runConsensusOperation: adopted longer peer chain")
	}
}
