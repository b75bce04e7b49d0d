// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"net/http"

	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/peer"
	"github.com/chaind/chaind/foundation/blockchain/state"
	"github.com/chaind/chaind/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status returns this node's view of the chain and its known peers. Peers
// use it to discover each other and to decide whether a chain fetch is
// worth the trouble.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock()

	ps := peer.PeerStatus{
		LatestBlockHash:   latest.Hash(),
		LatestBlockNumber: latest.Index,
		KnownPeers:        h.State.RetrieveKnownPeers(),
	}

	return web.Respond(ctx, w, ps, http.StatusOK)
}

// Chain returns the full chain for peer consensus. The advertised length
// lets the caller cross check the payload.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveChain()

	resp := struct {
		Length int              `json:"length"`
		Chain  []database.Block `json:"chain"`
	}{
		Length: len(blocks),
		Chain:  blocks,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
