// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chaind/chaind/business/core/account"
	"github.com/chaind/chaind/business/core/faucet"
	"github.com/chaind/chaind/business/core/post"
	"github.com/chaind/chaind/business/sys/validate"
	v1 "github.com/chaind/chaind/business/web/v1"
	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/state"
	"github.com/chaind/chaind/foundation/events"
	"github.com/chaind/chaind/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	State   *state.State
	FaucetCore *faucet.Core
	Post    *post.Core
	Account *account.Core
	WS      websocket.Upgrader
	Evts    *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Chain returns the full block chain and its length.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveChain()

	resp := chain{
		Length: len(blocks),
		Chain:  blocks,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine seals the pending pool into the next block and returns it. The
// request context bounds the proof of work search, so a client that goes
// away cancels the mining attempt.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.MineNewBlock(r.Context())
	if err != nil {
		return fmt.Errorf("unable to mine block: %w", err)
	}

	resp := minedBlock{
		Message:      "new block forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PrevHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx newTx
	if err := web.Decode(r, &tx); err != nil {
		return err
	}
	if err := validate.Check(tx); err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)

	index, err := h.State.SubmitTransaction(tx.Sender, tx.Recipient, tx.Amount)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Message string `json:"message"`
	}{
		Message: fmt.Sprintf("transaction will be added to block %d", index),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// Balance returns the derived balance for the specified address.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")
	if address == "" {
		return v1.NewRequestError(errors.New("address is required"), http.StatusBadRequest)
	}

	resp := balance{
		Address: address,
		Balance: h.State.Balance(address),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterNodes adds a set of peers to the known peer set.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nodes registerNodes
	if err := web.Decode(r, &nodes); err != nil {
		return err
	}
	if err := validate.Check(nodes); err != nil {
		return err
	}

	for _, address := range nodes.Nodes {
		if _, err := h.State.RegisterPeer(address); err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
	}

	resp := struct {
		Message    string `json:"message"`
		TotalNodes int    `json:"total_nodes"`
	}{
		Message:    "new nodes have been added",
		TotalNodes: len(h.State.RetrieveKnownPeers()),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// ResolveConflicts runs the longest chain consensus against the known peers.
func (h Handlers) ResolveConflicts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, err := h.State.ResolveConflicts(r.Context())
	if err != nil {
		return fmt.Errorf("unable to resolve conflicts: %w", err)
	}

	message := "our chain is authoritative"
	if replaced {
		message = "our chain was replaced"
	}

	resp := struct {
		Message string           `json:"message"`
		Chain   []database.Block `json:"chain"`
	}{
		Message: message,
		Chain:   h.State.RetrieveChain(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Faucet grants tokens to the specified address, subject to the cooldown.
func (h Handlers) Faucet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req faucetRequest
	if err := web.Decode(r, &req); err != nil {
		return err
	}
	if err := validate.Check(req); err != nil {
		return err
	}

	amount, err := h.FaucetCore.Grant(req.Address)
	if err != nil {
		if errors.Is(err, faucet.ErrCooldown) {
			return v1.NewRequestError(err, http.StatusTooManyRequests)
		}
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Message string `json:"message"`
		Amount  uint64 `json:"amount"`
	}{
		Message: fmt.Sprintf("%d tokens sent to %s", amount, req.Address),
		Amount:  amount,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// CreatePost charges the poster and places a post on the board.
func (h Handlers) CreatePost(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var np newPost
	if err := web.Decode(r, &np); err != nil {
		return err
	}
	if err := validate.Check(np); err != nil {
		return err
	}

	pst, err := h.Post.Create(np.Address, np.Content)
	if err != nil {
		if errors.Is(err, post.ErrInsufficientFunds) {
			return v1.NewRequestError(err, http.StatusForbidden)
		}
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Message    string `json:"message"`
		Cost       uint64 `json:"cost"`
		NewBalance int64  `json:"new_balance"`
	}{
		Message:    "post created",
		Cost:       pst.Cost,
		NewBalance: h.State.Balance(np.Address),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Posts returns the board along with the price of the next post.
func (h Handlers) Posts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	posts := h.Post.List()

	resp := struct {
		Posts        []post.Post `json:"posts"`
		Total        int         `json:"total"`
		NextPostCost uint64      `json:"next_post_cost"`
	}{
		Posts:        posts,
		Total:        len(posts),
		NextPostCost: h.Post.Cost(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// GenerateAccount returns the wallet address for a device, creating one for
// a device the registry hasn't seen.
func (h Handlers) GenerateAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var na newAccount
	if err := web.Decode(r, &na); err != nil {
		return err
	}
	if err := validate.Check(na); err != nil {
		return err
	}

	address, existing, err := h.Account.Generate(na.DeviceID)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	message := "new wallet created"
	if existing {
		message = "welcome back, using your existing address"
	}

	resp := struct {
		Address  string `json:"address"`
		Existing bool   `json:"existing"`
		Message  string `json:"message"`
	}{
		Address:  address,
		Existing: existing,
		Message:  message,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
