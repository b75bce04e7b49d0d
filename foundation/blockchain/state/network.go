package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chaind/chaind/foundation/blockchain/database"
	"github.com/chaind/chaind/foundation/blockchain/peer"
)

// defaultPeerTimeout bounds a single peer fetch so a slow or unreachable
// peer cannot stall consensus resolution.
const defaultPeerTimeout = 5 * time.Second

// PeerFetcher knows how to retrieve the full chain from a peer node. A
// failed fetch must come back as an error value, never a panic, so
// consensus can skip the peer and keep going.
type PeerFetcher interface {
	FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error)
}

// =============================================================================

// httpFetcher retrieves peer chains over the node to node HTTP API.
type httpFetcher struct {
	client  http.Client
	timeout time.Duration
}

// newHTTPFetcher constructs the default peer fetcher.
func newHTTPFetcher(timeout time.Duration) *httpFetcher {
	if timeout <= 0 {
		timeout = defaultPeerTimeout
	}

	return &httpFetcher{timeout: timeout}
}

// FetchChain asks the specified peer for its full chain and advertised
// length. A peer that advertises one length and ships another is treated
// as erroring.
func (f *httpFetcher) FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	url := fmt.Sprintf("http://%s/v1/node/chain/list", pr.Host)

	var resp struct {
		Length int              `json:"length"`
		Chain  []database.Block `json:"chain"`
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if err := f.send(ctx, http.MethodGet, url, &resp); err != nil {
		return nil, err
	}

	if resp.Length != len(resp.Chain) {
		return nil, fmt.Errorf("peer advertised length %d but sent %d blocks", resp.Length, len(resp.Chain))
	}

	return resp.Chain, nil
}

// send is a helper function to perform an HTTP request against a node.
func (f *httpFetcher) send(ctx context.Context, method string, url string, dataRecv any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return errors.New(string(msg))
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return err
		}
	}

	return nil
}
