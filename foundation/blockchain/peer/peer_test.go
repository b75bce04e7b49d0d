package peer_test

import (
	"testing"

	"github.com/chaind/chaind/foundation/blockchain/peer"
)

func Test_CRUD(t *testing.T) {
	type table struct {
		name  string
		peers []peer.Peer
	}

	tt := []table{
		{
			name:  "basic",
			peers: []peer.Peer{{Host: "host1"}, {Host: "host2"}, {Host: "host3"}},
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			ps := peer.NewPeerSet()

			for _, pr := range tst.peers {
				if !ps.Add(pr) {
					t.Fatalf("Test %s:\tShould report a new peer as unknown.", tst.name)
				}
			}

			// Adding a duplicate must not grow the set.
			if ps.Add(tst.peers[0]) {
				t.Fatalf("Test %s:\tShould report a duplicate peer as known.", tst.name)
			}
			if ps.Count() != len(tst.peers) {
				t.Fatalf("Test %s:\tShould keep the set deduplicated.", tst.name)
			}

			peers := ps.Copy("")
			if len(peers) != len(tst.peers) {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers))
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			peers = ps.Copy("host2")
			if len(peers) != len(tst.peers)-1 {
				t.Logf("Test %s:\tgot: %d", tst.name, len(peers))
				t.Logf("Test %s:\texp: %d", tst.name, len(tst.peers)-1)
				t.Fatalf("Test %s:\tShould get back the right peers.", tst.name)
			}

			ps.Remove(tst.peers[0])
			if ps.Count() != len(tst.peers)-1 {
				t.Fatalf("Test %s:\tShould be able to remove a peer.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_Parse(t *testing.T) {
	type table struct {
		name    string
		address string
		host    string
		valid   bool
	}

	tt := []table{
		{name: "bare host", address: "0.0.0.0:9080", host: "0.0.0.0:9080", valid: true},
		{name: "full url", address: "http://node1.example.com:9080", host: "node1.example.com:9080", valid: true},
		{name: "url with path", address: "http://node1.example.com:9080/v1", host: "node1.example.com:9080", valid: true},
		{name: "empty", address: "", valid: false},
		{name: "scheme only", address: "http://", valid: false},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			pr, err := peer.Parse(tst.address)

			if !tst.valid {
				if err == nil {
					t.Fatalf("Test %s:\tShould reject the address.", tst.name)
				}
				return
			}

			if err != nil {
				t.Fatalf("Test %s:\tShould accept the address: %v", tst.name, err)
			}
			if pr.Host != tst.host {
				t.Logf("Test %s:\tgot: %s", tst.name, pr.Host)
				t.Logf("Test %s:\texp: %s", tst.name, tst.host)
				t.Fatalf("Test %s:\tShould extract the right host.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}
