// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/chaind/chaind/app/services/node/handlers/v1/private"
	"github.com/chaind/chaind/app/services/node/handlers/v1/public"
	"github.com/chaind/chaind/business/core/account"
	"github.com/chaind/chaind/business/core/faucet"
	"github.com/chaind/chaind/business/core/post"
	"github.com/chaind/chaind/foundation/blockchain/state"
	"github.com/chaind/chaind/foundation/events"
	"github.com/chaind/chaind/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log     *zap.SugaredLogger
	State   *state.State
	Faucet  *faucet.Core
	Post    *post.Core
	Account *account.Core
	Evts    *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:     cfg.Log,
		State:   cfg.State,
		FaucetCore: cfg.Faucet,
		Post:    cfg.Post,
		Account: cfg.Account,
		Evts:    cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/chain/list", pbl.Chain)
	app.Handle(http.MethodGet, version, "/mine", pbl.Mine)
	app.Handle(http.MethodPost, version, "/tx/add", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodGet, version, "/balances/list/:address", pbl.Balance)
	app.Handle(http.MethodPost, version, "/node/register", pbl.RegisterNodes)
	app.Handle(http.MethodGet, version, "/node/resolve", pbl.ResolveConflicts)
	app.Handle(http.MethodPost, version, "/faucet", pbl.Faucet)
	app.Handle(http.MethodPost, version, "/post/add", pbl.CreatePost)
	app.Handle(http.MethodGet, version, "/post/list", pbl.Posts)
	app.Handle(http.MethodPost, version, "/account/generate", pbl.GenerateAccount)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
	app.Handle(http.MethodGet, version, "/node/chain/list", prv.Chain)
}
