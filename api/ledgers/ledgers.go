// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledgers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/state"
)

// Viewer reads committed state at the node clock.
type Viewer interface {
	State() *state.State
	Now() int64
}

type Ledgers struct {
	viewer Viewer
}

func New(viewer Viewer) *Ledgers {
	return &Ledgers{viewer}
}

func (l *Ledgers) handleGetLedger(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.ParseAddress("owner", mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	ledger, size, err := staking.ReadLedger(l.viewer.State(), owner)
	if err != nil {
		return err
	}
	if ledger == nil {
		return utils.NotFound(errors.New("ledger not found"))
	}
	return utils.WriteJSON(w, convertLedger(owner, ledger, size, l.viewer.Now()))
}

func (l *Ledgers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{owner}").
		Methods(http.MethodGet).
		Name("GET /ledgers/{owner}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetLedger))
}
