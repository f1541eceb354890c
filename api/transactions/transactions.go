// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/node"
	"github.com/vechain/nftstaker/tx"
)

// Submitter executes transactions.
type Submitter interface {
	Submit(ctx context.Context, trx *tx.Transaction) (*tx.Receipt, error)
}

type Transactions struct {
	submitter Submitter
}

func New(submitter Submitter) *Transactions {
	return &Transactions{submitter}
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var rawTx *RawTx
	if err := utils.ParseJSON(req.Body, &rawTx); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if rawTx == nil {
		return utils.BadRequest(errors.New("body: empty body"))
	}
	trx, err := rawTx.decode()
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}

	receipt, err := t.submitter.Submit(req.Context(), trx)
	if err != nil {
		if node.IsRejected(err) {
			return utils.BadRequest(err)
		}
		return err
	}
	return utils.WriteJSON(w, receipt)
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /transactions").
		HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
}
