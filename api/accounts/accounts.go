// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/builtin"
	"github.com/vechain/nftstaker/builtin/metadata"
	"github.com/vechain/nftstaker/builtin/token"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
)

// Stater provides the latest committed state.
type Stater interface {
	State() *state.State
}

type Accounts struct {
	stater Stater
}

func New(stater Stater) *Accounts {
	return &Accounts{stater}
}

func (a *Accounts) getAccount(addr chain.Address) (*Account, error) {
	st := a.stater.State()
	acc, err := st.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	result := &Account{
		Address:    addr,
		Lamports:   acc.Balance,
		Owner:      acc.Owner,
		DataSize:   len(acc.Data),
		RentExempt: chain.IsRentExempt(acc.Balance, uint64(len(acc.Data))),
	}
	if name, ok := builtin.ProgramName(acc.Owner); ok {
		result.Program = name
	}

	switch acc.Owner {
	case builtin.Token.Address:
		tk := builtin.Token.Native(st)
		switch len(acc.Data) {
		case token.MintSize:
			m, err := tk.GetMint(addr)
			if err != nil {
				return nil, err
			}
			result.Mint = &Mint{Authority: m.Authority, Supply: m.Supply, Decimals: m.Decimals}
		case token.AccountSize:
			ta, err := tk.GetAccount(addr)
			if err != nil {
				return nil, err
			}
			result.Token = &TokenAccount{Mint: ta.Mint, Owner: ta.Owner, Amount: ta.Amount}
		}
	case builtin.Metadata.Address:
		// an undecodable record is still reported as a plain account
		if m, err := metadata.Decode(acc.Data); err == nil {
			result.Metadata = &Metadata{
				UpdateAuthority: m.UpdateAuthority,
				Mint:            m.Mint,
				Name:            m.Name,
				Symbol:          m.Symbol,
				URI:             m.URI,
			}
		}
	}
	return result, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	acc, err := a.getAccount(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (a *Accounts) handleGetData(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	data, err := a.stater.State().GetData(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Data{Data: hexutil.Encode(data)})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/data").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/data").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetData))
}
