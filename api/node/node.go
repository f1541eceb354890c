// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/state"
)

// Network describes the running node.
type Network interface {
	Genesis() *genesis.Genesis
	State() *state.State
	Now() int64
}

// Info summarizes the network served by the node.
type Info struct {
	Name         string        `json:"name"`
	GenesisID    chain.Bytes32 `json:"genesisID"`
	ChainTag     byte          `json:"chainTag"`
	Time         int64         `json:"time"`
	Program      chain.Address `json:"program"`
	RewardMint   chain.Address `json:"rewardMint"`
	RewardPool   chain.Address `json:"rewardPool"`
	Collections  []string      `json:"collections"`
	EmissionRate uint64        `json:"emissionRate"`
}

type Node struct {
	nw Network
}

func New(nw Network) *Node {
	return &Node{nw}
}

func (n *Node) handleInfo(w http.ResponseWriter, _ *http.Request) error {
	gene := n.nw.Genesis()
	info := &Info{
		Name:         gene.Name(),
		GenesisID:    gene.ID(),
		ChainTag:     gene.ChainTag(),
		Time:         n.nw.Now(),
		Program:      chain.StakingProgramID,
		RewardPool:   staking.PoolAddress,
		Collections:  staking.Collections,
		EmissionRate: chain.EmissionRate,
	}
	// zero until the vault is initialized
	if mint, err := staking.ReadRewardMint(n.nw.State()); err == nil {
		info.RewardMint = mint
	}
	return utils.WriteJSON(w, info)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/info").
		Methods(http.MethodGet).
		Name("GET /node/info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleInfo))
}
