// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/vechain/nftstaker/chain"
)

// Event kinds emitted by the staking program.
const (
	EventVaultInitialized      = "VaultInitialized"
	EventCustodyAccountCreated = "CustodyAccountCreated"
	EventFunded                = "Funded"
	EventStaked                = "Staked"
	EventUnstaked              = "Unstaked"
	EventClaimed               = "Claimed"
)

// Event is emitted by a successful instruction.
type Event struct {
	Name   string        `json:"name"`
	Owner  chain.Address `json:"owner"`
	Asset  chain.Address `json:"asset"`
	Tag    uint8         `json:"tag"`
	Amount uint64        `json:"amount"`
}

// Events slice of events.
type Events []*Event

// Receipt represents the results of a transaction.
type Receipt struct {
	TxID      chain.Bytes32 `json:"txID"`
	Signer    chain.Address `json:"signer"`
	Op        string        `json:"op"`
	Time      int64         `json:"time"`
	Reverted  bool          `json:"reverted"`
	ErrorCode string        `json:"errorCode,omitempty"`
	Error     string        `json:"error,omitempty"`
	Events    Events        `json:"events"`
}
