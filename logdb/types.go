// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/tx"
)

// Event represents tx.Event that can be stored in db.
type Event struct {
	Seq    int64
	TxID   chain.Bytes32
	Index  uint32
	Time   int64
	Signer chain.Address
	Name   string
	Owner  chain.Address
	Asset  chain.Address
	Tag    uint8
	Amount uint64
}

func newEvent(receipt *tx.Receipt, index uint32, ev *tx.Event) *Event {
	return &Event{
		TxID:   receipt.TxID,
		Index:  index,
		Time:   receipt.Time,
		Signer: receipt.Signer,
		Name:   ev.Name,
		Owner:  ev.Owner,
		Asset:  ev.Asset,
		Tag:    ev.Tag,
		Amount: ev.Amount,
	}
}

// Range is an inclusive time range in unix seconds. A To before From is open ended.
type Range struct {
	From int64
	To   int64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events on every non nil field.
type EventCriteria struct {
	TxID  *chain.Bytes32
	Name  *string
	Owner *chain.Address
	Asset *chain.Address
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// EventFilter selects events matching any of CriteriaSet within Range.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
