// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/tx"
)

type LogMeta struct {
	TxID   chain.Bytes32 `json:"txID"`
	Signer chain.Address `json:"signer"`
	Time   int64         `json:"time"`
	Index  uint32        `json:"index"`
}

// EventMessage is a pushed event.
type EventMessage struct {
	Name   string        `json:"name"`
	Owner  chain.Address `json:"owner"`
	Asset  chain.Address `json:"asset"`
	Tag    uint8         `json:"tag"`
	Amount uint64        `json:"amount"`
	Meta   LogMeta       `json:"meta"`
}

// EventFilter matches events on every non nil field.
type EventFilter struct {
	Name  *string
	Owner *chain.Address
	Asset *chain.Address
}

func (f *EventFilter) match(ev *tx.Event) bool {
	if f.Name != nil && *f.Name != ev.Name {
		return false
	}
	if f.Owner != nil && *f.Owner != ev.Owner {
		return false
	}
	if f.Asset != nil && *f.Asset != ev.Asset {
		return false
	}
	return true
}

func (f *EventFilter) messages(receipt *tx.Receipt) []any {
	var msgs []any
	for i, ev := range receipt.Events {
		if !f.match(ev) {
			continue
		}
		msgs = append(msgs, &EventMessage{
			Name:   ev.Name,
			Owner:  ev.Owner,
			Asset:  ev.Asset,
			Tag:    ev.Tag,
			Amount: ev.Amount,
			Meta: LogMeta{
				TxID:   receipt.TxID,
				Signer: receipt.Signer,
				Time:   receipt.Time,
				Index:  uint32(i),
			},
		})
	}
	return msgs
}
