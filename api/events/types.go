// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/logdb"
)

type LogMeta struct {
	TxID   chain.Bytes32 `json:"txID"`
	Signer chain.Address `json:"signer"`
	Time   int64         `json:"time"`
	Index  uint32        `json:"index"`
}

type FilteredEvent struct {
	Name   string        `json:"name"`
	Owner  chain.Address `json:"owner"`
	Asset  chain.Address `json:"asset"`
	Tag    uint8         `json:"tag"`
	Amount uint64        `json:"amount"`
	Meta   LogMeta       `json:"meta"`
}

// convert a logdb.Event into a json format Event
func convertEvent(event *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Name:   event.Name,
		Owner:  event.Owner,
		Asset:  event.Asset,
		Tag:    event.Tag,
		Amount: event.Amount,
		Meta: LogMeta{
			TxID:   event.TxID,
			Signer: event.Signer,
			Time:   event.Time,
			Index:  event.Index,
		},
	}
}

type EventCriteria struct {
	TxID  *chain.Bytes32 `json:"txID"`
	Name  *string        `json:"name"`
	Owner *chain.Address `json:"owner"`
	Asset *chain.Address `json:"asset"`
}

// TimeRange bounds events by their tx time in unix seconds, both ends inclusive.
type TimeRange struct {
	From *int64 `json:"from,omitempty"`
	To   *int64 `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *TimeRange       `json:"range"`
	Options     *Options         `json:"options"`
	Order       logdb.Order      `json:"order"`
}

func convertEventFilter(filter *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		Order: filter.Order,
	}
	for _, c := range filter.CriteriaSet {
		f.CriteriaSet = append(f.CriteriaSet, &logdb.EventCriteria{
			TxID:  c.TxID,
			Name:  c.Name,
			Owner: c.Owner,
			Asset: c.Asset,
		})
	}
	if filter.Range != nil {
		// a missing upper bound is open ended
		r := &logdb.Range{To: -1}
		if filter.Range.From != nil {
			r.From = *filter.Range.From
		}
		if filter.Range.To != nil {
			r.To = *filter.Range.To
		}
		f.Range = r
	}
	if filter.Options != nil {
		f.Options = &logdb.Options{
			Offset: filter.Options.Offset,
			Limit:  filter.Options.Limit,
		}
	}
	return f
}
