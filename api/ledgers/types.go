// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledgers

import (
	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/chain"
)

// Entry is a staked asset with the reward it would pay now.
type Entry struct {
	CollectionTag uint8         `json:"collectionTag"`
	AssetID       chain.Address `json:"assetID"`
	StakedAt      int64         `json:"stakedAt"`
	PendingReward uint64        `json:"pendingReward"`
}

// Ledger is the staking record of an owner.
type Ledger struct {
	Owner         chain.Address `json:"owner"`
	Address       chain.Address `json:"address"`
	Size          uint64        `json:"size"`
	Count         int           `json:"count"`
	Entries       []*Entry      `json:"entries"`
	PendingReward uint64        `json:"pendingReward"`
	Time          int64         `json:"time"`
}

func convertLedger(owner chain.Address, ledger *staking.Ledger, size uint64, now int64) *Ledger {
	rewards, total := staking.PendingRewards(ledger, now)
	entries := ledger.Entries()
	l := &Ledger{
		Owner:         owner,
		Address:       staking.LedgerAddress(owner),
		Size:          size,
		Count:         len(entries),
		Entries:       make([]*Entry, 0, len(entries)),
		PendingReward: total,
		Time:          now,
	}
	for i, e := range entries {
		l.Entries = append(l.Entries, &Entry{
			CollectionTag: e.CollectionTag,
			AssetID:       e.AssetID,
			StakedAt:      e.StakedAt,
			PendingReward: rewards[i],
		})
	}
	return l
}
