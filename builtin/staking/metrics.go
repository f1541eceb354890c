// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/metrics"
	"github.com/vechain/nftstaker/tx"
)

var (
	metricOperations   = metrics.LazyLoadCounterVec("staking_operations", []string{"op", "result"})
	metricRewardPaid   = metrics.LazyLoadHistogram("staking_reward_paid", metrics.BucketRewards)
	metricEntryChanges = metrics.LazyLoadCounterVec("staking_entry_changes", []string{"change"})
)

func recordOperation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if code := ErrorCode(err); code != "" {
			result = string(code)
		}
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": result})

	if err != nil {
		return
	}
	switch op {
	case tx.OpStake.String():
		metricEntryChanges().AddWithLabel(1, map[string]string{"change": "added"})
	case tx.OpUnstake.String():
		metricEntryChanges().AddWithLabel(1, map[string]string{"change": "removed"})
	}
}

// recordReward observes a payout in whole reward tokens.
func recordReward(amount uint64) {
	metricRewardPaid().Observe(int64(amount / chain.RewardUnit))
}
