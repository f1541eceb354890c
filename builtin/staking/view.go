// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaker/builtin/token"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
)

// ReadLedger returns the ledger record of owner with its allocated size,
// or nil if owner never staked.
func ReadLedger(st *state.State, owner chain.Address) (*Ledger, uint64, error) {
	ledger, size, err := loadLedger(st, owner)
	if err != nil {
		return nil, 0, err
	}
	if size == 0 {
		return nil, 0, nil
	}
	return ledger, size, nil
}

// PendingRewards returns the reward each entry would pay at now, and their
// saturating sum.
func PendingRewards(ledger *Ledger, now int64) ([]uint64, uint64) {
	var (
		rewards = make([]uint64, 0, ledger.Len())
		total   uint64
	)
	for _, e := range ledger.entries {
		r := Reward(now - e.StakedAt)
		rewards = append(rewards, r)
		total = addSat(total, r)
	}
	return rewards, total
}

// ReadRewardMint returns the mint of the reward pool, ErrVaultNotInitialized
// before the vault is set up.
func ReadRewardMint(st *state.State) (chain.Address, error) {
	return rewardMint(token.New(st))
}
