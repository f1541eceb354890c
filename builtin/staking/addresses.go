// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstaker/chain"
)

var (
	poolSeed      = []byte("mint")
	authoritySeed = []byte("auth")
	ledgerSeed    = []byte("stake")
	custodySeed   = []byte("stake_account")

	// PoolAddress is the reward pool token account, its own transfer authority.
	PoolAddress = chain.DeriveAddress(chain.StakingProgramID, poolSeed)
	// AuthorityAddress is the transfer authority of every custody account.
	AuthorityAddress = chain.DeriveAddress(chain.StakingProgramID, authoritySeed)
)

// authoritySize is the allocated size of the authority marker account.
const authoritySize = 8

// LedgerAddress returns the ledger record address of owner.
func LedgerAddress(owner chain.Address) chain.Address {
	return chain.DeriveAddress(chain.StakingProgramID, ledgerSeed, owner.Bytes())
}

// CustodyAddress returns the custody token account holding mint for owner.
func CustodyAddress(owner, mint chain.Address) chain.Address {
	return chain.DeriveAddress(chain.StakingProgramID, custodySeed, owner.Bytes(), mint.Bytes())
}
