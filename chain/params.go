// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

// Reward emission.
const (
	SecondsPerDay uint64 = 86400
	// RewardDecimals is the number of fractional digits of the reward token.
	RewardDecimals uint8 = 9
	// RewardUnit smallest reward units per whole token.
	RewardUnit uint64 = 1_000_000_000
	// EmissionRate smallest reward units granted per staked asset per day (5 whole tokens).
	EmissionRate uint64 = 5_000_000_000
)

// Storage rent.
const (
	LamportsPerByteYear    uint64 = 3480
	ExemptionThreshold     uint64 = 2 // years
	AccountStorageOverhead uint64 = 128
	// MaxAccountDataSize caps the data region of a single account.
	MaxAccountDataSize uint64 = 10 * 1024 * 1024
)

// Well-known program addresses.
var (
	SystemProgramID   = BytesToAddress([]byte("system-program"))
	TokenProgramID    = BytesToAddress([]byte("token-program"))
	MetadataProgramID = BytesToAddress([]byte("metadata-program"))
	StakingProgramID  = BytesToAddress([]byte("nft-staking-program"))
)

// MinimumBalance returns the lamports an account of size data bytes must hold to be rent exempt.
func MinimumBalance(size uint64) uint64 {
	return (AccountStorageOverhead + size) * LamportsPerByteYear * ExemptionThreshold
}

// IsRentExempt reports whether balance keeps an account of size bytes rent exempt.
func IsRentExempt(balance, size uint64) bool {
	return balance >= MinimumBalance(size)
}
