// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/vechain/nftstaker/chain"
)

var (
	emissionRate  = uint256.NewInt(chain.EmissionRate)
	secondsPerDay = uint256.NewInt(chain.SecondsPerDay)
)

// Reward returns the reward units accrued by one asset held for elapsed
// seconds: elapsed * EmissionRate / SecondsPerDay, rounded down.
// Non-positive elapsed accrues nothing, results beyond uint64 saturate.
func Reward(elapsed int64) uint64 {
	if elapsed <= 0 {
		return 0
	}
	r := new(uint256.Int).Mul(uint256.NewInt(uint64(elapsed)), emissionRate)
	r.Div(r, secondsPerDay)
	if !r.IsUint64() {
		return math.MaxUint64
	}
	return r.Uint64()
}

// addSat adds with saturation at MaxUint64.
func addSat(a, b uint64) uint64 {
	if a+b < a {
		return math.MaxUint64
	}
	return a + b
}
