// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"

	"github.com/vechain/nftstaker/chain"
)

// Op identifies the staking program entry point an instruction invokes.
type Op uint8

const (
	OpInitializeVault Op = iota + 1
	OpCreateCustodyAccount
	OpFund
	OpStake
	OpUnstake
	OpClaim
)

var opNames = map[Op]string{
	OpInitializeVault:      "initializeVault",
	OpCreateCustodyAccount: "createCustodyAccount",
	OpFund:                 "fund",
	OpStake:                "stake",
	OpUnstake:              "unstake",
	OpClaim:                "claim",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// IsValid reports whether op is a known entry point.
func (op Op) IsValid() bool {
	_, ok := opNames[op]
	return ok
}

// ParseOp converts the entry point name into Op.
func ParseOp(name string) (Op, error) {
	for op, n := range opNames {
		if n == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown op %q", name)
}

// Instruction is the single call a transaction carries.
// Fields not used by Op are left zero.
type Instruction struct {
	Op            Op
	CollectionTag uint8
	ExpectedCount uint64
	Amount        uint64
	Mint          chain.Address // asset mint for stake/unstake/createCustodyAccount, reward mint for initializeVault
}
