// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/vechain/nftstaker/chain"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// ChainTag set chain tag.
func (b *Builder) ChainTag(tag byte) *Builder {
	b.body.ChainTag = tag
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Instruction set the instruction.
func (b *Builder) Instruction(ins Instruction) *Builder {
	b.body.Instruction = ins
	return b
}

// InitializeVault sets an initializeVault instruction for the reward mint.
func (b *Builder) InitializeVault(rewardMint chain.Address) *Builder {
	return b.Instruction(Instruction{Op: OpInitializeVault, Mint: rewardMint})
}

// CreateCustodyAccount sets a createCustodyAccount instruction.
func (b *Builder) CreateCustodyAccount(mint chain.Address) *Builder {
	return b.Instruction(Instruction{Op: OpCreateCustodyAccount, Mint: mint})
}

// Fund sets a fund instruction.
func (b *Builder) Fund(amount uint64) *Builder {
	return b.Instruction(Instruction{Op: OpFund, Amount: amount})
}

// Stake sets a stake instruction.
func (b *Builder) Stake(mint chain.Address, tag uint8, expectedCount uint64) *Builder {
	return b.Instruction(Instruction{Op: OpStake, Mint: mint, CollectionTag: tag, ExpectedCount: expectedCount})
}

// Unstake sets an unstake instruction.
func (b *Builder) Unstake(mint chain.Address) *Builder {
	return b.Instruction(Instruction{Op: OpUnstake, Mint: mint})
}

// Claim sets a claim instruction.
func (b *Builder) Claim() *Builder {
	return b.Instruction(Instruction{Op: OpClaim})
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	return &tx
}
