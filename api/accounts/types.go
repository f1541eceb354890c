// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/vechain/nftstaker/chain"
)

// Account for marshal account
type Account struct {
	Address    chain.Address `json:"address"`
	Lamports   uint64        `json:"lamports"`
	Owner      chain.Address `json:"owner"`
	Program    string        `json:"program,omitempty"`
	DataSize   int           `json:"dataSize"`
	RentExempt bool          `json:"rentExempt"`
	Mint       *Mint         `json:"mint,omitempty"`
	Token      *TokenAccount `json:"token,omitempty"`
	Metadata   *Metadata     `json:"metadata,omitempty"`
}

// Mint is the decoded data of a mint account.
type Mint struct {
	Authority chain.Address `json:"authority"`
	Supply    uint64        `json:"supply"`
	Decimals  uint8         `json:"decimals"`
}

// TokenAccount is the decoded data of a token holding account.
type TokenAccount struct {
	Mint   chain.Address `json:"mint"`
	Owner  chain.Address `json:"owner"`
	Amount uint64        `json:"amount"`
}

// Metadata is the decoded data of an asset metadata account.
type Metadata struct {
	UpdateAuthority chain.Address `json:"updateAuthority"`
	Mint            chain.Address `json:"mint"`
	Name            string        `json:"name"`
	Symbol          string        `json:"symbol"`
	URI             string        `json:"uri"`
}

// Data is the raw data of an account.
type Data struct {
	Data string `json:"data"`
}
