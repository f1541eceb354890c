// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/nftstaker/chain"
)

// Account is the persisted representation of an account.
// Data is the storage region owned by the Owner program, its length is the allocated size.
type Account struct {
	Balance uint64 // lamports
	Owner   chain.Address
	Data    []byte
}

// IsEmpty returns if an account is empty.
// An empty account has zero balance, no owner program and no data.
func (a *Account) IsEmpty() bool {
	return a.Balance == 0 && a.Owner.IsZero() && len(a.Data) == 0
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	cpy := *a
	if a.Data != nil {
		cpy.Data = bytes.Clone(a.Data)
	}
	return &cpy
}

func loadAccount(data []byte) (*Account, error) {
	var a Account
	if len(data) == 0 {
		return &a, nil
	}
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func saveAccount(a *Account) ([]byte, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}
