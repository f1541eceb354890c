// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
)

// Allocated sizes of token program accounts.
const (
	MintSize    = 82
	AccountSize = 165
)

// Mint describes a token type.
type Mint struct {
	Authority chain.Address
	Supply    uint64
	Decimals  uint8
}

// IsNonFungible reports whether the mint is a single indivisible unit.
func (m *Mint) IsNonFungible() bool {
	return m.Decimals == 0 && m.Supply == 1
}

// Account holds an amount of one mint on behalf of its owner.
type Account struct {
	Mint   chain.Address
	Owner  chain.Address // transfer authority
	Amount uint64
}

// encode writes v into a zero padded region of the given size.
func encode(v any, size int) ([]byte, error) {
	enc, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, err
	}
	if len(enc) > size {
		return nil, errors.Errorf("encoded length %d exceeds %d", len(enc), size)
	}
	data := make([]byte, size)
	copy(data, enc)
	return data, nil
}

// decode reads the leading rlp value of a padded region.
func decode(data []byte, v any) error {
	return rlp.NewStream(bytes.NewReader(data), uint64(len(data))).Decode(v)
}
