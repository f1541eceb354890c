// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/tx"
)

// RawTx represents a raw transaction.
type RawTx struct {
	Raw string `json:"raw"`
}

func (rtx *RawTx) decode() (*tx.Transaction, error) {
	data, err := hexutil.Decode(rtx.Raw)
	if err != nil {
		return nil, err
	}
	var trx tx.Transaction
	if err := trx.UnmarshalBinary(data); err != nil {
		return nil, errors.WithMessage(err, "rlp")
	}
	return &trx, nil
}

// EncodeRaw hex encodes trx as a RawTx.
func EncodeRaw(trx *tx.Transaction) (*RawTx, error) {
	data, err := trx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &RawTx{Raw: hexutil.Encode(data)}, nil
}
