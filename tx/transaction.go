// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
)

// Transaction is an immutable tx type.
type Transaction struct {
	body body

	cache struct {
		signingHash atomic.Value
		signer      atomic.Value
		id          atomic.Value
	}
}

// body describes details of a tx.
type body struct {
	ChainTag    byte
	Nonce       uint64
	Instruction Instruction
	Signature   []byte
}

// ChainTag returns chain tag.
func (t *Transaction) ChainTag() byte {
	return t.body.ChainTag
}

// Nonce returns nonce value.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Instruction returns the carried instruction.
func (t *Transaction) Instruction() Instruction {
	return t.body.Instruction
}

// Signature returns signature.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.body.Signature...)
}

// SigningHash returns hash of tx excludes signature.
func (t *Transaction) SigningHash() chain.Bytes32 {
	if cached := t.cache.signingHash.Load(); cached != nil {
		return cached.(chain.Bytes32)
	}
	h := chain.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{
			t.body.ChainTag,
			t.body.Nonce,
			&t.body.Instruction,
		})
	})
	t.cache.signingHash.Store(h)
	return h
}

// Signer extracts the signer of tx from signature.
func (t *Transaction) Signer() (chain.Address, error) {
	if cached := t.cache.signer.Load(); cached != nil {
		return cached.(chain.Address), nil
	}
	if len(t.body.Signature) != crypto.SignatureLength {
		return chain.Address{}, errors.New("invalid signature length")
	}
	pub, err := crypto.SigToPub(t.SigningHash().Bytes(), t.body.Signature)
	if err != nil {
		return chain.Address{}, errors.Wrap(err, "recover signer")
	}
	signer := chain.PublicKeyToAddress(*pub)
	t.cache.signer.Store(signer)
	return signer, nil
}

// ID returns id of tx.
// ID = hash(signingHash, signer).
// It returns zero Bytes32 if signer not available.
func (t *Transaction) ID() chain.Bytes32 {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(chain.Bytes32)
	}
	signer, err := t.Signer()
	if err != nil {
		return chain.Bytes32{}
	}
	id := chain.Blake2b(t.SigningHash().Bytes(), signer.Bytes())
	t.cache.id.Store(id)
	return id
}

// WithSignature create a new tx with signature set.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	newTx := Transaction{
		body: t.body,
	}
	// copy sig
	newTx.body.Signature = append([]byte(nil), sig...)
	return &newTx
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{
		body: body,
	}
	return nil
}

// MarshalBinary returns the rlp encoding of tx.
func (t *Transaction) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(t)
}

// UnmarshalBinary decodes the rlp encoding of tx.
func (t *Transaction) UnmarshalBinary(data []byte) error {
	return rlp.DecodeBytes(data, t)
}
