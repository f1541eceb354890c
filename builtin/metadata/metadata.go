// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metadata implements the per mint metadata account holding the
// display name, collection symbol and uri of an asset.
package metadata

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/system"
	"github.com/vechain/nftstaker/builtin/token"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
)

// Fixed widths of the stored fields, shorter values are NUL padded.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200

	Size = 320
)

var (
	ErrNotFound     = errors.New("metadata account not found")
	ErrInvalidField = errors.New("metadata field too long")
)

var seed = []byte("metadata")

// Address returns the metadata account address of mint.
func Address(mint chain.Address) chain.Address {
	return chain.DeriveAddress(chain.MetadataProgramID, seed, chain.MetadataProgramID.Bytes(), mint.Bytes())
}

// Metadata describes an asset.
type Metadata struct {
	UpdateAuthority chain.Address
	Mint            chain.Address
	Name            string
	Symbol          string
	URI             string
}

func pad(s string, n int) (string, error) {
	if len(s) > n {
		return "", errors.Wrapf(ErrInvalidField, "%q exceeds %d bytes", s, n)
	}
	return s + strings.Repeat("\x00", n-len(s)), nil
}

func trim(s string) string {
	return strings.TrimRight(s, "\x00")
}

// Encode returns the padded account data of m.
func (m *Metadata) Encode() ([]byte, error) {
	stored := *m
	var err error
	if stored.Name, err = pad(m.Name, MaxNameLength); err != nil {
		return nil, err
	}
	if stored.Symbol, err = pad(m.Symbol, MaxSymbolLength); err != nil {
		return nil, err
	}
	if stored.URI, err = pad(m.URI, MaxURILength); err != nil {
		return nil, err
	}
	enc, err := rlp.EncodeToBytes(&stored)
	if err != nil {
		return nil, err
	}
	data := make([]byte, Size)
	copy(data, enc)
	return data, nil
}

// Decode parses account data, trimming the NUL padding of string fields.
func Decode(data []byte) (*Metadata, error) {
	var m Metadata
	if err := rlp.NewStream(bytes.NewReader(data), uint64(len(data))).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decode metadata")
	}
	m.Name = trim(m.Name)
	m.Symbol = trim(m.Symbol)
	m.URI = trim(m.URI)
	return &m, nil
}

// Load reads the metadata of mint.
func Load(st *state.State, mint chain.Address) (*Metadata, error) {
	acc, err := st.GetAccount(Address(mint))
	if err != nil {
		return nil, err
	}
	if acc.Owner != chain.MetadataProgramID || len(acc.Data) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "mint %v", mint)
	}
	return Decode(acc.Data)
}

// Create writes the metadata account of an existing mint. The caller must
// be the mint authority, which becomes the update authority.
func Create(st *state.State, payer, authority chain.Address, m Metadata) (chain.Address, error) {
	mint, err := token.New(st).GetMint(m.Mint)
	if err != nil {
		return chain.Address{}, errors.WithMessage(err, "mint")
	}
	if mint.Authority != authority {
		return chain.Address{}, errors.Wrap(token.ErrOwnerMismatch, "mint authority")
	}
	m.UpdateAuthority = authority
	data, err := m.Encode()
	if err != nil {
		return chain.Address{}, err
	}

	addr := Address(m.Mint)
	if err := system.New(st).CreateAccount(payer, addr, Size, chain.MetadataProgramID); err != nil {
		return chain.Address{}, err
	}
	return addr, st.SetData(addr, data)
}
