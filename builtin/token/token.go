// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the native token program: mints, token accounts
// and transfers between them.
package token

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/system"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
)

var (
	ErrUninitialized     = errors.New("token account not initialized")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOwnerMismatch     = errors.New("owner does not match")
	ErrMintMismatch      = errors.New("account not associated with this mint")
	ErrNonZeroBalance    = errors.New("non-native account can only be closed if its balance is zero")
	ErrOverflow          = errors.New("operation overflowed")
)

var associatedSeed = []byte("associated")

// AssociatedAddress returns the canonical token account address of owner for mint.
func AssociatedAddress(owner, mint chain.Address) chain.Address {
	return chain.DeriveAddress(chain.TokenProgramID, owner.Bytes(), associatedSeed, mint.Bytes())
}

// Token implements token operations on a state.
type Token struct {
	state  *state.State
	system *system.System
}

// New creates a token program instance.
func New(state *state.State) *Token {
	return &Token{state, system.New(state)}
}

// GetMint loads the mint at addr.
func (t *Token) GetMint(addr chain.Address) (*Mint, error) {
	data, err := t.load(addr, MintSize)
	if err != nil {
		return nil, err
	}
	var m Mint
	if err := decode(data, &m); err != nil {
		return nil, errors.Wrap(err, "decode mint")
	}
	return &m, nil
}

// GetAccount loads the token account at addr.
func (t *Token) GetAccount(addr chain.Address) (*Account, error) {
	data, err := t.load(addr, AccountSize)
	if err != nil {
		return nil, err
	}
	var a Account
	if err := decode(data, &a); err != nil {
		return nil, errors.Wrap(err, "decode token account")
	}
	return &a, nil
}

func (t *Token) load(addr chain.Address, size int) ([]byte, error) {
	acc, err := t.state.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	if acc.Owner != chain.TokenProgramID || len(acc.Data) != size {
		return nil, errors.Wrapf(ErrUninitialized, "address %v", addr)
	}
	return acc.Data, nil
}

func (t *Token) setMint(addr chain.Address, m *Mint) error {
	data, err := encode(m, MintSize)
	if err != nil {
		return err
	}
	return t.state.SetData(addr, data)
}

func (t *Token) setAccount(addr chain.Address, a *Account) error {
	data, err := encode(a, AccountSize)
	if err != nil {
		return err
	}
	return t.state.SetData(addr, data)
}

// InitializeMint creates a mint at addr funded by payer.
func (t *Token) InitializeMint(payer, addr chain.Address, decimals uint8, authority chain.Address) error {
	if err := t.system.CreateAccount(payer, addr, MintSize, chain.TokenProgramID); err != nil {
		return err
	}
	return t.setMint(addr, &Mint{Authority: authority, Decimals: decimals})
}

// InitializeAccount creates a token account for mint at addr, owned by owner
// and funded by payer.
func (t *Token) InitializeAccount(payer, addr, mint, owner chain.Address) error {
	if _, err := t.GetMint(mint); err != nil {
		return errors.WithMessage(err, "mint")
	}
	if err := t.system.CreateAccount(payer, addr, AccountSize, chain.TokenProgramID); err != nil {
		return err
	}
	return t.setAccount(addr, &Account{Mint: mint, Owner: owner})
}

// InitializeAssociatedAccount creates the associated token account of owner
// for mint, returning its address.
func (t *Token) InitializeAssociatedAccount(payer, owner, mint chain.Address) (chain.Address, error) {
	addr := AssociatedAddress(owner, mint)
	return addr, t.InitializeAccount(payer, addr, mint, owner)
}

// MintTo issues new tokens of mint into dest.
func (t *Token) MintTo(mint, dest, authority chain.Address, amount uint64) error {
	m, err := t.GetMint(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority {
		return errors.Wrap(ErrOwnerMismatch, "mint authority")
	}
	acc, err := t.GetAccount(dest)
	if err != nil {
		return err
	}
	if acc.Mint != mint {
		return ErrMintMismatch
	}
	if m.Supply+amount < m.Supply {
		return ErrOverflow
	}
	m.Supply += amount
	acc.Amount += amount
	if err := t.setMint(mint, m); err != nil {
		return err
	}
	return t.setAccount(dest, acc)
}

// Transfer moves amount between two token accounts of the same mint.
// authority must own the source account.
func (t *Token) Transfer(from, to, authority chain.Address, amount uint64) error {
	src, err := t.GetAccount(from)
	if err != nil {
		return errors.WithMessage(err, "source")
	}
	dst, err := t.GetAccount(to)
	if err != nil {
		return errors.WithMessage(err, "destination")
	}
	if src.Owner != authority {
		return errors.Wrapf(ErrOwnerMismatch, "source owned by %v", src.Owner)
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}
	if src.Amount < amount {
		return errors.Wrapf(ErrInsufficientFunds, "has %d, needs %d", src.Amount, amount)
	}
	if from == to {
		return nil
	}
	if dst.Amount+amount < dst.Amount {
		return ErrOverflow
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := t.setAccount(from, src); err != nil {
		return err
	}
	return t.setAccount(to, dst)
}

// CloseAccount deletes an empty token account, moving its lamports to dest.
// It returns the lamports moved.
func (t *Token) CloseAccount(addr, dest, authority chain.Address) (uint64, error) {
	acc, err := t.GetAccount(addr)
	if err != nil {
		return 0, err
	}
	if acc.Owner != authority {
		return 0, errors.Wrapf(ErrOwnerMismatch, "account owned by %v", acc.Owner)
	}
	if acc.Amount != 0 {
		return 0, ErrNonZeroBalance
	}
	return t.system.Close(chain.TokenProgramID, addr, dest)
}
