// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package system implements the native account program: rent-exempt account
// creation, lamport transfers, data resizing and account closing.
package system

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
)

var (
	ErrAccountExists    = errors.New("account already in use")
	ErrOwnerMismatch    = errors.New("account not owned by program")
	ErrNotSystemAccount = errors.New("transfer source not a system account")
	ErrInvalidDataSize  = errors.New("invalid account data size")
)

// System implements native account operations on a state.
type System struct {
	state *state.State
}

// New creates a system program instance.
func New(state *state.State) *System {
	return &System{state}
}

// CreateAccount allocates size bytes at addr, assigns it to owner and funds it
// from payer up to the rent-exempt minimum. Lamports already parked at an
// unallocated addr count towards the minimum.
func (s *System) CreateAccount(payer, addr chain.Address, size uint64, owner chain.Address) error {
	if size > chain.MaxAccountDataSize {
		return errors.Wrapf(ErrInvalidDataSize, "size %d", size)
	}
	acc, err := s.state.GetAccount(addr)
	if err != nil {
		return err
	}
	if !acc.Owner.IsZero() || len(acc.Data) > 0 {
		return errors.Wrapf(ErrAccountExists, "address %v", addr)
	}
	if need := chain.MinimumBalance(size); acc.Balance < need {
		if err := s.Transfer(payer, addr, need-acc.Balance); err != nil {
			return errors.WithMessage(err, "fund new account")
		}
	}
	if err := s.state.SetOwner(addr, owner); err != nil {
		return err
	}
	return s.state.SetData(addr, make([]byte, size))
}

// Transfer moves lamports between accounts. The source must be a plain
// system account.
func (s *System) Transfer(from, to chain.Address, amount uint64) error {
	owner, err := s.state.GetOwner(from)
	if err != nil {
		return err
	}
	if !owner.IsZero() {
		return errors.Wrapf(ErrNotSystemAccount, "address %v", from)
	}
	return s.move(from, to, amount)
}

func (s *System) move(from, to chain.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := s.state.SubBalance(from, amount); err != nil {
		return err
	}
	return s.state.AddBalance(to, amount)
}

func (s *System) checkOwner(program, addr chain.Address) error {
	owner, err := s.state.GetOwner(addr)
	if err != nil {
		return err
	}
	if owner != program {
		return errors.Wrapf(ErrOwnerMismatch, "address %v owned by %v", addr, owner)
	}
	return nil
}

// Resize reallocates the data region of a program owned account, keeping
// the common prefix. Growing tops the balance up to the rent-exempt minimum
// from payer. It returns the lamports transferred in.
func (s *System) Resize(program, payer, addr chain.Address, newSize uint64) (uint64, error) {
	if newSize > chain.MaxAccountDataSize {
		return 0, errors.Wrapf(ErrInvalidDataSize, "size %d", newSize)
	}
	if err := s.checkOwner(program, addr); err != nil {
		return 0, err
	}
	acc, err := s.state.GetAccount(addr)
	if err != nil {
		return 0, err
	}

	var funded uint64
	if need := chain.MinimumBalance(newSize); acc.Balance < need {
		funded = need - acc.Balance
		if err := s.Transfer(payer, addr, funded); err != nil {
			return 0, errors.WithMessage(err, "fund resize")
		}
	}

	data := make([]byte, newSize)
	copy(data, acc.Data)
	if err := s.state.SetData(addr, data); err != nil {
		return 0, err
	}
	return funded, nil
}

// Reclaim moves the lamports held above the rent-exempt minimum of a
// program owned account to the recipient. It returns the amount moved.
func (s *System) Reclaim(program, addr, to chain.Address) (uint64, error) {
	if err := s.checkOwner(program, addr); err != nil {
		return 0, err
	}
	acc, err := s.state.GetAccount(addr)
	if err != nil {
		return 0, err
	}
	need := chain.MinimumBalance(uint64(len(acc.Data)))
	if acc.Balance <= need {
		return 0, nil
	}
	surplus := acc.Balance - need
	if err := s.move(addr, to, surplus); err != nil {
		return 0, err
	}
	return surplus, nil
}

// Close deletes a program owned account and moves all its lamports to the
// recipient. It returns the amount moved.
func (s *System) Close(program, addr, to chain.Address) (uint64, error) {
	if err := s.checkOwner(program, addr); err != nil {
		return 0, err
	}
	bal, err := s.state.GetBalance(addr)
	if err != nil {
		return 0, err
	}
	if err := s.move(addr, to, bal); err != nil {
		return 0, err
	}
	s.state.Delete(addr)
	return bal, nil
}
