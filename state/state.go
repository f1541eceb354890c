// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/stackedmap"
)

// ErrInsufficientLamports is returned when an account balance cannot cover a debit.
var ErrInsufficientLamports = errors.New("insufficient lamports")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsStateErr reports whether err was caused by state access failure.
func IsStateErr(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

type keySpace byte

const (
	accountSpace keySpace = iota
	txSpace
)

type stateKey struct {
	space keySpace
	id    [32]byte
}

// State manages the accounts state.
// Changes are journaled and can be reverted to a checkpoint; Stage collects them for commit.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[stateKey, any]
}

func newState(stater *Stater) *State {
	s := &State{stater: stater}
	s.sm = stackedmap.New(s.sourceGetter)
	return s
}

// sourceGetter implements stackedmap.MapGetter.
func (s *State) sourceGetter(key stateKey) (any, bool, error) {
	switch key.space {
	case accountSpace:
		acc, err := s.stater.loadAccount(chain.Address(key.id))
		if err != nil {
			return nil, false, &Error{err}
		}
		return acc, true, nil
	case txSpace:
		has, err := s.stater.hasTx(chain.Bytes32(key.id))
		if err != nil {
			return nil, false, &Error{err}
		}
		return has, true, nil
	}
	panic("unexpected key space")
}

func (s *State) getAccount(addr chain.Address) (*Account, error) {
	v, _, err := s.sm.Get(stateKey{accountSpace, addr})
	if err != nil {
		return nil, err
	}
	return v.(*Account), nil
}

func (s *State) updateAccount(addr chain.Address, acc *Account) {
	s.sm.Put(stateKey{accountSpace, addr}, acc)
}

// GetAccount returns a copy of the account, an empty account if not exists.
func (s *State) GetAccount(addr chain.Address) (*Account, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Copy(), nil
}

// SetAccount replaces the whole account.
func (s *State) SetAccount(addr chain.Address, acc *Account) {
	s.updateAccount(addr, acc.Copy())
}

// Exists returns whether an account exists at the given address.
func (s *State) Exists(addr chain.Address) (bool, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	return !acc.IsEmpty(), nil
}

// GetBalance returns lamports of the given address.
func (s *State) GetBalance(addr chain.Address) (uint64, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// SetBalance sets lamports of the given address.
func (s *State) SetBalance(addr chain.Address, balance uint64) error {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	acc.Balance = balance
	s.updateAccount(addr, acc)
	return nil
}

// AddBalance credits lamports to the given address.
func (s *State) AddBalance(addr chain.Address, amount uint64) error {
	bal, err := s.GetBalance(addr)
	if err != nil {
		return err
	}
	if bal+amount < bal {
		return errors.New("balance overflow")
	}
	return s.SetBalance(addr, bal+amount)
}

// SubBalance debits lamports from the given address.
func (s *State) SubBalance(addr chain.Address, amount uint64) error {
	bal, err := s.GetBalance(addr)
	if err != nil {
		return err
	}
	if bal < amount {
		return errors.Wrapf(ErrInsufficientLamports, "%v has %d, needs %d", addr, bal, amount)
	}
	return s.SetBalance(addr, bal-amount)
}

// GetOwner returns the program owning the account.
func (s *State) GetOwner(addr chain.Address) (chain.Address, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return chain.Address{}, err
	}
	return acc.Owner, nil
}

// SetOwner assigns the program owning the account.
func (s *State) SetOwner(addr chain.Address, owner chain.Address) error {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	acc.Owner = owner
	s.updateAccount(addr, acc)
	return nil
}

// GetData returns a copy of the account data region.
func (s *State) GetData(addr chain.Address) ([]byte, error) {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Data, nil
}

// SetData replaces the account data region, its length becomes the allocated size.
func (s *State) SetData(addr chain.Address, data []byte) error {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	acc.Data = append([]byte(nil), data...)
	s.updateAccount(addr, acc)
	return nil
}

// Delete removes the account.
func (s *State) Delete(addr chain.Address) {
	s.updateAccount(addr, &Account{})
}

// HasTx returns whether the tx id was recorded.
func (s *State) HasTx(id chain.Bytes32) (bool, error) {
	v, _, err := s.sm.Get(stateKey{txSpace, id})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// SetTx records the tx id.
func (s *State) SetTx(id chain.Bytes32) {
	s.sm.Put(stateKey{txSpace, id}, true)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to commit all changes.
func (s *State) Stage() *Stage {
	var (
		accounts = make(map[chain.Address]*Account)
		txs      = make(map[chain.Bytes32]struct{})
		order    []chain.Address
	)
	s.sm.Journal(func(k stateKey, v any) bool {
		switch k.space {
		case accountSpace:
			addr := chain.Address(k.id)
			if _, ok := accounts[addr]; !ok {
				order = append(order, addr)
			}
			accounts[addr] = v.(*Account)
		case txSpace:
			txs[chain.Bytes32(k.id)] = struct{}{}
		}
		return true
	})
	return &Stage{
		stater:   s.stater,
		order:    order,
		accounts: accounts,
		txs:      txs,
	}
}
