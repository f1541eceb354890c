// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
)

// Stage abstracts changes on accounts, ready to be committed.
type Stage struct {
	stater   *Stater
	order    []chain.Address
	accounts map[chain.Address]*Account
	txs      map[chain.Bytes32]struct{}
}

// Len returns the number of changed accounts.
func (s *Stage) Len() int {
	return len(s.order)
}

// Commit writes all changes in one atomic bulk.
func (s *Stage) Commit() error {
	bulk := s.stater.db.Bulk()
	accountPutter := accountBucket.NewPutter(bulk)
	txPutter := txBucket.NewPutter(bulk)

	for _, addr := range s.order {
		data, err := saveAccount(s.accounts[addr])
		if err != nil {
			return &Error{errors.Wrap(err, "encode account")}
		}
		if len(data) == 0 {
			err = accountPutter.Delete(addr.Bytes())
		} else {
			err = accountPutter.Put(addr.Bytes(), data)
		}
		if err != nil {
			return &Error{err}
		}
	}
	for id := range s.txs {
		if err := txPutter.Put(id.Bytes(), []byte{1}); err != nil {
			return &Error{err}
		}
	}

	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	for _, addr := range s.order {
		s.stater.cache.Remove(addr)
	}
	return nil
}
