// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/kv"
)

const (
	accountBucket = kv.Bucket("a")
	txBucket      = kv.Bucket("t")
)

// Stater is the state creator. It caches committed accounts shared by all states it creates.
type Stater struct {
	db    kv.Store
	cache *lru.Cache
}

// NewStater create a new stater.
func NewStater(db kv.Store, cacheSize int) (*Stater, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "new account cache")
	}
	return &Stater{db: db, cache: cache}, nil
}

// NewState create a new state object on top of committed data.
func (s *Stater) NewState() *State {
	return newState(s)
}

func (s *Stater) loadAccount(addr chain.Address) (*Account, error) {
	if v, ok := s.cache.Get(addr); ok {
		return v.(*Account).Copy(), nil
	}
	data, err := accountBucket.NewGetter(s.db).Get(addr.Bytes())
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, errors.Wrap(err, "get account")
		}
		data = nil
	}
	acc, err := loadAccount(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode account")
	}
	s.cache.Add(addr, acc.Copy())
	return acc, nil
}

func (s *Stater) hasTx(id chain.Bytes32) (bool, error) {
	has, err := txBucket.NewGetter(s.db).Has(id.Bytes())
	if err != nil {
		return false, errors.Wrap(err, "has tx")
	}
	return has, nil
}
