// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testnode runs a devnet node backed by in-memory stores.
package testnode

import (
	"context"
	"crypto/ecdsa"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/node"
	"github.com/vechain/nftstaker/tx"
)

// Clock is a settable clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Node is a devnet node with its backing stores.
type Node struct {
	*node.Node
	Clock *Clock

	db    *lvldb.LevelDB
	logDB *logdb.LogDB
	nonce uint64
}

// New starts a devnet node with its clock at the genesis launch time.
func New() (*Node, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		db.Close()
		return nil, err
	}
	gene := genesis.NewDevnet()
	clock := &Clock{now: time.Unix(gene.LaunchTime(), 0)}
	n, err := node.New(db, logDB, gene, node.Options{Clock: clock.Now})
	if err != nil {
		logDB.Close()
		db.Close()
		return nil, err
	}
	return &Node{Node: n, Clock: clock, db: db, logDB: logDB}, nil
}

// NewTx returns a builder with the chain tag and a fresh nonce filled in.
func (n *Node) NewTx() *tx.Builder {
	n.nonce++
	return new(tx.Builder).ChainTag(n.Genesis().ChainTag()).Nonce(n.nonce)
}

// Execute signs and submits the built transaction, failing on reverts.
func (n *Node) Execute(b *tx.Builder, key *ecdsa.PrivateKey) (*tx.Receipt, error) {
	receipt, err := n.Submit(context.Background(), tx.MustSign(b.Build(), key))
	if err != nil {
		return nil, err
	}
	if receipt.Reverted {
		return receipt, errors.Errorf("%v reverted: %v", receipt.Op, receipt.Error)
	}
	return receipt, nil
}

// Close releases the node and its stores.
func (n *Node) Close() {
	n.Node.Close()
	n.logDB.Close()
	n.db.Close()
}
