// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node owns the persistent state of a single staking network and
// serializes transaction execution against it.
package node

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/kv"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/metrics"
	"github.com/vechain/nftstaker/runtime"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/tx"
)

var (
	logger = log.WithContext("pkg", "node")

	metricTxs             = metrics.LazyLoadCounterVec("node_transactions", []string{"result"})
	metricDroppedReceipts = metrics.LazyLoadCounter("node_dropped_receipts")
)

const metaBucket = kv.Bucket("m")

var genesisKey = []byte("genesis")

// ErrGenesisMismatch is returned when the store was built from another genesis.
var ErrGenesisMismatch = errors.New("genesis mismatch")

// rejectedError wraps a validation failure of a submitted transaction.
type rejectedError struct {
	cause error
}

func (e *rejectedError) Error() string { return "tx rejected: " + e.cause.Error() }
func (e *rejectedError) Unwrap() error { return e.cause }
func (e *rejectedError) Cause() error  { return e.cause }

// IsRejected returns whether err reports a transaction refused before execution.
func IsRejected(err error) bool {
	var re *rejectedError
	return errors.As(err, &re)
}

// Options of a node.
type Options struct {
	CacheSize int              // account cache entries
	Clock     func() time.Time // defaults to time.Now
}

// Node executes transactions one at a time and publishes their receipts.
type Node struct {
	db      kv.Store
	stater  *state.Stater
	logDB   *logdb.LogDB
	genesis *genesis.Genesis
	clock   func() time.Time

	mu sync.Mutex

	lsnMu     sync.RWMutex
	listeners map[chan *tx.Receipt]struct{}
	scope     event.SubscriptionScope
}

// New opens a node on db, building the genesis state on first use.
func New(db kv.Store, logDB *logdb.LogDB, gene *genesis.Genesis, opts Options) (*Node, error) {
	stater, err := state.NewStater(db, opts.CacheSize)
	if err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	n := &Node{
		db:      db,
		stater:  stater,
		logDB:   logDB,
		genesis: gene,
		clock:   clock,

		listeners: make(map[chan *tx.Receipt]struct{}),
	}
	if err := n.initGenesis(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) initGenesis() error {
	stored, err := metaBucket.NewGetter(n.db).Get(genesisKey)
	if err != nil && !n.db.IsNotFound(err) {
		return errors.Wrap(err, "read genesis marker")
	}
	if len(stored) > 0 {
		if chain.BytesToBytes32(stored) != n.genesis.ID() {
			return errors.Wrapf(ErrGenesisMismatch, "stored %v, want %v", chain.BytesToBytes32(stored), n.genesis.ID())
		}
		return nil
	}

	st := n.stater.NewState()
	if err := n.genesis.Build(st); err != nil {
		return errors.WithMessage(err, "build genesis")
	}
	if err := st.Stage().Commit(); err != nil {
		return errors.WithMessage(err, "commit genesis")
	}
	if err := metaBucket.NewPutter(n.db).Put(genesisKey, n.genesis.ID().Bytes()); err != nil {
		return errors.Wrap(err, "write genesis marker")
	}
	logger.Info("genesis built", "network", n.genesis.Name(), "id", n.genesis.ID().AbbrevString())
	return nil
}

// Genesis returns the genesis of the network.
func (n *Node) Genesis() *genesis.Genesis { return n.genesis }

// LogDB returns the event db.
func (n *Node) LogDB() *logdb.LogDB { return n.logDB }

// Now returns the current clock reading in unix seconds.
func (n *Node) Now() int64 { return n.clock().Unix() }

// State returns a read only view on the latest committed state.
func (n *Node) State() *state.State { return n.stater.NewState() }

// Submit executes trx and commits its effects. Rejected transactions return
// an error and change nothing.
func (n *Node) Submit(ctx context.Context, trx *tx.Transaction) (*tx.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	st := n.stater.NewState()
	rt := runtime.New(st, n.genesis.ChainTag(), n.Now())
	receipt, err := rt.ExecuteTransaction(trx)
	if err != nil {
		if state.IsStateErr(err) {
			return nil, err
		}
		metricTxs().AddWithLabel(1, map[string]string{"result": "rejected"})
		return nil, &rejectedError{err}
	}
	if err := st.Stage().Commit(); err != nil {
		return nil, errors.WithMessage(err, "commit state")
	}
	if err := n.logDB.Write(ctx, receipt); err != nil {
		logger.Warn("failed to write events", "tx", receipt.TxID, "err", err)
	}

	result := "success"
	if receipt.Reverted {
		result = "reverted"
	}
	metricTxs().AddWithLabel(1, map[string]string{"result": result})
	logger.Debug("tx executed", "id", receipt.TxID.AbbrevString(), "op", receipt.Op, "signer", receipt.Signer, "reverted", receipt.Reverted)

	n.dispatch(receipt)
	return receipt, nil
}

// dispatch hands receipt to every listener ready to take it. Listeners with a
// full channel miss the receipt.
func (n *Node) dispatch(receipt *tx.Receipt) {
	n.lsnMu.RLock()
	defer n.lsnMu.RUnlock()

	for lsn := range n.listeners {
		select {
		case lsn <- receipt:
		default:
			metricDroppedReceipts().Add(1)
			logger.Debug("receipt dropped for slow subscriber", "tx", receipt.TxID.AbbrevString())
		}
	}
}

// SubscribeReceipts delivers the receipt of every executed transaction to ch.
// Delivery never blocks the node: ch should be buffered, receipts arriving
// while it is full are dropped. Receipts are delivered in execution order.
func (n *Node) SubscribeReceipts(ch chan *tx.Receipt) event.Subscription {
	n.lsnMu.Lock()
	n.listeners[ch] = struct{}{}
	n.lsnMu.Unlock()

	return n.scope.Track(event.NewSubscription(func(quit <-chan struct{}) error {
		<-quit
		n.lsnMu.Lock()
		delete(n.listeners, ch)
		n.lsnMu.Unlock()
		return nil
	}))
}

// Close unsubscribes all receipt subscribers.
func (n *Node) Close() {
	n.scope.Close()
}
