// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/tx"
)

// Network is the part of the node the health check watches.
type Network interface {
	State() *state.State
	SubscribeReceipts(ch chan *tx.Receipt) event.Subscription
}

type LastReceipt struct {
	TxID      chain.Bytes32 `json:"txID"`
	Timestamp *time.Time    `json:"timestamp"`
}

type Status struct {
	Healthy          bool         `json:"healthy"`
	VaultInitialized bool         `json:"vaultInitialized"`
	LastReceipt      *LastReceipt `json:"lastReceipt"`
}

type Health struct {
	lock        sync.RWMutex
	lastReceipt *LastReceipt
	nw          Network
	sub         event.Subscription
	done        chan struct{}
}

// New starts tracking the receipts executed by nw.
func New(nw Network) *Health {
	ch := make(chan *tx.Receipt, 16)
	h := &Health{
		nw:   nw,
		sub:  nw.SubscribeReceipts(ch),
		done: make(chan struct{}),
	}
	go h.run(ch)
	return h
}

func (h *Health) run(ch chan *tx.Receipt) {
	defer close(h.done)
	for {
		select {
		case receipt := <-ch:
			h.NewReceipt(receipt.TxID)
		case <-h.sub.Err():
			return
		}
	}
}

// NewReceipt records the latest executed transaction.
func (h *Health) NewReceipt(id chain.Bytes32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	now := time.Now()
	h.lastReceipt = &LastReceipt{TxID: id, Timestamp: &now}
}

// Status reports the node healthy once the state is readable and the vault
// is set up. A non nil error comes with an unhealthy status.
func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	last := h.lastReceipt
	h.lock.RUnlock()

	status := &Status{LastReceipt: last}
	if _, err := staking.ReadRewardMint(h.nw.State()); err != nil {
		if errors.Is(err, staking.ErrVaultNotInitialized) {
			return status, nil
		}
		return status, err
	}
	status.VaultInitialized = true
	status.Healthy = true
	return status, nil
}

// Close stops tracking receipts.
func (h *Health) Close() {
	h.sub.Unsubscribe()
	<-h.done
}
