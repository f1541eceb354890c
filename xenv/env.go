// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/tx"
)

// ClockContext carries the platform clock reading of the call.
type ClockContext struct {
	Time int64 // unix seconds
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID     chain.Bytes32
	Signer chain.Address
}

// Environment an env to execute native programs.
type Environment struct {
	state    *state.State
	clockCtx *ClockContext
	txCtx    *TransactionContext
	events   tx.Events
}

// New create a new env.
func New(state *state.State, clockCtx *ClockContext, txCtx *TransactionContext) *Environment {
	return &Environment{
		state:    state,
		clockCtx: clockCtx,
		txCtx:    txCtx,
	}
}

func (env *Environment) State() *state.State                     { return env.state }
func (env *Environment) ClockContext() *ClockContext             { return env.clockCtx }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }

// Caller returns the authenticated signer of the call.
func (env *Environment) Caller() chain.Address { return env.txCtx.Signer }

// Now returns the clock reading in unix seconds.
func (env *Environment) Now() int64 { return env.clockCtx.Time }

// Log appends an event.
func (env *Environment) Log(ev *tx.Event) {
	env.events = append(env.events, ev)
}

// Events returns events logged so far.
func (env *Environment) Events() tx.Events { return env.events }

// Checkpoint returns the mark to roll back state and events to.
func (env *Environment) Checkpoint() Checkpoint {
	return Checkpoint{revision: env.state.NewCheckpoint(), events: len(env.events)}
}

// RevertTo discards state changes and events after the checkpoint.
func (env *Environment) RevertTo(cp Checkpoint) {
	env.state.RevertTo(cp.revision)
	env.events = env.events[:cp.events]
}

// Checkpoint marks a revertible point of an environment.
type Checkpoint struct {
	revision int
	events   int
}
