// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin"
	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/tx"
	"github.com/vechain/nftstaker/xenv"
)

var (
	ErrChainTagMismatch = errors.New("chain tag mismatch")
	ErrDuplicateTx      = errors.New("known tx")
	ErrUnknownOp        = errors.New("unknown op")
)

// Runtime is to support transaction execution.
type Runtime struct {
	state    *state.State
	chainTag byte
	time     int64
}

// New create a Runtime object executing at the given clock time.
func New(state *state.State, chainTag byte, time int64) *Runtime {
	return &Runtime{
		state:    state,
		chainTag: chainTag,
		time:     time,
	}
}

func (rt *Runtime) State() *state.State { return rt.state }
func (rt *Runtime) Time() int64         { return rt.time }

// ExecuteTransaction executes a transaction.
// A transaction failing validation returns an error and leaves state untouched.
// A valid transaction is always recorded; if its instruction fails the receipt
// is marked reverted and carries the failure.
func (rt *Runtime) ExecuteTransaction(trx *tx.Transaction) (*tx.Receipt, error) {
	if trx.ChainTag() != rt.chainTag {
		return nil, errors.Wrapf(ErrChainTagMismatch, "want %d, got %d", rt.chainTag, trx.ChainTag())
	}
	ins := trx.Instruction()
	if !ins.Op.IsValid() {
		return nil, errors.Wrapf(ErrUnknownOp, "%v", ins.Op)
	}
	signer, err := trx.Signer()
	if err != nil {
		return nil, err
	}
	id := trx.ID()
	known, err := rt.state.HasTx(id)
	if err != nil {
		return nil, err
	}
	if known {
		return nil, errors.Wrapf(ErrDuplicateTx, "%v", id)
	}

	env := xenv.New(rt.state, &xenv.ClockContext{Time: rt.time}, &xenv.TransactionContext{ID: id, Signer: signer})
	receipt := &tx.Receipt{
		TxID:   id,
		Signer: signer,
		Op:     ins.Op.String(),
		Time:   rt.time,
	}

	checkpoint := rt.state.NewCheckpoint()
	if err := dispatch(env, ins); err != nil {
		if state.IsStateErr(err) {
			return nil, err
		}
		rt.state.RevertTo(checkpoint)
		receipt.Reverted = true
		receipt.Error = err.Error()
		receipt.ErrorCode = string(staking.ErrorCode(err))
	} else {
		receipt.Events = env.Events()
	}
	if receipt.Events == nil {
		receipt.Events = tx.Events{}
	}
	rt.state.SetTx(id)
	return receipt, nil
}

func dispatch(env *xenv.Environment, ins tx.Instruction) error {
	program := builtin.Staking.Native(env)
	switch ins.Op {
	case tx.OpInitializeVault:
		return program.InitializeVault(ins.Mint)
	case tx.OpCreateCustodyAccount:
		return program.CreateCustodyAccount(ins.Mint)
	case tx.OpFund:
		return program.Fund(ins.Amount)
	case tx.OpStake:
		return program.Stake(ins.Mint, ins.CollectionTag, ins.ExpectedCount)
	case tx.OpUnstake:
		_, err := program.Unstake(ins.Mint)
		return err
	case tx.OpClaim:
		_, err := program.Claim()
		return err
	}
	return errors.Wrapf(ErrUnknownOp, "%v", ins.Op)
}
