// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the NFT staking program: custody of whitelisted
// non-fungible assets and time based reward accrual from a reward pool.
package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/builtin/metadata"
	"github.com/vechain/nftstaker/builtin/system"
	"github.com/vechain/nftstaker/builtin/token"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/tx"
	"github.com/vechain/nftstaker/xenv"
)

var logger = log.WithContext("pkg", "staking")

// SetLogger replaces the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

var ErrVaultNotInitialized = errors.New("vault not initialized")

// Staking implements the staking program operations invoked by a signed caller.
type Staking struct {
	env    *xenv.Environment
	state  *state.State
	system *system.System
	token  *token.Token
}

// New creates a staking program instance bound to an execution environment.
func New(env *xenv.Environment) *Staking {
	return &Staking{
		env:    env,
		state:  env.State(),
		system: system.New(env.State()),
		token:  token.New(env.State()),
	}
}

// atomic runs fn under a checkpoint, reverting state and events on failure.
func (s *Staking) atomic(op tx.Op, fn func() error) error {
	cp := s.env.Checkpoint()
	err := fn()
	if err != nil {
		s.env.RevertTo(cp)
		logger.Debug("operation reverted", "op", op, "caller", s.env.Caller(), "err", err)
	}
	recordOperation(op.String(), err)
	return err
}

// InitializeVault creates the reward pool for rewardMint and the custody
// authority account, funded by the caller.
func (s *Staking) InitializeVault(rewardMint chain.Address) error {
	return s.atomic(tx.OpInitializeVault, func() error {
		caller := s.env.Caller()
		if err := s.token.InitializeAccount(caller, PoolAddress, rewardMint, PoolAddress); err != nil {
			return errors.WithMessage(err, "reward pool")
		}
		if err := s.system.CreateAccount(caller, AuthorityAddress, authoritySize, chain.StakingProgramID); err != nil {
			return errors.WithMessage(err, "authority")
		}
		s.env.Log(&tx.Event{Name: tx.EventVaultInitialized, Owner: caller, Asset: rewardMint})
		logger.Info("vault initialized", "rewardMint", rewardMint, "pool", PoolAddress)
		return nil
	})
}

// CreateCustodyAccount creates the caller owned holding account for mint.
func (s *Staking) CreateCustodyAccount(mint chain.Address) error {
	return s.atomic(tx.OpCreateCustodyAccount, func() error {
		caller := s.env.Caller()
		addr, err := s.token.InitializeAssociatedAccount(caller, caller, mint)
		if err != nil {
			return err
		}
		s.env.Log(&tx.Event{Name: tx.EventCustodyAccountCreated, Owner: caller, Asset: mint})
		logger.Debug("holding account created", "owner", caller, "mint", mint, "account", addr)
		return nil
	})
}

// Fund moves amount of reward tokens from the caller's holding account into the pool.
func (s *Staking) Fund(amount uint64) error {
	return s.atomic(tx.OpFund, func() error {
		caller := s.env.Caller()
		rewardMint, err := s.RewardMint()
		if err != nil {
			return err
		}
		if err := s.token.Transfer(token.AssociatedAddress(caller, rewardMint), PoolAddress, caller, amount); err != nil {
			return errors.WithMessage(err, "fund pool")
		}
		s.env.Log(&tx.Event{Name: tx.EventFunded, Owner: caller, Asset: rewardMint, Amount: amount})
		return nil
	})
}

// Stake moves one unit of mint from the caller into custody and records it.
// expected must equal the current entry count of the caller's ledger.
func (s *Staking) Stake(mint chain.Address, tag uint8, expected uint64) error {
	return s.atomic(tx.OpStake, func() error {
		caller := s.env.Caller()
		ledger, size, err := s.loadLedger(caller)
		if err != nil {
			return err
		}
		if err := ledger.EnsureOwner(caller); err != nil {
			return err
		}
		if err := s.checkAsset(mint); err != nil {
			return err
		}

		custody, err := s.ensureCustody(caller, mint)
		if err != nil {
			return err
		}
		if err := s.token.Transfer(token.AssociatedAddress(caller, mint), custody, caller, 1); err != nil {
			return errors.WithMessage(err, "deposit asset")
		}
		if err := ledger.Append(tag, mint, s.env.Now(), expected); err != nil {
			return err
		}
		if err := s.saveLedger(caller, ledger, size); err != nil {
			return err
		}

		s.env.Log(&tx.Event{Name: tx.EventStaked, Owner: caller, Asset: mint, Tag: tag})
		logger.Debug("staked", "owner", caller, "mint", mint, "tag", tag, "entries", ledger.Len())
		return nil
	})
}

// Unstake returns mint to the caller and pays the reward accrued since it
// was staked or last claimed. The freed storage deposit and the custody
// account's lamports are refunded to the caller.
func (s *Staking) Unstake(mint chain.Address) (reward uint64, err error) {
	err = s.atomic(tx.OpUnstake, func() error {
		caller := s.env.Caller()
		ledger, size, err := s.loadLedger(caller)
		if err != nil {
			return err
		}
		if err := ledger.checkOwner(caller); err != nil {
			return err
		}
		i, err := ledger.FindByAsset(mint)
		if err != nil {
			return err
		}
		rewardMint, err := s.RewardMint()
		if err != nil {
			return err
		}

		custody := CustodyAddress(caller, mint)
		if err := s.token.Transfer(custody, token.AssociatedAddress(caller, mint), AuthorityAddress, 1); err != nil {
			return errors.WithMessage(err, "return asset")
		}
		entry, err := ledger.RemoveAt(i)
		if err != nil {
			return err
		}
		reward = Reward(s.env.Now() - entry.StakedAt)
		if err := s.payReward(caller, rewardMint, reward); err != nil {
			return err
		}
		if err := s.saveLedger(caller, ledger, size); err != nil {
			return err
		}
		if _, err := s.token.CloseAccount(custody, caller, AuthorityAddress); err != nil {
			return errors.WithMessage(err, "close custody")
		}

		s.env.Log(&tx.Event{Name: tx.EventUnstaked, Owner: caller, Asset: mint, Tag: entry.CollectionTag, Amount: reward})
		logger.Debug("unstaked", "owner", caller, "mint", mint, "reward", reward, "entries", ledger.Len())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reward, nil
}

// Claim pays the accrued reward of every entry and restarts their accrual
// at the current time.
func (s *Staking) Claim() (total uint64, err error) {
	err = s.atomic(tx.OpClaim, func() error {
		caller := s.env.Caller()
		ledger, size, err := s.loadLedger(caller)
		if err != nil {
			return err
		}
		if err := ledger.checkOwner(caller); err != nil {
			return err
		}
		if ledger.Len() == 0 {
			return nil
		}
		rewardMint, err := s.RewardMint()
		if err != nil {
			return err
		}

		now := s.env.Now()
		for _, e := range ledger.entries {
			reward := Reward(now - e.StakedAt)
			if err := s.payReward(caller, rewardMint, reward); err != nil {
				return err
			}
			total = addSat(total, reward)
			s.env.Log(&tx.Event{Name: tx.EventClaimed, Owner: caller, Asset: e.AssetID, Tag: e.CollectionTag, Amount: reward})
		}
		ledger.resetTimestamps(now)
		if err := s.saveLedger(caller, ledger, size); err != nil {
			return err
		}
		logger.Debug("claimed", "owner", caller, "entries", ledger.Len(), "total", total)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// RewardMint returns the mint of the reward pool.
func (s *Staking) RewardMint() (chain.Address, error) {
	return rewardMint(s.token)
}

func rewardMint(tk *token.Token) (chain.Address, error) {
	pool, err := tk.GetAccount(PoolAddress)
	if err != nil {
		if errors.Is(err, token.ErrUninitialized) {
			return chain.Address{}, ErrVaultNotInitialized
		}
		return chain.Address{}, err
	}
	return pool.Mint, nil
}

func (s *Staking) payReward(to, rewardMint chain.Address, amount uint64) error {
	if err := s.token.Transfer(PoolAddress, token.AssociatedAddress(to, rewardMint), PoolAddress, amount); err != nil {
		return errors.WithMessage(err, "pay reward")
	}
	recordReward(amount)
	return nil
}

// checkAsset requires mint to be an existing non-fungible mint of a
// whitelisted collection.
func (s *Staking) checkAsset(mint chain.Address) error {
	m, err := s.token.GetMint(mint)
	if err != nil {
		if errors.Is(err, token.ErrUninitialized) {
			return newError(CodeMintNotFound, "mint %v", mint)
		}
		return err
	}
	if !m.IsNonFungible() {
		return newError(CodeMintNotFound, "mint %v is not non-fungible", mint)
	}

	md, err := metadata.Load(s.state, mint)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) || !state.IsStateErr(err) {
			return newError(CodeIncorrectCollection, "metadata of %v: %v", mint, err)
		}
		return err
	}
	return CheckCollection(md.Symbol)
}

// ensureCustody returns the custody account of (owner, mint), creating it
// when missing. An existing one is reused if it holds mint under the program
// authority.
func (s *Staking) ensureCustody(owner, mint chain.Address) (chain.Address, error) {
	addr := CustodyAddress(owner, mint)
	acc, err := s.token.GetAccount(addr)
	if err != nil {
		if !errors.Is(err, token.ErrUninitialized) {
			return chain.Address{}, err
		}
		if err := s.token.InitializeAccount(owner, addr, mint, AuthorityAddress); err != nil {
			return chain.Address{}, errors.WithMessage(err, "custody")
		}
		return addr, nil
	}
	if acc.Mint != mint || acc.Owner != AuthorityAddress {
		return chain.Address{}, errors.Wrapf(token.ErrOwnerMismatch, "custody %v", addr)
	}
	return addr, nil
}

// loadLedger reads the ledger of owner and its allocated size. A missing
// record yields an empty unowned ledger with size 0.
func (s *Staking) loadLedger(owner chain.Address) (*Ledger, uint64, error) {
	return loadLedger(s.state, owner)
}

func loadLedger(st *state.State, owner chain.Address) (*Ledger, uint64, error) {
	acc, err := st.GetAccount(LedgerAddress(owner))
	if err != nil {
		return nil, 0, err
	}
	if acc.Owner != chain.StakingProgramID {
		return &Ledger{}, 0, nil
	}
	ledger, err := DecodeLedger(acc.Data)
	if err != nil {
		return nil, 0, errors.WithMessagef(err, "ledger of %v", owner)
	}
	return ledger, uint64(len(acc.Data)), nil
}

// saveLedger resizes the record to fit the ledger and writes it. Growth is
// funded by payer, the surplus deposit of a shrink is refunded to payer.
func (s *Staking) saveLedger(payer chain.Address, ledger *Ledger, size uint64) error {
	addr := LedgerAddress(payer)
	owner, err := s.state.GetOwner(addr)
	if err != nil {
		return err
	}
	if owner != chain.StakingProgramID {
		if err := s.system.CreateAccount(payer, addr, Space(0), chain.StakingProgramID); err != nil {
			return errors.WithMessage(err, "create ledger")
		}
		size = Space(0)
	}

	newSize := Space(uint64(ledger.Len()))
	if newSize != size {
		if _, err := s.system.Resize(chain.StakingProgramID, payer, addr, newSize); err != nil {
			return errors.WithMessage(err, "resize ledger")
		}
	}
	if newSize < size {
		if _, err := s.system.Reclaim(chain.StakingProgramID, addr, payer); err != nil {
			return errors.WithMessage(err, "refund ledger deposit")
		}
	}
	return s.state.SetData(addr, ledger.Encode())
}
