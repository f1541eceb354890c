// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/builtin/metadata"
	"github.com/vechain/nftstaker/builtin/token"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/xenv"
)

const (
	startTime    int64  = 1_700_000_000
	poolFunding  uint64 = 1_000_000 * 1_000_000_000
	userLamports uint64 = 10_000_000_000
)

type testSetup struct {
	t          *testing.T
	state      *state.State
	now        int64
	admin      chain.Address
	rewardMint chain.Address
	nonce      int
}

func newSetup(t *testing.T) *testSetup {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	stater, err := state.NewStater(db, 0)
	require.NoError(t, err)

	ts := &testSetup{
		t:          t,
		state:      stater.NewState(),
		now:        startTime,
		admin:      chain.BytesToAddress([]byte("admin")),
		rewardMint: chain.BytesToAddress([]byte("reward-mint")),
	}
	require.NoError(t, ts.state.SetBalance(ts.admin, 1_000*userLamports))

	tk := token.New(ts.state)
	require.NoError(t, tk.InitializeMint(ts.admin, ts.rewardMint, chain.RewardDecimals, ts.admin))
	ata, err := tk.InitializeAssociatedAccount(ts.admin, ts.admin, ts.rewardMint)
	require.NoError(t, err)
	require.NoError(t, tk.MintTo(ts.rewardMint, ata, ts.admin, 2*poolFunding))

	require.NoError(t, ts.staking(ts.admin).InitializeVault(ts.rewardMint))
	require.NoError(t, ts.staking(ts.admin).Fund(poolFunding))
	return ts
}

// staking returns a program instance invoked by caller at the current time.
func (ts *testSetup) staking(caller chain.Address) *Staking {
	env := xenv.New(ts.state, &xenv.ClockContext{Time: ts.now}, &xenv.TransactionContext{Signer: caller})
	return New(env)
}

func (ts *testSetup) advance(seconds int64) {
	ts.now += seconds
}

// newUser funds a user and creates its reward holding account.
func (ts *testSetup) newUser(name string) chain.Address {
	user := chain.BytesToAddress([]byte(name))
	require.NoError(ts.t, ts.state.SetBalance(user, userLamports))
	require.NoError(ts.t, ts.staking(user).CreateCustodyAccount(ts.rewardMint))
	return user
}

// mintNFT issues a single unit asset of the collection to holder.
func (ts *testSetup) mintNFT(holder chain.Address, symbol string) chain.Address {
	ts.nonce++
	mint := chain.BytesToAddress(chain.Blake2b([]byte("nft"), []byte{byte(ts.nonce)}).Bytes())
	tk := token.New(ts.state)
	require.NoError(ts.t, tk.InitializeMint(ts.admin, mint, 0, ts.admin))
	_, err := metadata.Create(ts.state, ts.admin, ts.admin, metadata.Metadata{Mint: mint, Name: "asset", Symbol: symbol})
	require.NoError(ts.t, err)
	ata, err := tk.InitializeAssociatedAccount(ts.admin, holder, mint)
	require.NoError(ts.t, err)
	require.NoError(ts.t, tk.MintTo(mint, ata, ts.admin, 1))
	return mint
}

func (ts *testSetup) tokenBalance(owner, mint chain.Address) uint64 {
	acc, err := token.New(ts.state).GetAccount(token.AssociatedAddress(owner, mint))
	require.NoError(ts.t, err)
	return acc.Amount
}

func (ts *testSetup) rewardBalance(owner chain.Address) uint64 {
	return ts.tokenBalance(owner, ts.rewardMint)
}

func (ts *testSetup) lamports(addr chain.Address) uint64 {
	bal, err := ts.state.GetBalance(addr)
	require.NoError(ts.t, err)
	return bal
}

func (ts *testSetup) ledger(owner chain.Address) *Ledger {
	ledger, _, err := ReadLedger(ts.state, owner)
	require.NoError(ts.t, err)
	require.NotNil(ts.t, ledger)
	return ledger
}
