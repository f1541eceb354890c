// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/builtin/system"
	"github.com/vechain/nftstaker/builtin/token"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/tx"
	"github.com/vechain/nftstaker/xenv"
)

func TestInitializeVaultTwice(t *testing.T) {
	ts := newSetup(t)
	err := ts.staking(ts.admin).InitializeVault(ts.rewardMint)
	assert.True(t, errors.Is(err, system.ErrAccountExists))

	pool, err := token.New(ts.state).GetAccount(PoolAddress)
	require.NoError(t, err)
	assert.Equal(t, poolFunding, pool.Amount)
	assert.Equal(t, PoolAddress, pool.Owner)
}

func TestStake(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	nft := ts.mintNFT(alice, "CLB")
	before := ts.lamports(alice)

	require.NoError(t, ts.staking(alice).Stake(nft, 0, 0))

	ledger := ts.ledger(alice)
	owner, ok := ledger.Owner()
	assert.True(t, ok)
	assert.Equal(t, alice, owner)
	assert.Equal(t, []Entry{{CollectionTag: 0, AssetID: nft, StakedAt: startTime}}, ledger.Entries())

	assert.Zero(t, ts.tokenBalance(alice, nft))
	custody, err := token.New(ts.state).GetAccount(CustodyAddress(alice, nft))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), custody.Amount)
	assert.Equal(t, AuthorityAddress, custody.Owner)

	data, err := ts.state.GetData(LedgerAddress(alice))
	require.NoError(t, err)
	assert.Len(t, data, int(Space(1)))
	assert.Equal(t, chain.MinimumBalance(Space(1)), ts.lamports(LedgerAddress(alice)))

	paid := chain.MinimumBalance(Space(1)) + chain.MinimumBalance(token.AccountSize)
	assert.Equal(t, before-paid, ts.lamports(alice))
}

func TestStakeWhitelist(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")

	for i, symbol := range Collections {
		nft := ts.mintNFT(alice, symbol)
		require.NoError(t, ts.staking(alice).Stake(nft, uint8(i), uint64(i)), symbol)
	}
	assert.Equal(t, len(Collections), ts.ledger(alice).Len())

	for _, symbol := range []string{"", "clb", "CLBX", "SOL"} {
		nft := ts.mintNFT(alice, symbol)
		err := ts.staking(alice).Stake(nft, 0, uint64(len(Collections)))
		assert.True(t, errors.Is(err, ErrIncorrectCollection), symbol)
		assert.Equal(t, uint64(1), ts.tokenBalance(alice, nft), "asset stays with the caller")
	}
	assert.Equal(t, len(Collections), ts.ledger(alice).Len())
}

func TestStakeIncorrectSize(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	first := ts.mintNFT(alice, "UG")
	second := ts.mintNFT(alice, "UG")

	err := ts.staking(alice).Stake(first, 1, 1)
	assert.True(t, errors.Is(err, ErrIncorrectSize))
	_, size, err := ReadLedger(ts.state, alice)
	require.NoError(t, err)
	assert.Zero(t, size, "failed first stake leaves no record")
	assert.Equal(t, uint64(1), ts.tokenBalance(alice, first))

	require.NoError(t, ts.staking(alice).Stake(first, 1, 0))
	for _, expected := range []uint64{0, 2, 100} {
		err := ts.staking(alice).Stake(second, 1, expected)
		assert.True(t, errors.Is(err, ErrIncorrectSize))
	}
	require.NoError(t, ts.staking(alice).Stake(second, 1, 1))
}

func TestStakeMintNotFound(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")

	err := ts.staking(alice).Stake(chain.BytesToAddress([]byte("nowhere")), 0, 0)
	assert.True(t, errors.Is(err, ErrMintNotFound))

	err = ts.staking(alice).Stake(ts.rewardMint, 0, 0)
	assert.True(t, errors.Is(err, ErrMintNotFound), "fungible mint is rejected")
}

func TestStakeWithoutAsset(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	bob := ts.newUser("bob")
	nft := ts.mintNFT(bob, "GOTM")

	err := ts.staking(alice).Stake(nft, 0, 0)
	assert.True(t, errors.Is(err, token.ErrUninitialized))

	require.NoError(t, ts.staking(bob).Stake(nft, 0, 0))
	err = ts.staking(bob).Stake(nft, 0, 1)
	assert.True(t, errors.Is(err, token.ErrInsufficientFunds), "asset already in custody")
	assert.Equal(t, 1, ts.ledger(bob).Len())
}

func TestUnstake(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	nft := ts.mintNFT(alice, "CNDY")
	before := ts.lamports(alice)

	require.NoError(t, ts.staking(alice).Stake(nft, 4, 0))
	ts.advance(86400)

	reward, err := ts.staking(alice).Unstake(nft)
	require.NoError(t, err)
	assert.Equal(t, chain.EmissionRate, reward)
	assert.Equal(t, chain.EmissionRate, ts.rewardBalance(alice))
	assert.Equal(t, uint64(1), ts.tokenBalance(alice, nft))

	ledger := ts.ledger(alice)
	assert.Zero(t, ledger.Len())
	_, ok := ledger.Owner()
	assert.True(t, ok, "record survives with zero entries")

	data, err := ts.state.GetData(LedgerAddress(alice))
	require.NoError(t, err)
	assert.Len(t, data, int(Space(0)))
	assert.Equal(t, chain.MinimumBalance(Space(0)), ts.lamports(LedgerAddress(alice)), "surplus deposit refunded")

	exists, err := ts.state.Exists(CustodyAddress(alice, nft))
	require.NoError(t, err)
	assert.False(t, exists, "custody closed")
	assert.Equal(t, before-chain.MinimumBalance(Space(0)), ts.lamports(alice))
}

func TestUnstakeNotFound(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	nft := ts.mintNFT(alice, "CLB")
	other := ts.mintNFT(alice, "CLB")
	require.NoError(t, ts.staking(alice).Stake(nft, 0, 0))

	_, err := ts.staking(alice).Unstake(other)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 1, ts.ledger(alice).Len())
}

func TestUnstakeKeepsOrder(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	var nfts []chain.Address
	for i := range 3 {
		nft := ts.mintNFT(alice, "GREATGOATS")
		nfts = append(nfts, nft)
		require.NoError(t, ts.staking(alice).Stake(nft, uint8(i), uint64(i)))
		ts.advance(10)
	}
	original := ts.ledger(alice).Entries()

	_, err := ts.staking(alice).Unstake(nfts[1])
	require.NoError(t, err)
	assert.Equal(t, []Entry{original[0], original[2]}, ts.ledger(alice).Entries())
}

func TestClaim(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	first := ts.mintNFT(alice, "CLB")
	second := ts.mintNFT(alice, "UG")

	require.NoError(t, ts.staking(alice).Stake(first, 0, 0))
	ts.advance(43200)
	require.NoError(t, ts.staking(alice).Stake(second, 1, 1))
	ts.advance(43200)

	env := xenv.New(ts.state, &xenv.ClockContext{Time: ts.now}, &xenv.TransactionContext{Signer: alice})
	total, err := New(env).Claim()
	require.NoError(t, err)
	assert.Equal(t, chain.EmissionRate+chain.EmissionRate/2, total)
	assert.Equal(t, total, ts.rewardBalance(alice))

	events := env.Events()
	require.Len(t, events, 2)
	assert.Equal(t, tx.EventClaimed, events[0].Name)
	assert.Equal(t, first, events[0].Asset)
	assert.Equal(t, chain.EmissionRate, events[0].Amount)
	assert.Equal(t, chain.EmissionRate/2, events[1].Amount)

	for _, e := range ts.ledger(alice).Entries() {
		assert.Equal(t, ts.now, e.StakedAt)
	}

	again, err := ts.staking(alice).Claim()
	require.NoError(t, err)
	assert.Zero(t, again)
	assert.Equal(t, total, ts.rewardBalance(alice))
}

func TestClaimEmptyLedger(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	nft := ts.mintNFT(alice, "CLB")
	require.NoError(t, ts.staking(alice).Stake(nft, 0, 0))
	_, err := ts.staking(alice).Unstake(nft)
	require.NoError(t, err)

	total, err := ts.staking(alice).Claim()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestClaimIsAtomic(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	first := ts.mintNFT(alice, "CLB")
	second := ts.mintNFT(alice, "CLB")
	require.NoError(t, ts.staking(alice).Stake(first, 0, 0))
	require.NoError(t, ts.staking(alice).Stake(second, 0, 1))

	// the pool covers the first payout but not both
	ts.advance(int64(chain.SecondsPerDay) * 150_000)
	before := ts.ledger(alice).Entries()

	env := xenv.New(ts.state, &xenv.ClockContext{Time: ts.now}, &xenv.TransactionContext{Signer: alice})
	_, err := New(env).Claim()
	assert.True(t, errors.Is(err, token.ErrInsufficientFunds))
	assert.Empty(t, env.Events())
	assert.Zero(t, ts.rewardBalance(alice))
	assert.Equal(t, before, ts.ledger(alice).Entries())
}

func TestUnauthorized(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	mallory := ts.newUser("mallory")
	nft := ts.mintNFT(alice, "CLB")
	require.NoError(t, ts.staking(alice).Stake(nft, 0, 0))

	_, err := ts.staking(mallory).Unstake(nft)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	_, err = ts.staking(mallory).Claim()
	assert.True(t, errors.Is(err, ErrUnauthorized))

	ledger := ts.ledger(alice)
	err = ledger.EnsureOwner(mallory)
	assert.True(t, errors.Is(err, ErrUnauthorized), "stake on an owned record")
	assert.NoError(t, ledger.EnsureOwner(alice))
	assert.Equal(t, 1, ts.ledger(alice).Len())
}

func TestLedgerLengthTracksOperations(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")

	var staked []chain.Address
	stakes, unstakes := 0, 0
	for round := range 6 {
		nft := ts.mintNFT(alice, Collections[round%len(Collections)])
		require.NoError(t, ts.staking(alice).Stake(nft, uint8(round), uint64(len(staked))))
		staked = append(staked, nft)
		stakes++
		if round%2 == 1 {
			_, err := ts.staking(alice).Unstake(staked[0])
			require.NoError(t, err)
			staked = staked[1:]
			unstakes++
		}
		ledger := ts.ledger(alice)
		assert.Equal(t, stakes-unstakes, ledger.Len())
		data, err := ts.state.GetData(LedgerAddress(alice))
		require.NoError(t, err)
		assert.Len(t, data, int(Space(uint64(ledger.Len()))))
	}
}

func TestPendingRewards(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	nft := ts.mintNFT(alice, "CLB")
	require.NoError(t, ts.staking(alice).Stake(nft, 0, 0))

	rewards, total := PendingRewards(ts.ledger(alice), startTime+86400*2)
	assert.Equal(t, []uint64{2 * chain.EmissionRate}, rewards)
	assert.Equal(t, 2*chain.EmissionRate, total)

	ledger, _, err := ReadLedger(ts.state, ts.newUser("bob"))
	require.NoError(t, err)
	assert.Nil(t, ledger)
}
