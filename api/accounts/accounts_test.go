// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/builtin/metadata"
	"github.com/vechain/nftstaker/builtin/token"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/test/testnode"
)

var ts *httptest.Server

func initAccountServer(t *testing.T) *testnode.Node {
	n, err := testnode.New()
	require.NoError(t, err)
	t.Cleanup(n.Close)

	router := mux.NewRouter()
	New(n).Mount(router, "/accounts")
	ts = httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return n
}

func getAccount(t *testing.T, addr chain.Address) *Account {
	res, err := http.Get(ts.URL + "/accounts/" + addr.String()) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	var acc Account
	require.NoError(t, json.Unmarshal(body, &acc))
	return &acc
}

func TestGetAccount(t *testing.T) {
	n := initAccountServer(t)
	gene := n.Genesis()
	dev := genesis.DevAccounts()[0]

	t.Run("wallet", func(t *testing.T) {
		acc := getAccount(t, dev.Address)
		assert.Equal(t, dev.Address, acc.Address)
		assert.Equal(t, gene.Config().Accounts[0].Lamports, acc.Lamports)
		assert.True(t, acc.Owner.IsZero())
		assert.Empty(t, acc.Program)
		assert.Zero(t, acc.DataSize)
		assert.Nil(t, acc.Mint)
		assert.Nil(t, acc.Token)
	})

	t.Run("mint", func(t *testing.T) {
		acc := getAccount(t, gene.RewardMint())
		assert.Equal(t, "token", acc.Program)
		assert.Equal(t, token.MintSize, acc.DataSize)
		assert.True(t, acc.RentExempt)
		require.NotNil(t, acc.Mint)
		assert.Equal(t, gene.Config().RewardMint.Supply, acc.Mint.Supply)
		assert.Equal(t, gene.Config().RewardMint.Decimals, acc.Mint.Decimals)
		assert.Equal(t, genesis.Issuer, acc.Mint.Authority)
	})

	t.Run("token account", func(t *testing.T) {
		acc := getAccount(t, token.AssociatedAddress(dev.Address, gene.NFTMint(0)))
		assert.Equal(t, "token", acc.Program)
		require.NotNil(t, acc.Token)
		assert.Equal(t, gene.NFTMint(0), acc.Token.Mint)
		assert.Equal(t, dev.Address, acc.Token.Owner)
		assert.Equal(t, uint64(1), acc.Token.Amount)
	})

	t.Run("metadata", func(t *testing.T) {
		acc := getAccount(t, metadata.Address(gene.NFTMint(0)))
		assert.Equal(t, "metadata", acc.Program)
		require.NotNil(t, acc.Metadata)
		assert.Equal(t, "CLB", acc.Metadata.Symbol)
		assert.Equal(t, gene.Config().NFTs[0].Name, acc.Metadata.Name)
		assert.Equal(t, gene.NFTMint(0), acc.Metadata.Mint)
	})

	t.Run("missing", func(t *testing.T) {
		acc := getAccount(t, chain.BytesToAddress([]byte("nobody")))
		assert.Zero(t, acc.Lamports)
		assert.Zero(t, acc.DataSize)
	})

	t.Run("bad address", func(t *testing.T) {
		res, err := http.Get(ts.URL + "/accounts/0OIl") //#nosec G107
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestGetData(t *testing.T) {
	n := initAccountServer(t)
	mint := n.Genesis().RewardMint()

	res, err := http.Get(ts.URL + "/accounts/" + mint.String() + "/data") //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var data Data
	require.NoError(t, json.NewDecoder(res.Body).Decode(&data))
	raw, err := hexutil.Decode(data.Data)
	require.NoError(t, err)

	want, err := n.State().GetData(mint)
	require.NoError(t, err)
	assert.Equal(t, want, raw)
}
