// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/test/testnode"
	"github.com/vechain/nftstaker/tx"
)

func initTransactionServer(t *testing.T) (*testnode.Node, *httptest.Server) {
	n, err := testnode.New()
	require.NoError(t, err)
	t.Cleanup(n.Close)

	router := mux.NewRouter()
	New(n).Mount(router, "/transactions")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return n, ts
}

func httpPost(t *testing.T, url string, body any) ([]byte, int) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	r, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return r, res.StatusCode
}

func TestSendTransaction(t *testing.T) {
	n, ts := initTransactionServer(t)
	dev := genesis.DevAccounts()[0]

	trx := tx.MustSign(n.NewTx().Stake(n.Genesis().NFTMint(0), 3, 0).Build(), dev.PrivateKey)
	raw, err := EncodeRaw(trx)
	require.NoError(t, err)

	body, status := httpPost(t, ts.URL+"/transactions", raw)
	require.Equal(t, http.StatusOK, status, string(body))

	var receipt tx.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.Equal(t, trx.ID(), receipt.TxID)
	assert.Equal(t, dev.Address, receipt.Signer)
	assert.Equal(t, "stake", receipt.Op)
	assert.False(t, receipt.Reverted)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, tx.EventStaked, receipt.Events[0].Name)
	assert.Equal(t, uint8(3), receipt.Events[0].Tag)

	// same tx again is refused
	body, status = httpPost(t, ts.URL+"/transactions", raw)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "known tx")
}

func TestSendRevertedTransaction(t *testing.T) {
	n, ts := initTransactionServer(t)

	// the devnet's last nft carries a collection outside the whitelist
	fake := n.Genesis().NFTMint(len(n.Genesis().Config().NFTs) - 1)
	trx := tx.MustSign(n.NewTx().Stake(fake, 0, 0).Build(), genesis.DevAccounts()[2].PrivateKey)
	raw, err := EncodeRaw(trx)
	require.NoError(t, err)

	body, status := httpPost(t, ts.URL+"/transactions", raw)
	require.Equal(t, http.StatusOK, status, string(body))

	var receipt tx.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.True(t, receipt.Reverted)
	assert.Equal(t, string(staking.CodeIncorrectCollection), receipt.ErrorCode)
	assert.Empty(t, receipt.Events)
}

func TestSendBadTransaction(t *testing.T) {
	n, ts := initTransactionServer(t)

	tcs := []struct {
		name string
		body any
	}{
		{"not json", "bad"},
		{"unknown field", map[string]string{"rawTx": "0x00"}},
		{"bad hex", &RawTx{Raw: "0xzz"}},
		{"bad rlp", &RawTx{Raw: "0x0102"}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, status := httpPost(t, ts.URL+"/transactions", tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}

	t.Run("unsigned", func(t *testing.T) {
		raw, err := EncodeRaw(n.NewTx().Claim().Build())
		require.NoError(t, err)
		_, status := httpPost(t, ts.URL+"/transactions", raw)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("wrong chain tag", func(t *testing.T) {
		trx := tx.MustSign(n.NewTx().ChainTag(n.Genesis().ChainTag()+1).Claim().Build(), genesis.DevAccounts()[0].PrivateKey)
		raw, err := EncodeRaw(trx)
		require.NoError(t, err)
		body, status := httpPost(t, ts.URL+"/transactions", raw)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, string(body), "chain tag mismatch")
	})
}
