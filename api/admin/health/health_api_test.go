// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/state"
	"github.com/vechain/nftstaker/test/testnode"
	"github.com/vechain/nftstaker/tx"
)

// emptyNetwork has no genesis applied and never executes anything.
type emptyNetwork struct {
	stater *state.Stater
}

func (e *emptyNetwork) State() *state.State { return e.stater.NewState() }

func (e *emptyNetwork) SubscribeReceipts(chan *tx.Receipt) event.Subscription {
	return event.NewSubscription(func(quit <-chan struct{}) error {
		<-quit
		return nil
	})
}

func initAPIServer(t *testing.T, nw Network) (*Health, *httptest.Server) {
	h := New(nw)
	t.Cleanup(h.Close)

	router := mux.NewRouter()
	NewAPI(h).Mount(router, "/health")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return h, ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestHealth(t *testing.T) {
	n, err := testnode.New()
	require.NoError(t, err)
	t.Cleanup(n.Close)

	h, ts := initAPIServer(t, n)

	var status Status
	body, code := httpGet(t, ts.URL+"/health")
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)
	assert.True(t, status.VaultInitialized)
	assert.Nil(t, status.LastReceipt)

	dev := genesis.DevAccounts()[0]
	receipt, err := n.Execute(n.NewTx().Stake(n.Genesis().NFTMint(0), 0, 0), dev.PrivateKey)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		s, err := h.Status()
		return err == nil && s.LastReceipt != nil && s.LastReceipt.TxID == receipt.TxID
	}, 5*time.Second, 10*time.Millisecond)

	body, code = httpGet(t, ts.URL+"/health")
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, status.LastReceipt)
	assert.Equal(t, receipt.TxID, status.LastReceipt.TxID)
	assert.NotNil(t, status.LastReceipt.Timestamp)
}

func TestHealthVaultNotInitialized(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	stater, err := state.NewStater(db, 0)
	require.NoError(t, err)

	_, ts := initAPIServer(t, &emptyNetwork{stater})

	var status Status
	body, code := httpGet(t, ts.URL+"/health")
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, status.Healthy)
	assert.False(t, status.VaultInitialized)
}
