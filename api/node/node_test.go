// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/builtin/staking"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/test/testnode"
)

func TestNodeInfo(t *testing.T) {
	n, err := testnode.New()
	require.NoError(t, err)
	defer n.Close()

	router := mux.NewRouter()
	New(n).Mount(router, "/node")
	ts := httptest.NewServer(router)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/node/info") //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var info Info
	require.NoError(t, json.NewDecoder(res.Body).Decode(&info))
	gene := n.Genesis()
	assert.Equal(t, gene.Name(), info.Name)
	assert.Equal(t, gene.ID(), info.GenesisID)
	assert.Equal(t, gene.ChainTag(), info.ChainTag)
	assert.Equal(t, gene.LaunchTime(), info.Time)
	assert.Equal(t, gene.RewardMint(), info.RewardMint)
	assert.Equal(t, staking.PoolAddress, info.RewardPool)
	assert.Equal(t, chain.StakingProgramID, info.Program)
	assert.Equal(t, staking.Collections, info.Collections)
	assert.Equal(t, chain.EmissionRate, info.EmissionRate)
}
