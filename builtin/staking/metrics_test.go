// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/metrics"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func entryChanges(t *testing.T) map[string]float64 {
	rec := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(rec.Body)
	require.NoError(t, err)

	changes := make(map[string]float64)
	if family, ok := families["nftstaker_staking_entry_changes"]; ok {
		for _, m := range family.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "change" {
					changes[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	return changes
}

func TestEntryChangeMetrics(t *testing.T) {
	ts := newSetup(t)
	alice := ts.newUser("alice")
	nft := ts.mintNFT(alice, "CLB")
	before := entryChanges(t)

	// reverted operations leave the counters untouched
	assert.Error(t, ts.staking(alice).Stake(nft, 0, 1))
	_, err := ts.staking(alice).Unstake(nft)
	assert.Error(t, err)
	assert.Equal(t, before, entryChanges(t))

	require.NoError(t, ts.staking(alice).Stake(nft, 0, 0))
	ts.advance(10)
	_, err = ts.staking(alice).Unstake(nft)
	require.NoError(t, err)

	after := entryChanges(t)
	assert.Equal(t, before["added"]+1, after["added"])
	assert.Equal(t, before["removed"]+1, after["removed"])
}
