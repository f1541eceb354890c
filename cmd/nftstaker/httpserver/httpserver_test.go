// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/api"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/metrics"
	"github.com/vechain/nftstaker/test/testnode"
)

func get(t *testing.T, url string) (string, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body), res.StatusCode
}

func TestStartAPIServer(t *testing.T) {
	n, err := testnode.New()
	require.NoError(t, err)
	defer n.Close()

	url, closeFn, err := StartAPIServer("localhost:0", n.Node, api.Options{AllowedOrigins: "*", LogsLimit: 10}, time.Second)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://"), url)

	body, status := get(t, url+"/node/info")
	require.Equal(t, http.StatusOK, status)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	assert.Equal(t, "devnet", info["name"])

	closeFn()
	_, err = http.Get(url + "/node/info") //#nosec G107
	assert.Error(t, err)
}

func TestStartAPIServerBadAddr(t *testing.T) {
	n, err := testnode.New()
	require.NoError(t, err)
	defer n.Close()

	_, _, err = StartAPIServer("not an address", n.Node, api.Options{}, 0)
	assert.ErrorContains(t, err, "listen API addr")
}

func TestStartMetricsServer(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("httpserver_test_count").Add(3)

	url, closeFn, err := StartMetricsServer("localhost:0")
	require.NoError(t, err)
	defer closeFn()
	assert.True(t, strings.HasSuffix(url, "/metrics"), url)

	body, status := get(t, url)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "nftstaker_httpserver_test_count 3")
}

func TestHandleTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	h := handleTimeout(slow, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// upgrades are not bounded
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartAdminServer(t *testing.T) {
	n, err := testnode.New()
	require.NoError(t, err)
	defer n.Close()

	var logLevel slog.LevelVar
	logLevel.Set(log.LevelInfo)

	url, closeFn, err := StartAdminServer("localhost:0", &logLevel, n.Node)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "/admin"), url)

	body, status := get(t, url+"/loglevel")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"currentLevel":"info"}`, body)

	body, status = get(t, url+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"healthy":true`)

	closeFn()
	_, err = http.Get(url + "/health") //#nosec G107
	assert.Error(t, err)
}
