// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/metrics"
	"github.com/vechain/nftstaker/test/testnode"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func initAPIServer(t *testing.T, opts Options) (*testnode.Node, *httptest.Server) {
	n, err := testnode.New()
	require.NoError(t, err)
	t.Cleanup(n.Close)

	handler, closeFn := New(n.Node, opts)
	t.Cleanup(closeFn)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler())
	mux.Handle("/", handler)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return n, ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	if err != nil {
		t.Fatal(err)
	}
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}

func scrape(t *testing.T, url string) map[string]*dto.MetricFamily {
	body, status := httpGet(t, url+"/metrics")
	require.Equal(t, http.StatusOK, status)
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)
	return families
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestMetricsMiddleware(t *testing.T) {
	_, ts := initAPIServer(t, Options{AllowedOrigins: "*", LogsLimit: 100, EnableMetrics: true})
	dev := genesis.DevAccounts()[0]

	httpGet(t, ts.URL+"/accounts/"+dev.Address.String())
	httpGet(t, ts.URL+"/accounts/0OIl")
	_, status := httpGet(t, ts.URL+"/ledgers/"+dev.Address.String())
	assert.Equal(t, http.StatusNotFound, status)

	families := scrape(t, ts.URL)
	family, ok := families["nftstaker_api_request_count"]
	require.True(t, ok)

	codes := make(map[string]float64)
	for _, m := range family.GetMetric() {
		codes[labelValue(m, "name")+" "+labelValue(m, "code")] += m.GetCounter().GetValue()
		assert.Equal(t, http.MethodGet, labelValue(m, "method"))
	}
	assert.Equal(t, float64(1), codes["GET /accounts/{address} 200"])
	assert.Equal(t, float64(1), codes["GET /accounts/{address} 400"])
	assert.Equal(t, float64(1), codes["GET /ledgers/{owner} 404"])
	assert.Contains(t, families, "nftstaker_api_duration_ms")
}

func TestWebsocketMetrics(t *testing.T) {
	_, ts := initAPIServer(t, Options{AllowedOrigins: "*", LogsLimit: 100, EnableMetrics: true})

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/subscriptions/event"
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	resp.Body.Close()
	defer conn.Close()

	family, ok := scrape(t, ts.URL)["nftstaker_api_active_websocket_count"]
	require.True(t, ok)
	var active float64
	for _, m := range family.GetMetric() {
		if labelValue(m, "subject") == "event" {
			active += m.GetGauge().GetValue()
		}
	}
	assert.GreaterOrEqual(t, active, float64(1))
}

func TestResponseHeaders(t *testing.T) {
	n, ts := initAPIServer(t, Options{AllowedOrigins: "https://app.example", LogsLimit: 100})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/node/info", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, n.Genesis().ID().String(), res.Header.Get(genesisIDHeader))
	assert.Equal(t, "https://app.example", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(log.NewHandler(&buf, log.LegacyLevelInfo, true, false))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if r.Method == http.MethodPost {
			assert.Equal(t, `{"raw":"0x00"}`, string(body), "body is restored for the handler")
		} else {
			assert.Empty(t, body)
		}
		w.WriteHeader(http.StatusAccepted)
	})
	handler := RequestLoggerHandler(inner, logger)

	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"raw":"0x00"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	id := rec.Header().Get(requestIDHeader)
	assert.NotEmpty(t, id)

	out := buf.String()
	assert.Contains(t, out, "API Request")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "/transactions")
	assert.Contains(t, out, `{\"raw\":\"0x00\"}`)

	// a caller supplied id is kept
	buf.Reset()
	req = httptest.NewRequest(http.MethodGet, "/node/info", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(requestIDHeader))
	assert.Contains(t, buf.String(), "abc")
}
