// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstaker/api/accounts"
	"github.com/vechain/nftstaker/api/events"
	"github.com/vechain/nftstaker/api/ledgers"
	apinode "github.com/vechain/nftstaker/api/node"
	"github.com/vechain/nftstaker/api/subscriptions"
	"github.com/vechain/nftstaker/api/transactions"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/node"
)

var logger = log.WithContext("pkg", "api")

const genesisIDHeader = "X-Genesis-Id"

type Options struct {
	AllowedOrigins  string
	LogsLimit       uint64
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router
func New(n *node.Node, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(n).
		Mount(router, "/accounts")
	ledgers.New(n).
		Mount(router, "/ledgers")
	events.New(n.LogDB(), opts.LogsLimit).
		Mount(router, "/logs/event")
	transactions.New(n).
		Mount(router, "/transactions")
	apinode.New(n).
		Mount(router, "/node")
	subs := subscriptions.New(n, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	genesisID := n.Genesis().ID().String()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(genesisIDHeader, genesisID)
			next.ServeHTTP(w, r)
		})
	})

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id", "x-request-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id", "x-request-id"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
