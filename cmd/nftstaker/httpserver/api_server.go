// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/nftstaker/api"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/node"
)

var logger = log.WithContext("pkg", "httpserver")

// StartAPIServer serves the node API on addr.
// The returned func stops accepting requests, closes websocket subscriptions and waits for the server to exit.
func StartAPIServer(addr string, n *node.Node, opts api.Options, timeout time.Duration) (string, func(), error) {
	handler, closeAPI := api.New(n, opts)

	var h http.Handler = handler
	if timeout > 0 {
		h = handleTimeout(h, timeout)
	}
	url, closeSrv, err := serve("API", addr, h)
	if err != nil {
		closeAPI()
		return "", nil, err
	}
	return url, func() {
		closeAPI()
		closeSrv()
	}, nil
}

// handleTimeout bounds plain requests by timeout. Websocket upgrades are passed through untouched.
func handleTimeout(h http.Handler, timeout time.Duration) http.Handler {
	bounded := http.TimeoutHandler(h, timeout, "request timeout")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") != "" {
			h.ServeHTTP(w, r)
			return
		}
		bounded.ServeHTTP(w, r)
	})
}

func serve(name, addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen %v addr [%v]", name, addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("server stopped", "name", name, "err", err)
			return err
		}
		return nil
	})
	return "http://" + listener.Addr().String(), func() {
		srv.Close()
		g.Wait()
	}, nil
}
