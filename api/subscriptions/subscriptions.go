// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaker/api/utils"
	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/tx"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	receiptBufferSize = 64
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 7) / 10
)

// Feeder publishes the receipt of every executed transaction.
type Feeder interface {
	SubscribeReceipts(ch chan *tx.Receipt) event.Subscription
}

type Subscriptions struct {
	feeder   Feeder
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup

	mu       sync.Mutex
	stopping bool
}

var errClosed = errors.New("subscriptions closed")

func New(feeder Feeder, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		feeder: feeder,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

func parseAddressQuery(req *http.Request, name string) (*chain.Address, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	addr, err := utils.ParseAddress(name, s)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *Subscriptions) handleSubscribeEvent(w http.ResponseWriter, req *http.Request) error {
	var (
		filter EventFilter
		err    error
	)
	if filter.Owner, err = parseAddressQuery(req, "owner"); err != nil {
		return err
	}
	if filter.Asset, err = parseAddressQuery(req, "asset"); err != nil {
		return err
	}
	if name := req.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}
	return s.serve(w, req, filter.messages)
}

func (s *Subscriptions) handleSubscribeReceipt(w http.ResponseWriter, req *http.Request) error {
	signer, err := parseAddressQuery(req, "signer")
	if err != nil {
		return err
	}
	return s.serve(w, req, func(receipt *tx.Receipt) []any {
		if signer != nil && *signer != receipt.Signer {
			return nil
		}
		return []any{receipt}
	})
}

// serve upgrades the connection and pushes what convert derives from each receipt.
func (s *Subscriptions) serve(w http.ResponseWriter, req *http.Request, convert func(*tx.Receipt) []any) error {
	if !s.track() {
		return utils.HTTPError(errClosed, http.StatusServiceUnavailable)
	}
	defer s.wg.Done()

	// subscribe before the handshake completes so no receipt is missed
	ch := make(chan *tx.Receipt, receiptBufferSize)
	sub := s.feeder.SubscribeReceipts(ch)
	defer sub.Unsubscribe()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already responded
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	if err := s.pipe(conn, ch, sub, convert); err != nil {
		logger.Debug("subscription closed", "remote", req.RemoteAddr, "err", err)
	}
	return nil
}

func (s *Subscriptions) pipe(conn *websocket.Conn, ch chan *tx.Receipt, sub event.Subscription, convert func(*tx.Receipt) []any) error {
	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case receipt := <-ch:
			for _, msg := range convert(receipt) {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					return err
				}
			}
		case err := <-sub.Err():
			// nil once the node stops publishing
			s.closeConn(conn)
			return err
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.done:
			s.closeConn(conn)
			return nil
		}
	}
}

func (s *Subscriptions) closeConn(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// track registers a connection about to be served, false once Close was called.
func (s *Subscriptions) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopping {
		return false
	}
	s.wg.Add(1)
	return true
}

// Close terminates every open subscription and refuses new ones.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	if !s.stopping {
		s.stopping = true
		close(s.done)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("WS /subscriptions/event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvent))
	sub.Path("/receipt").
		Methods(http.MethodGet).
		Name("WS /subscriptions/receipt").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeReceipt))
}
