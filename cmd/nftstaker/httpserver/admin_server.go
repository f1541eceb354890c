// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"log/slog"

	"github.com/vechain/nftstaker/api/admin"
	"github.com/vechain/nftstaker/api/admin/health"
)

// StartAdminServer serves the log level and health endpoints under /admin.
func StartAdminServer(addr string, logLevel *slog.LevelVar, nw health.Network) (string, func(), error) {
	healthStatus := health.New(nw)

	url, closeFn, err := serve("admin", addr, admin.New(logLevel, healthStatus))
	if err != nil {
		healthStatus.Close()
		return "", nil, err
	}
	return url + "/admin", func() {
		closeFn()
		healthStatus.Close()
	}, nil
}
