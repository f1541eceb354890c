// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstaker/log"
)

func TestLogLevelHandler(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		body          any
		status        int
		level         string
		applied       slog.Level
		errorContains string
	}{
		{"get current level", http.MethodGet, nil, http.StatusOK, "info", log.LevelInfo, ""},
		{"set debug", http.MethodPost, map[string]string{"level": "debug"}, http.StatusOK, "debug", log.LevelDebug, ""},
		{"set crit", http.MethodPost, map[string]string{"level": "crit"}, http.StatusOK, "crit", log.LevelCrit, ""},
		{"invalid level", http.MethodPost, map[string]string{"level": "loud"}, http.StatusBadRequest, "", log.LevelInfo, "Invalid verbosity level"},
		{"unknown field", http.MethodPost, map[string]string{"lvl": "debug"}, http.StatusBadRequest, "", log.LevelInfo, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logLevel slog.LevelVar
			logLevel.Set(log.LevelInfo)

			var body []byte
			if tt.body != nil {
				var err error
				body, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}
			req := httptest.NewRequest(tt.method, "/admin/loglevel", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			router := mux.NewRouter()
			New(&logLevel).Mount(router, "/admin/loglevel")
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.applied, logLevel.Level())
			if tt.level != "" {
				var res Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
				assert.Equal(t, tt.level, res.CurrentLevel)
			} else {
				assert.Contains(t, strings.TrimSpace(rec.Body.String()), tt.errorContains)
			}
		})
	}
}
