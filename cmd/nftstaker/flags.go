// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaker/log"
)

var (
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis yaml file, the built-in devnet if empty",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for state and event databases",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the state database",
		Value: 512,
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8680",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of logs returned by /logs API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	skipNTPFlag = cli.BoolFlag{
		Name:  "skip-ntp",
		Usage: "skip the clock offset check against NTP servers at startup",
	}

	// sign command
	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "hex encoded private key of the signer",
	}
	devAccountFlag = cli.IntFlag{
		Name:  "dev-account",
		Value: -1,
		Usage: "sign with the n-th devnet account instead of --key",
	}
	chainTagFlag = cli.IntFlag{
		Name:  "chain-tag",
		Value: -1,
		Usage: "chain tag of the target network, the genesis one if unset",
	}
	nonceFlag = cli.Uint64Flag{
		Name:  "nonce",
		Usage: "transaction nonce, random if unset",
	}
	opFlag = cli.StringFlag{
		Name:  "op",
		Usage: "instruction (initializeVault|createCustodyAccount|fund|stake|unstake|claim)",
	}
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "base58 mint address the instruction applies to",
	}
	tagFlag = cli.UintFlag{
		Name:  "tag",
		Usage: "collection tag recorded by stake",
	}
	expectedCountFlag = cli.Uint64Flag{
		Name:  "expected-count",
		Usage: "entry count the ledger must hold before stake",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "reward units moved by fund",
	}
)
