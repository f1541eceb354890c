// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaker/api"
	"github.com/vechain/nftstaker/api/transactions"
	"github.com/vechain/nftstaker/cmd/nftstaker/httpserver"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/metrics"
	"github.com/vechain/nftstaker/node"
	"github.com/vechain/nftstaker/tx"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "nftstaker",
		Usage:     "Node of the NFT staking program",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			skipNTPFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "sign",
				Usage: "build and sign a raw transaction for POST /transactions",
				Flags: []cli.Flag{
					genesisFlag,
					keyFlag,
					devAccountFlag,
					chainTagFlag,
					nonceFlag,
					opFlag,
					mintFlag,
					tagFlag,
					expectedCountFlag,
					amountFlag,
				},
				Action: signAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	instanceDir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return err
	}

	mainDB, err := openMainDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	logDB, err := openLogDB(instanceDir)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	// 64 cached accounts per MB of cache
	n, err := node.New(mainDB, logDB, gene, node.Options{CacheSize: ctx.Int(cacheFlag.Name) * 64})
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing node..."); n.Close() }()

	apiURL, stopAPI, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		n,
		api.Options{
			AllowedOrigins:  ctx.String(apiCorsFlag.Name),
			LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
			EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
			EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		},
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		url, stopMetrics, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); stopMetrics() }()
		metricsURL = url
	}

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, stopAdmin, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), &logLevel, n)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); stopAdmin() }()
		adminURL = url
	}

	if !ctx.Bool(skipNTPFlag.Name) {
		go checkClockOffset()
	}

	fmt.Print(startupMessage(n, instanceDir, apiURL, metricsURL, adminURL))

	<-exitSignal.Done()
	return nil
}

func signAction(ctx *cli.Context) error {
	key, err := signingKey(ctx)
	if err != nil {
		return err
	}
	ins, err := parseInstruction(ctx)
	if err != nil {
		return err
	}

	tag := ctx.Int(chainTagFlag.Name)
	if tag < 0 {
		gene, err := selectGenesis(ctx)
		if err != nil {
			return err
		}
		tag = int(gene.ChainTag())
	}
	if tag > 0xff {
		return fmt.Errorf("chain tag %d out of range", tag)
	}

	trx, err := tx.Sign(new(tx.Builder).
		ChainTag(byte(tag)).
		Nonce(txNonce(ctx)).
		Instruction(ins).
		Build(), key)
	if err != nil {
		return err
	}
	raw, err := transactions.EncodeRaw(trx)
	if err != nil {
		return err
	}
	out, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func startupMessage(n *node.Node, instanceDir, apiURL, metricsURL, adminURL string) string {
	gene := n.Genesis()
	var b strings.Builder
	fmt.Fprintf(&b, `Starting %v
    Network     [ %v %v %v ]
    Instance dir[ %v ]
    API portal  [ %v ]
`,
		fullVersion(),
		gene.Name(), gene.ID(), gene.ChainTag(),
		instanceDir,
		apiURL)
	if metricsURL != "" {
		fmt.Fprintf(&b, "    Metrics     [ %v ]\n", metricsURL)
	}
	if adminURL != "" {
		fmt.Fprintf(&b, "    Admin       [ %v ]\n", adminURL)
	}
	return b.String()
}
