// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaker/chain"
	"github.com/vechain/nftstaker/genesis"
	"github.com/vechain/nftstaker/log"
	"github.com/vechain/nftstaker/logdb"
	"github.com/vechain/nftstaker/lvldb"
	"github.com/vechain/nftstaker/tx"
)

// maxClockOffset is the drift tolerated before staking times become visibly off.
const maxClockOffset = 5 * time.Second

// logLevel is shared with the admin server.
var logLevel slog.LevelVar

func initLogger(ctx *cli.Context) {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	verbosity := ctx.Uint64(verbosityFlag.Name)
	if verbosity > math.MaxInt32 {
		verbosity = log.LegacyLevelTrace
	}
	logLevel.Set(log.FromLegacyLevel(int(verbosity)))
	log.SetDefault(log.NewLevelHandler(os.Stderr, &logLevel, ctx.Bool(jsonLogsFlag.Name), useColor))
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.nftstaker")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.nftstaker")
		default:
			return filepath.Join(home, ".org.vechain.nftstaker")
		}
	}
	return ""
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	config, err := genesis.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return genesis.New(name, config)
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return "", err
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openMainDB(ctx *cli.Context, dir string) (*lvldb.LevelDB, error) {
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache, err := suggestFDCache()
	if err != nil {
		return nil, err
	}
	logger.Debug("fd cache", "n", fdCache)

	path := filepath.Join(dir, "main.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "open main database [%v]", path)
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 128 {
		sizeMB = 128
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() (int, error) {
	limit, err := fdlimit.Current()
	if err != nil {
		return 0, errors.Wrap(err, "get fd limit")
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}
	return min(limit/2, 5120), nil
}

func openLogDB(dir string) (*logdb.LogDB, error) {
	path := filepath.Join(dir, "logs.db")
	db, err := logdb.New(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "open log database [%v]", path)
	}
	return db, nil
}

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > maxClockOffset || resp.ClockOffset < -maxClockOffset {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func signingKey(ctx *cli.Context) (*ecdsa.PrivateKey, error) {
	if i := ctx.Int(devAccountFlag.Name); i >= 0 {
		accs := genesis.DevAccounts()
		if i >= len(accs) {
			return nil, fmt.Errorf("dev account %d out of range [0, %d)", i, len(accs))
		}
		return accs[i].PrivateKey, nil
	}
	hex := ctx.String(keyFlag.Name)
	if hex == "" {
		return nil, fmt.Errorf("either -%s or -%s is required", keyFlag.Name, devAccountFlag.Name)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}
	return key, nil
}

func parseInstruction(ctx *cli.Context) (tx.Instruction, error) {
	op, err := tx.ParseOp(ctx.String(opFlag.Name))
	if err != nil {
		return tx.Instruction{}, err
	}
	ins := tx.Instruction{Op: op}

	switch op {
	case tx.OpInitializeVault, tx.OpCreateCustodyAccount, tx.OpStake, tx.OpUnstake:
		mint, err := chain.ParseAddress(ctx.String(mintFlag.Name))
		if err != nil {
			return tx.Instruction{}, errors.WithMessage(err, mintFlag.Name)
		}
		ins.Mint = mint
	}
	switch op {
	case tx.OpStake:
		tag := ctx.Uint(tagFlag.Name)
		if tag > math.MaxUint8 {
			return tx.Instruction{}, fmt.Errorf("collection tag %d out of range", tag)
		}
		ins.CollectionTag = uint8(tag)
		ins.ExpectedCount = ctx.Uint64(expectedCountFlag.Name)
	case tx.OpFund:
		ins.Amount = ctx.Uint64(amountFlag.Name)
	}
	return ins, nil
}

func txNonce(ctx *cli.Context) uint64 {
	if ctx.IsSet(nonceFlag.Name) {
		return ctx.Uint64(nonceFlag.Name)
	}
	return rand.Uint64() //#nosec G404
}
