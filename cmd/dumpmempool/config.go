// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
	"github.com/nocturnalnematode/VerusCoin-sub001/chaincfg"
	"github.com/nocturnalnematode/VerusCoin-sub001/internal/log"
)

const (
	defaultSnapshotName = "mempool"
	defaultDebugLevel   = "info"
)

var (
	verusdHomeDir   = btcutil.AppDataDir("verusd", false)
	defaultDataDir  = filepath.Join(verusdHomeDir, "data")
	activeNetParams = &chaincfg.MainNetParams
)

// config defines the configuration options for dumpmempool.
//
// See loadConfig for details on the configuration load process.
type config struct {
	DataDir        string        `short:"b" long:"datadir" description:"Location of the verusd data directory"`
	DebugLevel     string        `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	LogFile        string        `long:"logfile" description:"Also write log output to this file"`
	MaxAge         time.Duration `long:"maxage" description:"Skip transactions that entered the pool longer ago than this -- Use 0 to disable"`
	RegressionTest bool          `long:"regtest" description:"Use the regression test network"`
	TestNet        bool          `long:"testnet" description:"Use the test network"`
	Verify         bool          `short:"v" long:"verify" description:"Restore the snapshot into a scratch pool and report its state instead of listing it"`
}

// loadConfig initializes and parses the config using command line options.
func loadConfig() (*config, []string, error) {
	// Default config.
	cfg := config{
		DataDir:    defaultDataDir,
		DebugLevel: defaultDebugLevel,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if cfg.TestNet {
		numNets++
		activeNetParams = &chaincfg.TestNetParams
	}
	if cfg.RegressionTest {
		numNets++
		activeNetParams = &chaincfg.RegressionNetParams
	}
	if numNets > 1 {
		err := fmt.Errorf("loadConfig: the testnet and regtest params " +
			"can't be used together -- choose one of the two")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	if cfg.MaxAge < 0 {
		err := fmt.Errorf("loadConfig: maxage may not be negative")
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	if cfg.LogFile != "" {
		if err := log.InitLogRotator(cfg.LogFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}
	log.SetLogLevels(cfg.DebugLevel)

	// Namespace the data directory per network.
	cfg.DataDir = filepath.Join(cfg.DataDir, activeNetParams.Name)

	return &cfg, remainingArgs, nil
}
