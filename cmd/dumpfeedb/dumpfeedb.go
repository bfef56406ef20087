// Copyright (c) 2018-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Tool dumpfeedb can be used to dump the internal state of the fee rate and
// priority buckets of an estimator's feedb so that it can be externally
// analyzed.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
	"github.com/nocturnalnematode/VerusCoin-sub001/chaincfg"
	"github.com/nocturnalnematode/VerusCoin-sub001/fees"
	"github.com/nocturnalnematode/VerusCoin-sub001/internal/log"
)

type config struct {
	DB         string `short:"b" long:"db" description:"Path to fee database (default: the feesdb of the selected network)"`
	Network    string `short:"n" long:"network" description:"Network whose fee database is read {mainnet, testnet, regtest}"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
}

func main() {
	cfg := config{
		Network:    chaincfg.MainNetParams.Name,
		DebugLevel: "info",
	}

	parser := flags.NewParser(&cfg, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return
	}
	log.SetLogLevels(cfg.DebugLevel)

	params, err := chaincfg.ParamsByName(cfg.Network)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid network %q: %v\n", cfg.Network, err)
		os.Exit(1)
	}
	if cfg.DB == "" {
		cfg.DB = filepath.Join(btcutil.AppDataDir("verusd", false), "data",
			params.Name, "feesdb")
	}

	ecfg := fees.DefaultEstimatorConfig()
	ecfg.DatabaseFile = cfg.DB
	ecfg.ReplaceBucketsOnLoad = true
	est, err := fees.NewEstimator(&ecfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open fee database: %v\n", err)
		os.Exit(1)
	}
	defer est.Close()

	fmt.Println(est.DumpBuckets())
}
