// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/asset"
	"github.com/yopTupoTop/auction/auction"
	"github.com/yopTupoTop/auction/blacklist"
	"github.com/yopTupoTop/auction/mode"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/rpc"
	"github.com/yopTupoTop/auction/storage"
	"github.com/yopTupoTop/auction/treasury"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// the fixed market participants
	admin, err := account.AddressFromBase58(theConfiguration.Market.Admin)
	if nil != err {
		log.Criticalf("admin address error: %s", err)
		exitwithstatus.Message("admin address: %q  error: %s", theConfiguration.Market.Admin, err)
	}
	auctionAddress, err := account.AddressFromBase58(theConfiguration.Market.AuctionAddress)
	if nil != err {
		log.Criticalf("auction address error: %s", err)
		exitwithstatus.Message("auction address: %q  error: %s", theConfiguration.Market.AuctionAddress, err)
	}
	escrow, err := account.AddressFromBase58(theConfiguration.Market.Escrow)
	if nil != err {
		log.Criticalf("escrow address error: %s", err)
		exitwithstatus.Message("escrow address: %q  error: %s", theConfiguration.Market.Escrow, err)
	}
	settlementWindow, err := theConfiguration.settlementWindow()
	if nil != err {
		log.Criticalf("settlement window error: %s", err)
		exitwithstatus.Message("settlement window: %q  error: %s", theConfiguration.Market.SettlementWindow, err)
	}

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)
	log.Infof("admin: %s", admin)
	log.Infof("escrow: %s", escrow)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the set of disallowed addresses
	log.Info("initialise blacklist")
	err = blacklist.Initialise(theConfiguration.BlacklistFile)
	if nil != err {
		log.Criticalf("blacklist initialise error: %s", err)
		exitwithstatus.Message("blacklist initialise error: %s", err)
	}
	defer blacklist.Finalise()

	// event broadcasting
	log.Info("initialise publish")
	err = publish.Initialise(&theConfiguration.Publishing)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// the asset registry
	log.Info("initialise asset")
	err = asset.Initialise(admin, theConfiguration.Market.BaseURI, theConfiguration.Prices.Base, theConfiguration.Prices.Additional)
	if nil != err {
		log.Criticalf("asset initialise error: %s", err)
		exitwithstatus.Message("asset initialise error: %s", err)
	}
	defer asset.Finalise()

	err = asset.SetAuctionAddress(admin, auctionAddress)
	if nil != err {
		log.Criticalf("set auction address error: %s", err)
		exitwithstatus.Message("set auction address error: %s", err)
	}

	// escrowed settlement
	log.Info("initialise treasury")
	err = treasury.Initialise(escrow, auctionAddress, settlementWindow, func(assetId uint64) error {
		return auction.SettleComplete(assetId)
	})
	if nil != err {
		log.Criticalf("treasury initialise error: %s", err)
		exitwithstatus.Message("treasury initialise error: %s", err)
	}
	defer treasury.Finalise()

	// the listing state machines
	log.Info("initialise auction")
	err = auction.Initialise(admin, auctionAddress)
	if nil != err {
		log.Criticalf("auction initialise error: %s", err)
		exitwithstatus.Message("auction initialise error: %s", err)
	}
	defer auction.Finalise()

	// start the RPC server
	log.Info("initialise rpc")
	err = rpc.Initialise(&theConfiguration.ClientRPC, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// all services are up
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("waiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	mode.Set(mode.Stopped)
}
