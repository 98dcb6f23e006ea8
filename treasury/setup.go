// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package treasury - escrowed settlement of accepted offers
//
// holds the pending-trade table and the balance ledger: after an offer
// is accepted the asset sits with the escrow address and the buyer's
// payment sits in the ledger until the trade is finalized, exactly
// once, inside its settlement window
package treasury

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/background"
	"github.com/yopTupoTop/auction/fault"
)

// default settlement window
const DefaultWindow = 24 * time.Hour

// ReactivateFunc - callback into the auction once a trade settles
//
// passed in at initialise to avoid a package cycle
type ReactivateFunc func(assetId uint64) error

// globals
type globalDataType struct {
	sync.RWMutex
	log *logger.L

	escrow     account.Address // custody address while a trade is pending
	controller account.Address // the auction, sole caller of RecordTrade
	window     time.Duration
	reactivate ReactivateFunc

	background *background.T

	// set once during initialise
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the settlement table
//
// a zero window selects the default; reactivate may be nil when no
// auction is wired in (administrative tooling)
func Initialise(escrow account.Address, controller account.Address, window time.Duration, reactivate ReactivateFunc) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if escrow.IsZero() || controller.IsZero() {
		return fault.ErrAddressIsZero
	}

	globalData.log = logger.New("treasury")
	globalData.log.Info("starting…")

	if 0 == window {
		window = DefaultWindow
	}

	globalData.escrow = escrow
	globalData.controller = controller
	globalData.window = window
	globalData.reactivate = reactivate

	globalData.background = background.Start(background.Processes{
		&sweeperData{},
	}, globalData.log)

	globalData.initialised = true

	return nil
}

// Finalise - stop the sweeper
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")

	if nil != globalData.background {
		globalData.background.Stop()
	}

	globalData.Lock()
	globalData.initialised = false
	globalData.background = nil
	globalData.reactivate = nil
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Escrow - the custody address for pending trades
func Escrow() account.Address {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.escrow
}

// Window - the settlement window applied to new trades
func Window() time.Duration {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.window
}
