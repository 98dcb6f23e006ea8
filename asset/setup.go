// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/merkle"
)

// globals
type globalDataType struct {
	sync.RWMutex
	log *logger.L

	admin           account.Address // may change prices, root and auction address
	auctionAddress  account.Address // the only caller allowed to lock/unlock
	baseURI         string
	basePrice       uint64
	additionalPrice uint64
	whitelistRoot   merkle.Digest

	// set once during initialise
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the registry
//
// storage must already be initialised
func Initialise(admin account.Address, baseURI string, basePrice uint64, additionalPrice uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if admin.IsZero() {
		return fault.ErrAddressIsZero
	}

	globalData.log = logger.New("asset")
	globalData.log.Info("starting…")

	globalData.admin = admin
	globalData.auctionAddress = account.Address{}
	globalData.baseURI = baseURI
	globalData.basePrice = basePrice
	globalData.additionalPrice = additionalPrice
	globalData.whitelistRoot = merkle.Digest{}

	globalData.initialised = true

	return nil
}

// Finalise - shut down the registry
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	return nil
}
