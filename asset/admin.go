// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/merkle"
)

// SetWhitelistRoot - replace the whitelist membership root
//
// only affects claims made after the change
func SetWhitelistRoot(caller account.Address, root merkle.Digest) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	if caller.ID != globalData.admin.ID {
		return fault.ErrNotAdmin
	}

	globalData.whitelistRoot = root
	globalData.log.Infof("whitelist root: %s", root)

	return nil
}

// SetPrices - replace the base and additional mint prices
func SetPrices(caller account.Address, basePrice uint64, additionalPrice uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	if caller.ID != globalData.admin.ID {
		return fault.ErrNotAdmin
	}

	globalData.basePrice = basePrice
	globalData.additionalPrice = additionalPrice
	globalData.log.Infof("prices: base: %d  additional: %d", basePrice, additionalPrice)

	return nil
}

// SetAuctionAddress - register the address allowed to lock and unlock
func SetAuctionAddress(caller account.Address, address account.Address) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	if caller.ID != globalData.admin.ID {
		return fault.ErrNotAdmin
	}
	if address.IsZero() {
		return fault.ErrAddressIsZero
	}

	globalData.auctionAddress = address
	globalData.log.Infof("auction address: %s", address)

	return nil
}

// WhitelistRoot - the current whitelist membership root
func WhitelistRoot() merkle.Digest {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.whitelistRoot
}

// Prices - the current base and additional mint prices
func Prices() (uint64, uint64) {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.basePrice, globalData.additionalPrice
}

// AuctionAddress - the registered auction integration address
func AuctionAddress() account.Address {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.auctionAddress
}

// BaseURI - the metadata locator prefix
func BaseURI() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.baseURI
}
