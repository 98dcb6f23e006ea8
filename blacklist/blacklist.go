// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blacklist - the set of disallowed addresses
//
// pure lookup; the registry and the auction consult this set, the
// mutators are administrative only
package blacklist

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/background"
	"github.com/yopTupoTop/auction/fault"
)

// globals
type globalDataType struct {
	sync.RWMutex
	log        *logger.L
	disallowed map[[account.IDLength]byte]struct{}
	watcher    *watcherData
	background *background.T

	// set once during initialise
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - create the empty set
//
// fileName optionally names a JSON list of base58 addresses that is
// loaded now and reloaded whenever the file changes
func Initialise(fileName string) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("blacklist")
	globalData.log.Info("starting…")

	globalData.disallowed = make(map[[account.IDLength]byte]struct{})

	if "" != fileName {
		w, err := newWatcher(fileName)
		if nil != err {
			return err
		}
		globalData.watcher = w

		addresses, err := loadFile(w.fileName)
		if nil != err {
			return err
		}
		for _, address := range addresses {
			globalData.disallowed[address.ID] = struct{}{}
		}

		globalData.background = background.Start(background.Processes{w}, globalData.log)
	}

	globalData.initialised = true

	return nil
}

// Finalise - stop the watcher
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
	globalData.watcher = nil
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Add - disallow an address
func Add(address account.Address) {
	globalData.Lock()
	globalData.disallowed[address.ID] = struct{}{}
	globalData.Unlock()
	globalData.log.Infof("add: %s", address)
}

// Remove - allow an address again
func Remove(address account.Address) {
	globalData.Lock()
	delete(globalData.disallowed, address.ID)
	globalData.Unlock()
	globalData.log.Infof("remove: %s", address)
}

// IsBlacklisted - check an address
func IsBlacklisted(address account.Address) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	_, ok := globalData.disallowed[address.ID]
	return ok
}

// replace the whole set
func replace(addresses []account.Address) {
	disallowed := make(map[[account.IDLength]byte]struct{}, len(addresses))
	for _, address := range addresses {
		disallowed[address.ID] = struct{}{}
	}
	globalData.Lock()
	globalData.disallowed = disallowed
	globalData.Unlock()
}
