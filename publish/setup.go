// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast marketplace events
//
// listings, bids, acceptances and settlements are published on a
// ZeroMQ PUB socket so external indexers can follow the market
// without polling the RPC
package publish

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/background"
	"github.com/yopTupoTop/auction/fault"
)

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	Broadcast []string `gluamapper:"broadcast" json:"broadcast"`
}

// globals for background process
type publishData struct {
	sync.RWMutex

	log *logger.L

	brdc broadcaster

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData publishData

// Initialise - bind the broadcast sockets and start the sender
//
// an empty broadcast list disables publishing; Send becomes a no-op
func Initialise(configuration *Configuration) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("publish")
	globalData.log.Info("starting…")

	if 0 == len(configuration.Broadcast) {
		globalData.log.Info("disabled: no broadcast addresses")
		globalData.initialised = true
		return nil
	}

	if err := globalData.brdc.initialise(configuration.Broadcast); nil != err {
		return err
	}

	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.brdc,
	}

	globalData.background = background.Start(processes, globalData.log)

	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	if nil != globalData.background {
		globalData.background.Stop()
	}

	globalData.Lock()
	globalData.initialised = false
	globalData.background = nil
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
