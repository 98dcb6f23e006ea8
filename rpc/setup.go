// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - the JSON RPC 1.0 service over TLS
//
// clients connect with TLS, verify the server by certificate
// fingerprint and issue requests like:
//
//   {"id":"1","method":"Auction.Status","params":[{"assetId":1}]}
package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/counter"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/rpc/certificate"
	"github.com/yopTupoTop/auction/rpc/listeners"
	"github.com/yopTupoTop/auction/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// to count the number of connections
var connectionCountRPC counter.Counter

// globals
type rpcData struct {
	sync.RWMutex

	log *logger.L

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, certificateFingerprint, err := certificate.Get(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPCListener(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC),
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}

	if err := rpcListener.Serve(); nil != err {
		return err
	}

	globalData.initialised = true

	return nil
}

// Finalise - stop accepting connections
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
