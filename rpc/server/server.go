// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/counter"
	"github.com/yopTupoTop/auction/mode"
	"github.com/yopTupoTop/auction/rpc/assets"
	"github.com/yopTupoTop/auction/rpc/listing"
	"github.com/yopTupoTop/auction/rpc/node"
	"github.com/yopTupoTop/auction/rpc/trade"
)

// Create - register all marketplace services on one RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(assets.New(log, mode.Is))
	_ = server.Register(listing.New(log, mode.Is))
	_ = server.Register(trade.New(log, mode.Is))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
