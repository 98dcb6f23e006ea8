// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/storage"
)

// how often the pending table is checked for expired trades
const sweepInterval = time.Minute

type sweeperData struct{}

// background loop reporting trades whose window has closed
//
// expired records are only logged, never removed; recovery needs an
// operator decision since a paid but unchecked trade leaves the funds
// in escrow
func (sweeper *sweeperData) Run(args interface{}, shutdown <-chan struct{}) {

	log := args.(*logger.L)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-ticker.C:
			sweep(log)
		}
	}
}

// one pass over the pending table
func sweep(log *logger.L) {
	now := time.Now()
	storage.Pool.Trades.Scan(func(key []byte, value []byte) bool {
		if 8 != len(key) {
			log.Errorf("sweep: invalid trade key length: %d", len(key))
			return true
		}
		assetId := binary.BigEndian.Uint64(key)
		trade := unpackTrade(value)
		if now.After(trade.Deadline) {
			log.Warnf("expired trade: %d  seller: %s  buyer: %s  amount: %d  paid: %t  deadline: %s",
				assetId, trade.Seller, trade.Buyer, trade.Amount, trade.Paid,
				trade.Deadline.Format(time.RFC3339))
		}
		return true
	})
}
