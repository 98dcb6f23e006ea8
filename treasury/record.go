// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
)

// flag bits of the packed trade record
const (
	tradeFlagPaid       = 0x01
	tradeFlagTestSeller = 0x02
	tradeFlagTestBuyer  = 0x04
)

// packed trade is: flags ‖ seller id ‖ buyer id ‖ amount ‖ deadline
const tradeRecordSize = 1 + 2*account.IDLength + 8 + 8

// Trade - one pending settlement
type Trade struct {
	Seller   account.Address `json:"seller"`
	Buyer    account.Address `json:"buyer"`
	Amount   uint64          `json:"amount"`
	Deadline time.Time       `json:"deadline"`
	Paid     bool            `json:"paid"`
}

// pack - encode a trade for the trades pool
func (trade Trade) pack() []byte {
	buffer := make([]byte, tradeRecordSize)
	if trade.Paid {
		buffer[0] |= tradeFlagPaid
	}
	if trade.Seller.Test {
		buffer[0] |= tradeFlagTestSeller
	}
	if trade.Buyer.Test {
		buffer[0] |= tradeFlagTestBuyer
	}
	n := 1
	n += copy(buffer[n:], trade.Seller.ID[:])
	n += copy(buffer[n:], trade.Buyer.ID[:])
	binary.BigEndian.PutUint64(buffer[n:], trade.Amount)
	n += 8
	binary.BigEndian.PutUint64(buffer[n:], uint64(trade.Deadline.UnixNano()))
	return buffer
}

// unpackTrade - decode a stored trade record
func unpackTrade(buffer []byte) Trade {
	if tradeRecordSize != len(buffer) {
		logger.Panicf("treasury: invalid trade record size: %d", len(buffer))
	}
	trade := Trade{
		Paid: 0 != buffer[0]&tradeFlagPaid,
	}
	trade.Seller.Test = 0 != buffer[0]&tradeFlagTestSeller
	trade.Buyer.Test = 0 != buffer[0]&tradeFlagTestBuyer
	n := 1
	n += copy(trade.Seller.ID[:], buffer[n:n+account.IDLength])
	n += copy(trade.Buyer.ID[:], buffer[n:n+account.IDLength])
	trade.Amount = binary.BigEndian.Uint64(buffer[n:])
	n += 8
	trade.Deadline = time.Unix(0, int64(binary.BigEndian.Uint64(buffer[n:])))
	return trade
}

// database key for one pending trade
func tradeKey(assetId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, assetId)
	return key
}
