// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trade_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/asset"
	"github.com/yopTupoTop/auction/blacklist"
	"github.com/yopTupoTop/auction/chain"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/mode"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/rpc/trade"
	"github.com/yopTupoTop/auction/storage"
	"github.com/yopTupoTop/auction/treasury"
)

// test fixtures
const (
	databaseFileName = "test.leveldb"
	logDirectory     = "testing"

	tradeAmount = 500
)

// a deterministic test address
func makeAddress(seed byte) account.Address {
	id := make([]byte, account.IDLength)
	for i := 0; i < len(id); i += 1 {
		id[i] = seed
	}
	address, _ := account.AddressFromBytes(true, id)
	return address
}

var (
	admin      = makeAddress(0x01)
	seller     = makeAddress(0x02)
	buyer      = makeAddress(0x03)
	controller = makeAddress(0x77)
	escrow     = makeAddress(0x88)
)

// asset ids handed to the reactivate callback
var reactivated []uint64

// remove all files created by test
func removeFiles() {
	_ = os.RemoveAll(databaseFileName)
	_ = os.RemoveAll(logDirectory)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	reactivated = nil
	_ = os.Mkdir(logDirectory, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if err := mode.Initialise(chain.Testing); nil != err {
		t.Fatalf("mode initialise error: %s", err)
	}
	if err := storage.Initialise(databaseFileName); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	if err := blacklist.Initialise(""); nil != err {
		t.Fatalf("blacklist initialise error: %s", err)
	}
	if err := publish.Initialise(&publish.Configuration{}); nil != err {
		t.Fatalf("publish initialise error: %s", err)
	}
	if err := asset.Initialise(admin, "https://assets.example/", 100, 50); nil != err {
		t.Fatalf("asset initialise error: %s", err)
	}
	if err := asset.SetAuctionAddress(admin, controller); nil != err {
		t.Fatalf("set auction address error: %s", err)
	}
	err := treasury.Initialise(escrow, controller, time.Hour, func(assetId uint64) error {
		reactivated = append(reactivated, assetId)
		return nil
	})
	if nil != err {
		t.Fatalf("treasury initialise error: %s", err)
	}
	mode.Set(mode.Normal)
}

// post test cleanup
func teardown(t *testing.T) {
	_ = treasury.Finalise()
	_ = asset.Finalise()
	_ = publish.Finalise()
	_ = blacklist.Finalise()
	storage.Finalise()
	_ = mode.Finalise()
	logger.Finalise()
	removeFiles()
}

// mint one asset and park it with the escrow as an accepted offer would
func acceptedTrade(t *testing.T) uint64 {
	assetId, err := asset.MintPaid(seller, "", 150)
	assert.Nil(t, err, "mint error")
	assert.Nil(t, asset.Transfer(seller, escrow, assetId), "custody transfer error")
	assert.Nil(t, asset.SetLock(controller, assetId, true), "lock error")
	assert.Nil(t, treasury.RecordTrade(controller, assetId, seller, buyer, tradeAmount), "record error")
	return assetId
}

func TestSettlementCycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	service := trade.New(logger.New("test"), mode.Is)

	assetId := acceptedTrade(t)

	var pending trade.PendingReply
	err := service.Pending(&trade.PendingArguments{AssetId: assetId}, &pending)
	assert.Nil(t, err, "pending error")
	assert.Equal(t, seller, pending.Trade.Seller, "wrong seller")
	assert.Equal(t, buyer, pending.Trade.Buyer, "wrong buyer")
	assert.Equal(t, uint64(tradeAmount), pending.Trade.Amount, "wrong amount")
	assert.False(t, pending.Trade.Paid, "trade already paid")

	var paid trade.PayReply
	err = service.Pay(&trade.PayArguments{
		Caller:  seller,
		AssetId: assetId,
		Amount:  tradeAmount,
	}, &paid)
	assert.Equal(t, fault.ErrNotBuyer, err, "payment by non-buyer accepted")

	err = service.Pay(&trade.PayArguments{
		Caller:  buyer,
		AssetId: assetId,
		Amount:  tradeAmount,
	}, &paid)
	assert.Nil(t, err, "payment error")
	assert.True(t, paid.Paid, "payment not recorded")

	var settled trade.CheckReply
	err = service.Check(&trade.CheckArguments{AssetId: assetId}, &settled)
	assert.Nil(t, err, "check error")
	assert.True(t, settled.Settled, "trade not settled")

	owner, err := asset.OwnerOf(assetId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, buyer, owner, "asset not delivered to buyer")

	var balance trade.BalanceReply
	err = service.Balance(&trade.BalanceArguments{Owner: seller}, &balance)
	assert.Nil(t, err, "balance error")
	assert.Equal(t, uint64(tradeAmount), balance.Balance, "seller not credited")

	assert.Equal(t, []uint64{assetId}, reactivated, "auction not reactivated")

	// exactly once
	err = service.Check(&trade.CheckArguments{AssetId: assetId}, &settled)
	assert.Equal(t, fault.ErrNoSuchTrade, err, "settled trade finalized again")
}

func TestNotAvailableDuringStartup(t *testing.T) {
	setup(t)
	defer teardown(t)

	mode.Set(mode.Starting)

	service := trade.New(logger.New("test"), mode.Is)

	var pending trade.PendingReply
	err := service.Pending(&trade.PendingArguments{AssetId: 1}, &pending)
	assert.Equal(t, fault.ErrNotAvailableDuringStartup, err, "request served during startup")
}
