// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listing_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/asset"
	"github.com/yopTupoTop/auction/auction"
	"github.com/yopTupoTop/auction/blacklist"
	"github.com/yopTupoTop/auction/chain"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/mode"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/rpc/listing"
	"github.com/yopTupoTop/auction/storage"
	"github.com/yopTupoTop/auction/treasury"
)

// test fixtures
const (
	databaseFileName = "test.leveldb"
	logDirectory     = "testing"
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
	admin       = makeAddress(0x01)
	alice       = makeAddress(0x02)
	bob         = makeAddress(0x03)
	auctionAddr = makeAddress(0x77)
	escrow      = makeAddress(0x88)
)

// remove all files created by test
func removeFiles() {
	_ = os.RemoveAll(databaseFileName)
	_ = os.RemoveAll(logDirectory)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
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
	if err := asset.SetAuctionAddress(admin, auctionAddr); nil != err {
		t.Fatalf("set auction address error: %s", err)
	}
	err := treasury.Initialise(escrow, auctionAddr, time.Hour, func(assetId uint64) error {
		return auction.SettleComplete(assetId)
	})
	if nil != err {
		t.Fatalf("treasury initialise error: %s", err)
	}
	if err := auction.Initialise(admin, auctionAddr); nil != err {
		t.Fatalf("auction initialise error: %s", err)
	}
	mode.Set(mode.Normal)
}

// post test cleanup
func teardown(t *testing.T) {
	_ = auction.Finalise()
	_ = treasury.Finalise()
	_ = asset.Finalise()
	_ = publish.Finalise()
	_ = blacklist.Finalise()
	storage.Finalise()
	_ = mode.Finalise()
	logger.Finalise()
	removeFiles()
}

func TestListingCycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	service := listing.New(logger.New("test"), mode.Is)

	assetId, err := asset.MintPaid(alice, "", 150)
	assert.Nil(t, err, "mint error")

	var status listing.StatusReply
	err = service.Sell(&listing.SellArguments{
		Caller:     alice,
		AssetId:    assetId,
		StartPrice: 10,
	}, &status)
	assert.Nil(t, err, "sell error")
	assert.Equal(t, "Listed", status.Info.State, "wrong state")
	assert.Equal(t, alice, status.Owner, "wrong owner")
	assert.Equal(t, uint64(10), status.Info.Bid.Amount, "wrong opening bid")

	err = service.Bid(&listing.BidArguments{
		Caller:  bob,
		AssetId: assetId,
		Amount:  10,
	}, &status)
	assert.Equal(t, fault.ErrBidTooLow, err, "low bid accepted")

	err = service.Bid(&listing.BidArguments{
		Caller:  bob,
		AssetId: assetId,
		Amount:  25,
	}, &status)
	assert.Nil(t, err, "bid error")
	assert.Equal(t, uint64(25), status.Info.Bid.Amount, "wrong bid amount")
	assert.Equal(t, bob, status.Info.Bid.Bidder, "wrong bidder")

	var accepted listing.AcceptReply
	err = service.Accept(&listing.ListingArguments{
		Caller:  alice,
		AssetId: assetId,
	}, &accepted)
	assert.Nil(t, err, "accept error")
	assert.Equal(t, bob, accepted.Buyer, "wrong buyer")
	assert.Equal(t, uint64(25), accepted.Amount, "wrong amount")
	assert.False(t, accepted.Deadline.Before(time.Now()), "deadline in the past")

	err = service.Status(&listing.StatusArguments{AssetId: assetId}, &status)
	assert.Nil(t, err, "status error")
	assert.Equal(t, "Settling", status.Info.State, "wrong state")
	assert.Equal(t, escrow, status.Owner, "custody not with escrow")
}

func TestNotAvailableDuringStartup(t *testing.T) {
	setup(t)
	defer teardown(t)

	mode.Set(mode.Starting)

	service := listing.New(logger.New("test"), mode.Is)

	var status listing.StatusReply
	err := service.Status(&listing.StatusArguments{AssetId: 1}, &status)
	assert.Equal(t, fault.ErrNotAvailableDuringStartup, err, "request served during startup")
}
