// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction_test

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
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/storage"
	"github.com/yopTupoTop/auction/treasury"
)

// test fixtures
const (
	databaseFileName = "test.leveldb"
	logDirectory     = "testing"

	mintPrice = 150
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
	carol       = makeAddress(0x04)
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
}

// post test cleanup
func teardown(t *testing.T) {
	_ = auction.Finalise()
	_ = treasury.Finalise()
	_ = asset.Finalise()
	_ = publish.Finalise()
	_ = blacklist.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func TestSellAndCancel(t *testing.T) {
	setup(t)
	defer teardown(t)

	assetId, err := asset.MintPaid(alice, "", mintPrice)
	assert.Nil(t, err, "mint error")

	err = auction.SellAsset(bob, assetId, 10)
	assert.Equal(t, fault.ErrNotAssetOwner, err, "listing by non-owner accepted")

	assert.Nil(t, auction.SellAsset(alice, assetId, 10), "listing error")

	locked, err := asset.IsLocked(assetId)
	assert.Nil(t, err, "lock read error")
	assert.True(t, locked, "listed asset not locked")
	assert.True(t, auction.Relevance(assetId), "listing not relevant")

	bid, err := auction.LastBid(assetId)
	assert.Nil(t, err, "bid read error")
	assert.Equal(t, uint64(10), bid.Amount, "wrong opening bid")
	assert.Equal(t, alice, bid.Bidder, "wrong opening bidder")

	err = auction.SellAsset(alice, assetId, 10)
	assert.Equal(t, fault.ErrAlreadyListed, err, "double listing accepted")

	err = auction.CancelAsset(bob, assetId)
	assert.Equal(t, fault.ErrNotAssetOwner, err, "cancel by non-owner accepted")

	assert.Nil(t, auction.CancelAsset(alice, assetId), "cancel error")

	locked, err = asset.IsLocked(assetId)
	assert.Nil(t, err, "lock read error")
	assert.False(t, locked, "cancelled asset still locked")
	assert.False(t, auction.Relevance(assetId), "cancelled listing still relevant")

	bid, err = auction.LastBid(assetId)
	assert.Nil(t, err, "bid read error")
	assert.Equal(t, auction.Bid{}, bid, "bid not cleared on cancel")

	err = auction.CancelAsset(alice, assetId)
	assert.Equal(t, fault.ErrNotListed, err, "double cancel accepted")

	// the listing stays paused until reactivated
	err = auction.SellAsset(alice, assetId, 10)
	assert.Equal(t, fault.ErrAuctionPaused, err, "paused relisting accepted")

	err = auction.GrantUnpause(alice, carol)
	assert.Equal(t, fault.ErrNotAdmin, err, "grant by non-admin accepted")

	err = auction.UpdateRelevance(carol, assetId)
	assert.Equal(t, fault.ErrNotUnpauser, err, "reactivation without capability accepted")

	assert.Nil(t, auction.GrantUnpause(admin, carol), "grant error")
	assert.Nil(t, auction.UpdateRelevance(carol, assetId), "reactivation error")

	err = auction.UpdateRelevance(carol, assetId)
	assert.Equal(t, fault.ErrAuctionNotPaused, err, "double reactivation accepted")

	assert.Nil(t, auction.SellAsset(alice, assetId, 20), "relisting error")

	assert.Nil(t, auction.RevokeUnpause(admin, carol), "revoke error")
	assert.Nil(t, auction.CancelAsset(alice, assetId), "cancel error")
	err = auction.UpdateRelevance(carol, assetId)
	assert.Equal(t, fault.ErrNotUnpauser, err, "revoked capability still works")
}

func TestBidding(t *testing.T) {
	setup(t)
	defer teardown(t)

	assetId, err := asset.MintPaid(alice, "", mintPrice)
	assert.Nil(t, err, "mint error")

	err = auction.PlaceBid(bob, assetId, 100)
	assert.Equal(t, fault.ErrNotListed, err, "bid before listing accepted")

	assert.Nil(t, auction.SellAsset(alice, assetId, 10), "listing error")

	err = auction.PlaceBid(bob, assetId, 10)
	assert.Equal(t, fault.ErrBidTooLow, err, "equal bid accepted")

	assert.Nil(t, auction.PlaceBid(bob, assetId, 11), "bid error")

	err = auction.PlaceBid(carol, assetId, 11)
	assert.Equal(t, fault.ErrBidTooLow, err, "matching bid accepted")

	assert.Nil(t, auction.PlaceBid(carol, assetId, 12), "bid error")

	bid, err := auction.LastBid(assetId)
	assert.Nil(t, err, "bid read error")
	assert.Equal(t, uint64(12), bid.Amount, "wrong highest amount")
	assert.Equal(t, carol, bid.Bidder, "wrong highest bidder")

	blacklist.Add(bob)
	defer blacklist.Remove(bob)
	err = auction.PlaceBid(bob, assetId, 100)
	assert.Equal(t, fault.ErrBlacklisted, err, "bid by blacklisted accepted")
}

func TestAcceptAndSettle(t *testing.T) {
	setup(t)
	defer teardown(t)

	assetId, err := asset.MintPaid(alice, "", mintPrice)
	assert.Nil(t, err, "mint error")

	assert.Nil(t, auction.SellAsset(alice, assetId, 10), "listing error")

	// nobody has outbid the opening price yet
	err = auction.AcceptOffer(alice, assetId)
	assert.Equal(t, fault.ErrSelfTrade, err, "self trade accepted")

	assert.Nil(t, auction.PlaceBid(bob, assetId, 50), "bid error")

	err = auction.AcceptOffer(bob, assetId)
	assert.Equal(t, fault.ErrNotAssetOwner, err, "acceptance by non-owner accepted")

	assert.Nil(t, auction.AcceptOffer(alice, assetId), "acceptance error")

	owner, err := asset.OwnerOf(assetId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, escrow, owner, "custody not with escrow")

	locked, err := asset.IsLocked(assetId)
	assert.Nil(t, err, "lock read error")
	assert.True(t, locked, "settling asset not locked")

	info, err := auction.Status(assetId)
	assert.Nil(t, err, "status error")
	assert.Equal(t, "Settling", info.State, "wrong state")
	assert.True(t, info.Paused, "settling listing not paused")

	trade, err := treasury.Pending(assetId)
	assert.Nil(t, err, "pending read error")
	assert.Equal(t, alice, trade.Seller, "wrong seller")
	assert.Equal(t, bob, trade.Buyer, "wrong buyer")
	assert.Equal(t, uint64(50), trade.Amount, "wrong amount")

	assert.Nil(t, treasury.Pay(bob, assetId, 50), "payment error")
	assert.Nil(t, treasury.CheckTrade(assetId), "finalize error")

	owner, err = asset.OwnerOf(assetId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, bob, owner, "asset not delivered to buyer")

	assert.Equal(t, uint64(50), treasury.Balance(alice), "seller not credited")

	// the settled listing starts a clean cycle
	info, err = auction.Status(assetId)
	assert.Nil(t, err, "status error")
	assert.Equal(t, "Idle", info.State, "wrong state after settlement")
	assert.False(t, info.Paused, "settled listing still paused")
	assert.Equal(t, auction.Bid{}, info.Bid, "bid not reset after settlement")

	assert.Nil(t, auction.SellAsset(bob, assetId, 60), "relisting by buyer error")
}

func TestAcceptWithStaleTrade(t *testing.T) {
	setup(t)
	defer teardown(t)

	assetId, err := asset.MintPaid(alice, "", mintPrice)
	assert.Nil(t, err, "mint error")

	assert.Nil(t, auction.SellAsset(alice, assetId, 10), "listing error")
	assert.Nil(t, auction.PlaceBid(bob, assetId, 50), "bid error")

	// a pending record left over from an earlier cycle blocks acceptance
	assert.Nil(t, treasury.RecordTrade(auctionAddr, assetId, alice, bob, 40), "record error")

	err = auction.AcceptOffer(alice, assetId)
	assert.Equal(t, fault.ErrTradeAlreadyPending, err, "acceptance over pending trade accepted")

	// the failed acceptance must leave the listing fully intact
	owner, err := asset.OwnerOf(assetId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, alice, owner, "custody left the seller")

	locked, err := asset.IsLocked(assetId)
	assert.Nil(t, err, "lock read error")
	assert.True(t, locked, "listed asset not locked")

	info, err := auction.Status(assetId)
	assert.Nil(t, err, "status error")
	assert.Equal(t, "Listed", info.State, "wrong state after failed acceptance")
	assert.Equal(t, uint64(50), info.Bid.Amount, "bid lost after failed acceptance")
}

func TestStatusUnknownAsset(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := auction.Status(42)
	assert.Equal(t, fault.ErrAssetNotFound, err, "status of unknown asset accepted")

	assetId, err := asset.MintPaid(alice, "", mintPrice)
	assert.Nil(t, err, "mint error")

	info, err := auction.Status(assetId)
	assert.Nil(t, err, "status error")
	assert.Equal(t, "Idle", info.State, "wrong state for unlisted asset")
	assert.False(t, auction.Relevance(assetId), "unlisted asset relevant")
}
