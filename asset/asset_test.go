// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/asset"
	"github.com/yopTupoTop/auction/blacklist"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/merkle"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/storage"
)

// test fixtures
const (
	databaseFileName = "test.leveldb"
	logDirectory     = "testing"

	baseURI         = "https://assets.example/"
	basePrice       = 100
	additionalPrice = 50
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
	admin = makeAddress(0x01)
	alice = makeAddress(0x02)
	bob   = makeAddress(0x03)
	carol = makeAddress(0x04)
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
	if err := asset.Initialise(admin, baseURI, basePrice, additionalPrice); nil != err {
		t.Fatalf("asset initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	_ = asset.Finalise()
	_ = publish.Finalise()
	_ = blacklist.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func TestMintPaid(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := asset.MintPaid(alice, "first", basePrice+additionalPrice-1)
	assert.Equal(t, fault.ErrInsufficientPayment, err, "underpaid mint accepted")

	assetId, err := asset.MintPaid(alice, "first", basePrice+additionalPrice)
	assert.Nil(t, err, "mint error")
	assert.Equal(t, uint64(1), assetId, "wrong first asset id")

	owner, err := asset.OwnerOf(assetId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, alice, owner, "wrong owner")

	assert.Equal(t, uint64(1), asset.BalanceOf(alice), "wrong balance")
	assert.Equal(t, "first", asset.Content(alice, assetId), "wrong content")

	uri, err := asset.TokenURI(assetId)
	assert.Nil(t, err, "token uri error")
	assert.Equal(t, baseURI+"1.json", uri, "wrong token uri")

	// ids are sequential
	assetId, err = asset.MintPaid(bob, "", basePrice+additionalPrice)
	assert.Nil(t, err, "mint error")
	assert.Equal(t, uint64(2), assetId, "wrong second asset id")
	assert.Equal(t, "", asset.Content(bob, assetId), "content not empty")
}

func TestMintWhitelisted(t *testing.T) {
	setup(t)
	defer teardown(t)

	leaves := []merkle.Digest{
		merkle.Digest(alice.Digest()),
		merkle.Digest(bob.Digest()),
		merkle.Digest(carol.Digest()),
	}
	root := merkle.Root(leaves)
	proof := merkle.Proof(leaves, 0)

	// no root set yet
	_, err := asset.MintWhitelisted(alice, proof, "minted", basePrice)
	assert.Equal(t, fault.ErrInvalidProof, err, "mint without root accepted")

	assert.Nil(t, asset.SetWhitelistRoot(admin, root), "set root error")

	// proof for the wrong address
	_, err = asset.MintWhitelisted(bob, proof, "minted", basePrice)
	assert.Equal(t, fault.ErrInvalidProof, err, "wrong proof accepted")

	// underpayment
	_, err = asset.MintWhitelisted(alice, proof, "minted", basePrice-1)
	assert.Equal(t, fault.ErrInsufficientPayment, err, "underpaid mint accepted")

	assetId, err := asset.MintWhitelisted(alice, proof, "minted", basePrice)
	assert.Nil(t, err, "mint error")
	assert.Equal(t, uint64(1), assetId, "wrong asset id")
	assert.Equal(t, uint64(1), asset.BalanceOf(alice), "wrong balance")
	assert.Equal(t, "minted", asset.Content(alice, assetId), "wrong content")

	uri, err := asset.TokenURI(assetId)
	assert.Nil(t, err, "token uri error")
	assert.Equal(t, baseURI+"1.json", uri, "wrong token uri")

	// one claim per address
	_, err = asset.MintWhitelisted(alice, proof, "again", basePrice)
	assert.Equal(t, fault.ErrAlreadyClaimed, err, "second claim accepted")
}

func TestTransfer(t *testing.T) {
	setup(t)
	defer teardown(t)

	assetId, err := asset.MintPaid(alice, "payload", basePrice+additionalPrice)
	assert.Nil(t, err, "mint error")

	err = asset.Transfer(bob, carol, assetId)
	assert.Equal(t, fault.ErrNotAssetOwner, err, "transfer by non-owner accepted")

	err = asset.Transfer(alice, bob, 999)
	assert.Equal(t, fault.ErrAssetNotFound, err, "transfer of unknown asset accepted")

	assert.Nil(t, asset.Transfer(alice, bob, assetId), "transfer error")

	owner, err := asset.OwnerOf(assetId)
	assert.Nil(t, err, "owner error")
	assert.Equal(t, bob, owner, "wrong owner after transfer")

	// content stays with the pairing, never the asset
	assert.Equal(t, "", asset.Content(alice, assetId), "outgoing content not cleared")
	assert.Equal(t, "", asset.Content(bob, assetId), "incoming content not empty")

	assert.Equal(t, uint64(0), asset.BalanceOf(alice), "sender balance wrong")
	assert.Equal(t, uint64(1), asset.BalanceOf(bob), "recipient balance wrong")
}

func TestTransferLocked(t *testing.T) {
	setup(t)
	defer teardown(t)

	auctionAddress := makeAddress(0x77)
	assert.Nil(t, asset.SetAuctionAddress(admin, auctionAddress), "set auction address error")

	assetId, err := asset.MintPaid(alice, "", basePrice+additionalPrice)
	assert.Nil(t, err, "mint error")

	err = asset.SetLock(alice, assetId, true)
	assert.Equal(t, fault.ErrNotAuctionController, err, "lock by non-controller accepted")

	assert.Nil(t, asset.SetLock(auctionAddress, assetId, true), "lock error")

	locked, err := asset.IsLocked(assetId)
	assert.Nil(t, err, "lock read error")
	assert.True(t, locked, "asset not locked")

	err = asset.Transfer(alice, bob, assetId)
	assert.Equal(t, fault.ErrAssetLocked, err, "locked transfer accepted")

	assert.Nil(t, asset.SetLock(auctionAddress, assetId, false), "unlock error")
	assert.Nil(t, asset.Transfer(alice, bob, assetId), "unlocked transfer failed")
}

func TestBlacklistedParties(t *testing.T) {
	setup(t)
	defer teardown(t)

	assetId, err := asset.MintPaid(alice, "", basePrice+additionalPrice)
	assert.Nil(t, err, "mint error")

	blacklist.Add(carol)
	defer blacklist.Remove(carol)

	_, err = asset.MintPaid(carol, "", basePrice+additionalPrice)
	assert.Equal(t, fault.ErrBlacklisted, err, "mint to blacklisted accepted")

	err = asset.Transfer(alice, carol, assetId)
	assert.Equal(t, fault.ErrRecipientBlacklisted, err, "transfer to blacklisted accepted")

	blacklist.Add(alice)
	defer blacklist.Remove(alice)

	err = asset.Transfer(alice, bob, assetId)
	assert.Equal(t, fault.ErrSenderBlacklisted, err, "transfer from blacklisted accepted")
}

func TestEnumeration(t *testing.T) {
	setup(t)
	defer teardown(t)

	ids := make([]uint64, 3)
	for i := 0; i < 3; i += 1 {
		assetId, err := asset.MintPaid(alice, "", basePrice+additionalPrice)
		assert.Nil(t, err, "mint error")
		ids[i] = assetId
	}
	assert.Equal(t, uint64(3), asset.BalanceOf(alice), "wrong balance")

	// move the middle asset away
	assert.Nil(t, asset.Transfer(alice, bob, ids[1]), "transfer error")
	assert.Equal(t, uint64(2), asset.BalanceOf(alice), "wrong balance after transfer")

	remaining := map[uint64]bool{}
	for i := uint64(0); i < 2; i += 1 {
		assetId, err := asset.AssetOfOwnerByIndex(alice, i)
		assert.Nil(t, err, "enumeration error")
		remaining[assetId] = true
	}
	assert.True(t, remaining[ids[0]], "first asset missing")
	assert.True(t, remaining[ids[2]], "third asset missing")

	_, err := asset.AssetOfOwnerByIndex(alice, 2)
	assert.Equal(t, fault.ErrInvalidCount, err, "out of range index accepted")

	assetId, err := asset.AssetOfOwnerByIndex(bob, 0)
	assert.Nil(t, err, "enumeration error")
	assert.Equal(t, ids[1], assetId, "wrong asset for new owner")
}

func TestAdminSetters(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := asset.SetPrices(alice, 1, 2)
	assert.Equal(t, fault.ErrNotAdmin, err, "non-admin price change accepted")

	err = asset.SetWhitelistRoot(alice, merkle.Digest{})
	assert.Equal(t, fault.ErrNotAdmin, err, "non-admin root change accepted")

	err = asset.SetAuctionAddress(alice, bob)
	assert.Equal(t, fault.ErrNotAdmin, err, "non-admin address change accepted")

	assert.Nil(t, asset.SetPrices(admin, 7, 3), "price change error")
	base, additional := asset.Prices()
	assert.Equal(t, uint64(7), base, "wrong base price")
	assert.Equal(t, uint64(3), additional, "wrong additional price")

	_, err = asset.MintPaid(alice, "", 9)
	assert.Equal(t, fault.ErrInsufficientPayment, err, "underpaid mint accepted")
	_, err = asset.MintPaid(alice, "", 10)
	assert.Nil(t, err, "mint at new price failed")
}
