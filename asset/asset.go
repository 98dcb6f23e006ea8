// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"strconv"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/blacklist"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/merkle"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/storage"
)

// counter record holding the most recently allocated asset id
var nextAssetKey = []byte("next-asset-id")

// event payload for mint and transfer broadcasts
type transferEvent struct {
	AssetId uint64          `json:"assetId"`
	From    account.Address `json:"from"`
	To      account.Address `json:"to"`
}

// MintPaid - allocate a new asset against full payment
//
// asset ids are sequential from one
func MintPaid(to account.Address, content string, payment uint64) (uint64, error) {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.ErrNotInitialised
	}

	if to.IsZero() {
		return 0, fault.ErrAddressIsZero
	}
	if blacklist.IsBlacklisted(to) {
		return 0, fault.ErrBlacklisted
	}
	if payment < globalData.basePrice+globalData.additionalPrice {
		return 0, fault.ErrInsufficientPayment
	}

	trx := storage.NewTransaction()
	assetId := mint(trx, to, content)
	if err := trx.Commit(); nil != err {
		return 0, err
	}

	globalData.log.Infof("mint: %d  owner: %s", assetId, to)
	publish.Send("asset.minted", transferEvent{AssetId: assetId, To: to})

	return assetId, nil
}

// MintWhitelisted - allocate a new asset against a whitelist membership proof
//
// each address may claim exactly once; the proof is checked against the
// whitelist root current at call time
func MintWhitelisted(to account.Address, proof []merkle.Digest, content string, payment uint64) (uint64, error) {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.ErrNotInitialised
	}

	if to.IsZero() {
		return 0, fault.ErrAddressIsZero
	}
	if blacklist.IsBlacklisted(to) {
		return 0, fault.ErrBlacklisted
	}
	if globalData.whitelistRoot.IsZero() ||
		!merkle.Verify(merkle.Digest(to.Digest()), proof, globalData.whitelistRoot) {
		return 0, fault.ErrInvalidProof
	}
	if storage.Pool.Claims.Has(to.Bytes()) {
		return 0, fault.ErrAlreadyClaimed
	}
	if payment < globalData.basePrice {
		return 0, fault.ErrInsufficientPayment
	}

	trx := storage.NewTransaction()
	trx.Put(storage.Pool.Claims, to.Bytes(), []byte{1})
	assetId := mint(trx, to, content)
	if err := trx.Commit(); nil != err {
		return 0, err
	}

	globalData.log.Infof("mint whitelisted: %d  owner: %s", assetId, to)
	publish.Send("asset.minted", transferEvent{AssetId: assetId, To: to})

	return assetId, nil
}

// Transfer - move ownership of one asset
//
// the outgoing content slot is cleared, the incoming slot stays empty
func Transfer(from account.Address, to account.Address, assetId uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	if blacklist.IsBlacklisted(from) {
		return fault.ErrSenderBlacklisted
	}
	if blacklist.IsBlacklisted(to) {
		return fault.ErrRecipientBlacklisted
	}
	if to.IsZero() {
		return fault.ErrAddressIsZero
	}

	buffer := storage.Pool.Assets.Get(assetKey(assetId))
	if nil == buffer {
		return fault.ErrAssetNotFound
	}
	r := unpack(buffer)

	if r.owner.ID != from.ID {
		return fault.ErrNotAssetOwner
	}
	if r.locked {
		return fault.ErrAssetLocked
	}

	trx := storage.NewTransaction()

	r.owner = to
	trx.Put(storage.Pool.Assets, assetKey(assetId), r.pack())
	trx.Delete(storage.Pool.Contents, ownerAssetKey(from, assetId))

	detach(trx, from, assetId)
	attach(trx, to, assetId)

	if err := trx.Commit(); nil != err {
		return err
	}

	globalData.log.Infof("transfer: %d  %s → %s", assetId, from, to)
	publish.Send("asset.transferred", transferEvent{AssetId: assetId, From: from, To: to})

	return nil
}

// SetLock - set or clear the transfer lock of one asset
//
// only the registered auction address may do this
func SetLock(caller account.Address, assetId uint64, locked bool) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	if globalData.auctionAddress.IsZero() || caller.ID != globalData.auctionAddress.ID {
		return fault.ErrNotAuctionController
	}

	buffer := storage.Pool.Assets.Get(assetKey(assetId))
	if nil == buffer {
		return fault.ErrAssetNotFound
	}
	r := unpack(buffer)
	r.locked = locked
	storage.Pool.Assets.Put(assetKey(assetId), r.pack())

	globalData.log.Debugf("lock: %d  locked: %t", assetId, locked)

	return nil
}

// OwnerOf - the current owner of an asset
func OwnerOf(assetId uint64) (account.Address, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := storage.Pool.Assets.Get(assetKey(assetId))
	if nil == buffer {
		return account.Address{}, fault.ErrAssetNotFound
	}
	return unpack(buffer).owner, nil
}

// IsLocked - the lock flag of an asset
func IsLocked(assetId uint64) (bool, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := storage.Pool.Assets.Get(assetKey(assetId))
	if nil == buffer {
		return false, fault.ErrAssetNotFound
	}
	return unpack(buffer).locked, nil
}

// Content - the content slot for one (owner, asset) pairing
//
// empty if nothing was ever set for that pairing
func Content(owner account.Address, assetId uint64) string {
	globalData.RLock()
	defer globalData.RUnlock()

	return string(storage.Pool.Contents.Get(ownerAssetKey(owner, assetId)))
}

// TokenURI - the metadata locator of an asset
func TokenURI(assetId uint64) (string, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !storage.Pool.Assets.Has(assetKey(assetId)) {
		return "", fault.ErrAssetNotFound
	}
	return globalData.baseURI + strconv.FormatUint(assetId, 10) + ".json", nil
}

// BalanceOf - number of assets held by an owner
func BalanceOf(owner account.Address) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	n, _ := storage.Pool.OwnerCount.GetN(owner.Bytes())
	return n
}

// AssetOfOwnerByIndex - enumerate one owner's assets
//
// index runs from zero to BalanceOf(owner)-1
func AssetOfOwnerByIndex(owner account.Address, index uint64) (uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	count, _ := storage.Pool.OwnerCount.GetN(owner.Bytes())
	if index >= count {
		return 0, fault.ErrInvalidCount
	}
	assetId, ok := storage.Pool.OwnerList.GetN(listKey(owner, index))
	if !ok {
		return 0, fault.ErrAssetNotFound
	}
	return assetId, nil
}

// Exists - check that an asset was minted
func Exists(assetId uint64) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	return storage.Pool.Assets.Has(assetKey(assetId))
}

// allocate the next id and store the new record
//
// caller holds the global lock and commits the transaction
func mint(trx storage.Transaction, to account.Address, content string) uint64 {

	n, _ := trx.GetN(storage.Pool.Control, nextAssetKey)
	assetId := n + 1
	trx.PutN(storage.Pool.Control, nextAssetKey, assetId)

	r := record{owner: to}
	trx.Put(storage.Pool.Assets, assetKey(assetId), r.pack())
	if "" != content {
		trx.Put(storage.Pool.Contents, ownerAssetKey(to, assetId), []byte(content))
	}

	attach(trx, to, assetId)

	return assetId
}

// append one asset to an owner's enumeration list
func attach(trx storage.Transaction, owner account.Address, assetId uint64) {
	count, _ := trx.GetN(storage.Pool.OwnerCount, owner.Bytes())
	trx.PutN(storage.Pool.OwnerList, listKey(owner, count), assetId)
	trx.PutN(storage.Pool.OwnerIndex, ownerAssetKey(owner, assetId), count)
	trx.PutN(storage.Pool.OwnerCount, owner.Bytes(), count+1)
}

// remove one asset from an owner's enumeration list
//
// the final list entry is swapped into the vacated slot so the list
// stays dense for enumeration
func detach(trx storage.Transaction, owner account.Address, assetId uint64) {
	count, _ := trx.GetN(storage.Pool.OwnerCount, owner.Bytes())
	if 0 == count {
		return
	}
	last := count - 1

	index, ok := trx.GetN(storage.Pool.OwnerIndex, ownerAssetKey(owner, assetId))
	if !ok {
		return
	}

	if index != last {
		lastAsset, _ := trx.GetN(storage.Pool.OwnerList, listKey(owner, last))
		trx.PutN(storage.Pool.OwnerList, listKey(owner, index), lastAsset)
		trx.PutN(storage.Pool.OwnerIndex, ownerAssetKey(owner, lastAsset), index)
	}

	trx.Delete(storage.Pool.OwnerList, listKey(owner, last))
	trx.Delete(storage.Pool.OwnerIndex, ownerAssetKey(owner, assetId))
	trx.PutN(storage.Pool.OwnerCount, owner.Bytes(), last)
}
