// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"time"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/asset"
	"github.com/yopTupoTop/auction/blacklist"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/treasury"
)

// event payload for listing broadcasts
type listingEvent struct {
	AssetId uint64          `json:"assetId"`
	Caller  account.Address `json:"caller"`
	Amount  uint64          `json:"amount,omitempty"`
}

// Info - the externally visible condition of one listing
type Info struct {
	State  string `json:"state"`
	Active bool   `json:"active"`
	Paused bool   `json:"paused"`
	Bid    Bid    `json:"bid"`
}

// SellAsset - open a listing cycle for an owned asset
//
// the opening price is recorded as the owner's own starting bid and
// the asset is locked for the duration of the cycle
func SellAsset(caller account.Address, assetId uint64, startPrice uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	owner, err := asset.OwnerOf(assetId)
	if nil != err {
		return err
	}
	if owner.ID != caller.ID {
		return fault.ErrNotAssetOwner
	}
	if blacklist.IsBlacklisted(caller) {
		return fault.ErrBlacklisted
	}

	l := globalData.listings[assetId]
	if nil == l {
		l = &listing{}
		globalData.listings[assetId] = l
	}

	if StateIdle != l.state {
		return fault.ErrAlreadyListed
	}
	if l.paused {
		return fault.ErrAuctionPaused
	}

	if err := asset.SetLock(globalData.address, assetId, true); nil != err {
		return err
	}

	l.state = StateListed
	l.active = true
	l.halt = haltNone
	l.bid = Bid{
		Amount: startPrice,
		Bidder: caller,
		When:   time.Now(),
	}

	globalData.log.Infof("listed: %d  owner: %s  start: %d", assetId, caller, startPrice)
	publish.Send("auction.listed", listingEvent{AssetId: assetId, Caller: caller, Amount: startPrice})

	return nil
}

// PlaceBid - replace the highest bid with a strictly greater one
//
// no funds move at bid time; a bid is a commitment only
func PlaceBid(caller account.Address, assetId uint64, amount uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	l := globalData.listings[assetId]
	if nil == l || StateListed != l.state {
		return fault.ErrNotListed
	}
	if blacklist.IsBlacklisted(caller) {
		return fault.ErrBlacklisted
	}
	if amount <= l.bid.Amount {
		return fault.ErrBidTooLow
	}

	l.bid = Bid{
		Amount: amount,
		Bidder: caller,
		When:   time.Now(),
	}

	globalData.log.Infof("bid: %d  bidder: %s  amount: %d", assetId, caller, amount)
	publish.Send("auction.bid", listingEvent{AssetId: assetId, Caller: caller, Amount: amount})

	return nil
}

// CancelAsset - take a listing off the market
//
// the bid record is cleared and the listing stays paused until it is
// reactivated
func CancelAsset(caller account.Address, assetId uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	l := globalData.listings[assetId]
	if nil == l || StateListed != l.state {
		return fault.ErrNotListed
	}

	owner, err := asset.OwnerOf(assetId)
	if nil != err {
		return err
	}
	if owner.ID != caller.ID {
		return fault.ErrNotAssetOwner
	}

	if err := asset.SetLock(globalData.address, assetId, false); nil != err {
		return err
	}

	l.state = StateIdle
	l.active = false
	l.paused = true
	l.halt = haltCancelled
	l.bid = Bid{}

	globalData.log.Infof("cancelled: %d  owner: %s", assetId, caller)
	publish.Send("auction.cancelled", listingEvent{AssetId: assetId, Caller: caller})

	return nil
}

// AcceptOffer - hand the asset to escrow and open the settlement
//
// rejected as a self trade when the highest bid still belongs to the
// owner, which covers the case of no bid above the opening price
func AcceptOffer(caller account.Address, assetId uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	l := globalData.listings[assetId]
	if nil == l || StateListed != l.state {
		return fault.ErrNotListed
	}

	owner, err := asset.OwnerOf(assetId)
	if nil != err {
		return err
	}
	if owner.ID != caller.ID {
		return fault.ErrNotAssetOwner
	}
	if l.bid.Bidder.ID == caller.ID {
		return fault.ErrSelfTrade
	}

	// custody to escrow: unlock, transfer, relock
	escrow := treasury.Escrow()
	if err := asset.SetLock(globalData.address, assetId, false); nil != err {
		return err
	}
	if err := asset.Transfer(caller, escrow, assetId); nil != err {
		// leave the asset locked as it was while still listed
		_ = asset.SetLock(globalData.address, assetId, true)
		return err
	}
	if err := asset.SetLock(globalData.address, assetId, true); nil != err {
		return err
	}

	if err := treasury.RecordTrade(globalData.address, assetId, caller, l.bid.Bidder, l.bid.Amount); nil != err {
		// return custody so the listing stays consistent
		_ = asset.SetLock(globalData.address, assetId, false)
		if e := asset.Transfer(escrow, caller, assetId); nil != e {
			globalData.log.Criticalf("accept: %d  custody return error: %s", assetId, e)
		}
		_ = asset.SetLock(globalData.address, assetId, true)
		return err
	}

	l.state = StateSettling
	l.active = false
	l.paused = true
	l.halt = haltSettled

	globalData.log.Infof("accepted: %d  seller: %s  buyer: %s  amount: %d",
		assetId, caller, l.bid.Bidder, l.bid.Amount)
	publish.Send("auction.accepted", listingEvent{AssetId: assetId, Caller: caller, Amount: l.bid.Amount})

	return nil
}

// SettleComplete - called by the treasury when a trade finalizes
//
// returns the listing to an unpaused idle state ready for a fresh
// cycle; the bid record is reset
func SettleComplete(assetId uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	l := globalData.listings[assetId]
	if nil == l {
		return fault.ErrListingNotFound
	}
	if StateSettling != l.state {
		return fault.ErrNotListed
	}

	l.state = StateIdle
	l.active = true
	l.paused = false
	l.halt = haltNone
	l.bid = Bid{}

	globalData.log.Infof("settled: %d", assetId)

	return nil
}

// GrantUnpause - give an address the unpause capability
//
// the grant itself needs the admin capability; the two are held by
// different parties so no single credential can both halt and resume
func GrantUnpause(caller account.Address, holder account.Address) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	if caller.ID != globalData.admin.ID {
		return fault.ErrNotAdmin
	}

	globalData.unpausers[holder.ID] = struct{}{}
	globalData.log.Infof("grant unpause: %s", holder)

	return nil
}

// RevokeUnpause - withdraw the unpause capability
func RevokeUnpause(caller account.Address, holder account.Address) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	if caller.ID != globalData.admin.ID {
		return fault.ErrNotAdmin
	}

	delete(globalData.unpausers, holder.ID)
	globalData.log.Infof("revoke unpause: %s", holder)

	return nil
}

// UpdateRelevance - reactivate a halted listing
//
// after a cancel the bid record is left as it stands; after a
// settlement halt it is reset so the next cycle starts clean
func UpdateRelevance(caller account.Address, assetId uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	if _, ok := globalData.unpausers[caller.ID]; !ok {
		return fault.ErrNotUnpauser
	}

	l := globalData.listings[assetId]
	if nil == l {
		return fault.ErrListingNotFound
	}
	if !l.paused {
		return fault.ErrAuctionNotPaused
	}

	if haltSettled == l.halt {
		l.bid = Bid{}
	}
	l.state = StateIdle
	l.active = true
	l.paused = false
	l.halt = haltNone

	globalData.log.Infof("reactivated: %d  by: %s", assetId, caller)

	return nil
}

// Relevance - whether a listing is live on the market
func Relevance(assetId uint64) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	l := globalData.listings[assetId]
	if nil == l {
		return false
	}
	return l.active && !l.paused
}

// LastBid - the current highest-bid record
func LastBid(assetId uint64) (Bid, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	l := globalData.listings[assetId]
	if nil == l {
		return Bid{}, fault.ErrListingNotFound
	}
	return l.bid, nil
}

// Status - the full externally visible condition of one listing
//
// an asset that was never listed reports an idle listing
func Status(assetId uint64) (Info, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	l := globalData.listings[assetId]
	if nil == l {
		if !asset.Exists(assetId) {
			return Info{}, fault.ErrAssetNotFound
		}
		return Info{State: StateIdle.String()}, nil
	}
	return Info{
		State:  l.state.String(),
		Active: l.active,
		Paused: l.paused,
		Bid:    l.bid,
	}, nil
}

// Owner - the registry's owner of record for an asset
func Owner(assetId uint64) (account.Address, error) {
	return asset.OwnerOf(assetId)
}
