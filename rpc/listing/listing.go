// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listing - the auction face of the RPC
//
// the service struct is named Auction so clients call Auction.Sell,
// Auction.Bid and so on
package listing

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/auction"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/mode"
	"github.com/yopTupoTop/auction/rpc/ratelimit"
	"github.com/yopTupoTop/auction/treasury"
)

// Auction - type for the RPC
type Auction struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

const (
	rateLimitAuction = 200
	rateBurstAuction = 100
)

// New - create the auction service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Auction {
	return &Auction{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitAuction, rateBurstAuction),
		IsNormalMode: isNormalMode,
	}
}

// SellArguments - arguments for RPC request
type SellArguments struct {
	Caller     account.Address `json:"caller"`
	AssetId    uint64          `json:"assetId"`
	StartPrice uint64          `json:"startPrice"`
}

// BidArguments - arguments for RPC request
type BidArguments struct {
	Caller  account.Address `json:"caller"`
	AssetId uint64          `json:"assetId"`
	Amount  uint64          `json:"amount"`
}

// ListingArguments - arguments naming just a caller and an asset
type ListingArguments struct {
	Caller  account.Address `json:"caller"`
	AssetId uint64          `json:"assetId"`
}

// StatusArguments - arguments for RPC request
type StatusArguments struct {
	AssetId uint64 `json:"assetId"`
}

// StatusReply - the externally visible listing condition
type StatusReply struct {
	AssetId uint64          `json:"assetId"`
	Owner   account.Address `json:"owner"`
	Info    auction.Info    `json:"info"`
}

// AcceptReply - results from accepting an offer
type AcceptReply struct {
	AssetId  uint64          `json:"assetId"`
	Buyer    account.Address `json:"buyer"`
	Amount   uint64          `json:"amount"`
	Deadline time.Time       `json:"deadline"`
}

// Sell - open a listing cycle
func (a *Auction) Sell(arguments *SellArguments, reply *StatusReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	a.Log.Infof("Auction.Sell: %+v", arguments)

	if err := auction.SellAsset(arguments.Caller, arguments.AssetId, arguments.StartPrice); nil != err {
		return err
	}

	return a.status(arguments.AssetId, reply)
}

// Bid - replace the highest bid
func (a *Auction) Bid(arguments *BidArguments, reply *StatusReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	a.Log.Infof("Auction.Bid: %+v", arguments)

	if err := auction.PlaceBid(arguments.Caller, arguments.AssetId, arguments.Amount); nil != err {
		return err
	}

	return a.status(arguments.AssetId, reply)
}

// Cancel - take a listing off the market
func (a *Auction) Cancel(arguments *ListingArguments, reply *StatusReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	a.Log.Infof("Auction.Cancel: %+v", arguments)

	if err := auction.CancelAsset(arguments.Caller, arguments.AssetId); nil != err {
		return err
	}

	return a.status(arguments.AssetId, reply)
}

// Accept - accept the highest bid and open the settlement
func (a *Auction) Accept(arguments *ListingArguments, reply *AcceptReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	a.Log.Infof("Auction.Accept: %+v", arguments)

	if err := auction.AcceptOffer(arguments.Caller, arguments.AssetId); nil != err {
		return err
	}

	trade, err := treasury.Pending(arguments.AssetId)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Buyer = trade.Buyer
	reply.Amount = trade.Amount
	reply.Deadline = trade.Deadline

	return nil
}

// Reactivate - unpause a halted listing
func (a *Auction) Reactivate(arguments *ListingArguments, reply *StatusReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	a.Log.Infof("Auction.Reactivate: %+v", arguments)

	if err := auction.UpdateRelevance(arguments.Caller, arguments.AssetId); nil != err {
		return err
	}

	return a.status(arguments.AssetId, reply)
}

// GrantArguments - arguments for the capability RPCs
type GrantArguments struct {
	Caller account.Address `json:"caller"`
	Holder account.Address `json:"holder"`
}

// GrantReply - results from the capability RPCs
type GrantReply struct {
	Holder account.Address `json:"holder"`
}

// Grant - give an address the unpause capability
func (a *Auction) Grant(arguments *GrantArguments, reply *GrantReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	a.Log.Infof("Auction.Grant: %+v", arguments)

	if err := auction.GrantUnpause(arguments.Caller, arguments.Holder); nil != err {
		return err
	}

	reply.Holder = arguments.Holder
	return nil
}

// Revoke - withdraw the unpause capability
func (a *Auction) Revoke(arguments *GrantArguments, reply *GrantReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	a.Log.Infof("Auction.Revoke: %+v", arguments)

	if err := auction.RevokeUnpause(arguments.Caller, arguments.Holder); nil != err {
		return err
	}

	reply.Holder = arguments.Holder
	return nil
}

// Status - read the full listing condition
func (a *Auction) Status(arguments *StatusArguments, reply *StatusReply) error {

	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	a.Log.Infof("Auction.Status: %+v", arguments)

	return a.status(arguments.AssetId, reply)
}

// fill a status reply
func (a *Auction) status(assetId uint64, reply *StatusReply) error {
	info, err := auction.Status(assetId)
	if nil != err {
		return err
	}
	owner, err := auction.Owner(assetId)
	if nil != err {
		return err
	}
	reply.AssetId = assetId
	reply.Owner = owner
	reply.Info = info
	return nil
}
