// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/asset"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/merkle"
	"github.com/yopTupoTop/auction/mode"
	"github.com/yopTupoTop/auction/rpc/ratelimit"
)

// Assets - type for the RPC
type Assets struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

const (
	rateLimitAssets = 200
	rateBurstAssets = 100
)

// New - create the assets service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Assets {
	return &Assets{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitAssets, rateBurstAssets),
		IsNormalMode: isNormalMode,
	}
}

// MintArguments - arguments for RPC request
type MintArguments struct {
	Owner   account.Address `json:"owner"`
	Content string          `json:"content"`
	Payment uint64          `json:"payment"`
}

// MintWhitelistedArguments - arguments for RPC request
type MintWhitelistedArguments struct {
	Owner   account.Address `json:"owner"`
	Proof   []merkle.Digest `json:"proof"`
	Content string          `json:"content"`
	Payment uint64          `json:"payment"`
}

// MintReply - results from mint RPC requests
type MintReply struct {
	AssetId  uint64 `json:"assetId"`
	TokenURI string `json:"tokenUri"`
}

// Mint - mint a new asset against full payment
func (assets *Assets) Mint(arguments *MintArguments, reply *MintReply) error {

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if !assets.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	assets.Log.Infof("Assets.Mint: %+v", arguments)

	assetId, err := asset.MintPaid(arguments.Owner, arguments.Content, arguments.Payment)
	if nil != err {
		return err
	}

	uri, err := asset.TokenURI(assetId)
	if nil != err {
		return err
	}

	reply.AssetId = assetId
	reply.TokenURI = uri

	return nil
}

// MintWhitelisted - mint a new asset against a whitelist proof
func (assets *Assets) MintWhitelisted(arguments *MintWhitelistedArguments, reply *MintReply) error {

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if !assets.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	assets.Log.Infof("Assets.MintWhitelisted: %+v", arguments)

	assetId, err := asset.MintWhitelisted(arguments.Owner, arguments.Proof, arguments.Content, arguments.Payment)
	if nil != err {
		return err
	}

	uri, err := asset.TokenURI(assetId)
	if nil != err {
		return err
	}

	reply.AssetId = assetId
	reply.TokenURI = uri

	return nil
}

// TransferArguments - arguments for RPC request
type TransferArguments struct {
	From    account.Address `json:"from"`
	To      account.Address `json:"to"`
	AssetId uint64          `json:"assetId"`
}

// TransferReply - results from transfer RPC request
type TransferReply struct {
	AssetId uint64          `json:"assetId"`
	Owner   account.Address `json:"owner"`
}

// Transfer - move ownership of an asset
func (assets *Assets) Transfer(arguments *TransferArguments, reply *TransferReply) error {

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if !assets.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	assets.Log.Infof("Assets.Transfer: %+v", arguments)

	if err := asset.Transfer(arguments.From, arguments.To, arguments.AssetId); nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Owner = arguments.To

	return nil
}

// GetArguments - arguments for RPC request
type GetArguments struct {
	AssetId uint64 `json:"assetId"`
}

// GetReply - results from get RPC request
type GetReply struct {
	AssetId  uint64          `json:"assetId"`
	Owner    account.Address `json:"owner"`
	Locked   bool            `json:"locked"`
	Content  string          `json:"content"`
	TokenURI string          `json:"tokenUri"`
	Balance  uint64          `json:"balance"`
}

// Get - RPC to fetch one asset record
func (assets *Assets) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if !assets.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	assets.Log.Infof("Assets.Get: %+v", arguments)

	owner, err := asset.OwnerOf(arguments.AssetId)
	if nil != err {
		return err
	}
	locked, err := asset.IsLocked(arguments.AssetId)
	if nil != err {
		return err
	}
	uri, err := asset.TokenURI(arguments.AssetId)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Owner = owner
	reply.Locked = locked
	reply.Content = asset.Content(owner, arguments.AssetId)
	reply.TokenURI = uri
	reply.Balance = asset.BalanceOf(owner)

	return nil
}
