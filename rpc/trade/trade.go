// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trade - the settlement face of the RPC
//
// the service struct is named Treasury so clients call Treasury.Pay,
// Treasury.Check and so on
package trade

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/mode"
	"github.com/yopTupoTop/auction/rpc/ratelimit"
	"github.com/yopTupoTop/auction/treasury"
)

// Treasury - type for the RPC
type Treasury struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
}

const (
	rateLimitTreasury = 200
	rateBurstTreasury = 100
)

// New - create the treasury service
func New(log *logger.L, isNormalMode func(mode.Mode) bool) *Treasury {
	return &Treasury{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitTreasury, rateBurstTreasury),
		IsNormalMode: isNormalMode,
	}
}

// PayArguments - arguments for RPC request
type PayArguments struct {
	Caller  account.Address `json:"caller"`
	AssetId uint64          `json:"assetId"`
	Amount  uint64          `json:"amount"`
}

// PayReply - results from pay RPC request
type PayReply struct {
	AssetId uint64 `json:"assetId"`
	Paid    bool   `json:"paid"`
}

// Pay - lodge the buyer's payment into escrow
func (t *Treasury) Pay(arguments *PayArguments, reply *PayReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}
	if !t.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	t.Log.Infof("Treasury.Pay: %+v", arguments)

	if err := treasury.Pay(arguments.Caller, arguments.AssetId, arguments.Amount); nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Paid = true

	return nil
}

// CheckArguments - arguments for RPC request
type CheckArguments struct {
	AssetId uint64 `json:"assetId"`
}

// CheckReply - results from check RPC request
type CheckReply struct {
	AssetId uint64 `json:"assetId"`
	Settled bool   `json:"settled"`
}

// Check - finalize a paid trade inside its window
func (t *Treasury) Check(arguments *CheckArguments, reply *CheckReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}
	if !t.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	t.Log.Infof("Treasury.Check: %+v", arguments)

	if err := treasury.CheckTrade(arguments.AssetId); nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Settled = true

	return nil
}

// PendingArguments - arguments for RPC request
type PendingArguments struct {
	AssetId uint64 `json:"assetId"`
}

// PendingReply - results from pending RPC request
type PendingReply struct {
	AssetId uint64         `json:"assetId"`
	Trade   treasury.Trade `json:"trade"`
}

// Pending - read one pending trade
func (t *Treasury) Pending(arguments *PendingArguments, reply *PendingReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}
	if !t.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	t.Log.Infof("Treasury.Pending: %+v", arguments)

	trade, err := treasury.Pending(arguments.AssetId)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Trade = trade

	return nil
}

// BalanceArguments - arguments for RPC request
type BalanceArguments struct {
	Owner account.Address `json:"owner"`
}

// BalanceReply - results from balance RPC request
type BalanceReply struct {
	Owner   account.Address `json:"owner"`
	Balance uint64          `json:"balance"`
}

// Balance - settled funds held for one address
func (t *Treasury) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}
	if !t.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringStartup
	}

	reply.Owner = arguments.Owner
	reply.Balance = treasury.Balance(arguments.Owner)

	return nil
}
