// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/rpc/trade"
)

// PayData - data for a pay request
type PayData struct {
	Caller  account.Address
	AssetId uint64
	Amount  uint64
}

// Pay - lodge the buyer's payment into escrow
func (client *Client) Pay(payConfig *PayData) (*trade.PayReply, error) {

	arguments := trade.PayArguments{
		Caller:  payConfig.Caller,
		AssetId: payConfig.AssetId,
		Amount:  payConfig.Amount,
	}

	client.printJson("Pay Request", arguments)

	reply := &trade.PayReply{}
	if err := client.client.Call("Treasury.Pay", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Pay Reply", reply)

	return reply, nil
}

// Settle - finalize a paid trade inside its window
func (client *Client) Settle(assetId uint64) (*trade.CheckReply, error) {

	arguments := trade.CheckArguments{
		AssetId: assetId,
	}

	client.printJson("Check Request", arguments)

	reply := &trade.CheckReply{}
	if err := client.client.Call("Treasury.Check", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Check Reply", reply)

	return reply, nil
}

// Pending - read one pending trade
func (client *Client) Pending(assetId uint64) (*trade.PendingReply, error) {

	arguments := trade.PendingArguments{
		AssetId: assetId,
	}

	client.printJson("Pending Request", arguments)

	reply := &trade.PendingReply{}
	if err := client.client.Call("Treasury.Pending", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Pending Reply", reply)

	return reply, nil
}

// Balance - settled funds held for one address
func (client *Client) Balance(owner account.Address) (*trade.BalanceReply, error) {

	arguments := trade.BalanceArguments{
		Owner: owner,
	}

	client.printJson("Balance Request", arguments)

	reply := &trade.BalanceReply{}
	if err := client.client.Call("Treasury.Balance", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}
