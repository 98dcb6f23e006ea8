// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/rpc/listing"
)

// SellData - data for a sell request
type SellData struct {
	Caller     account.Address
	AssetId    uint64
	StartPrice uint64
}

// Sell - open a listing cycle
func (client *Client) Sell(sellConfig *SellData) (*listing.StatusReply, error) {

	arguments := listing.SellArguments{
		Caller:     sellConfig.Caller,
		AssetId:    sellConfig.AssetId,
		StartPrice: sellConfig.StartPrice,
	}

	client.printJson("Sell Request", arguments)

	reply := &listing.StatusReply{}
	if err := client.client.Call("Auction.Sell", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Sell Reply", reply)

	return reply, nil
}

// BidData - data for a bid request
type BidData struct {
	Caller  account.Address
	AssetId uint64
	Amount  uint64
}

// Bid - replace the highest bid
func (client *Client) Bid(bidConfig *BidData) (*listing.StatusReply, error) {

	arguments := listing.BidArguments{
		Caller:  bidConfig.Caller,
		AssetId: bidConfig.AssetId,
		Amount:  bidConfig.Amount,
	}

	client.printJson("Bid Request", arguments)

	reply := &listing.StatusReply{}
	if err := client.client.Call("Auction.Bid", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Bid Reply", reply)

	return reply, nil
}

// Cancel - take a listing off the market
func (client *Client) Cancel(caller account.Address, assetId uint64) (*listing.StatusReply, error) {

	arguments := listing.ListingArguments{
		Caller:  caller,
		AssetId: assetId,
	}

	client.printJson("Cancel Request", arguments)

	reply := &listing.StatusReply{}
	if err := client.client.Call("Auction.Cancel", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Cancel Reply", reply)

	return reply, nil
}

// Accept - accept the highest bid and open the settlement
func (client *Client) Accept(caller account.Address, assetId uint64) (*listing.AcceptReply, error) {

	arguments := listing.ListingArguments{
		Caller:  caller,
		AssetId: assetId,
	}

	client.printJson("Accept Request", arguments)

	reply := &listing.AcceptReply{}
	if err := client.client.Call("Auction.Accept", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Accept Reply", reply)

	return reply, nil
}

// Reactivate - unpause a halted listing
func (client *Client) Reactivate(caller account.Address, assetId uint64) (*listing.StatusReply, error) {

	arguments := listing.ListingArguments{
		Caller:  caller,
		AssetId: assetId,
	}

	client.printJson("Reactivate Request", arguments)

	reply := &listing.StatusReply{}
	if err := client.client.Call("Auction.Reactivate", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Reactivate Reply", reply)

	return reply, nil
}

// Status - read the full listing condition
func (client *Client) Status(assetId uint64) (*listing.StatusReply, error) {

	arguments := listing.StatusArguments{
		AssetId: assetId,
	}

	client.printJson("Status Request", arguments)

	reply := &listing.StatusReply{}
	if err := client.client.Call("Auction.Status", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return reply, nil
}

// Grant - give an address the unpause capability
func (client *Client) Grant(caller account.Address, holder account.Address) (*listing.GrantReply, error) {

	arguments := listing.GrantArguments{
		Caller: caller,
		Holder: holder,
	}

	client.printJson("Grant Request", arguments)

	reply := &listing.GrantReply{}
	if err := client.client.Call("Auction.Grant", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Grant Reply", reply)

	return reply, nil
}

// Revoke - withdraw the unpause capability
func (client *Client) Revoke(caller account.Address, holder account.Address) (*listing.GrantReply, error) {

	arguments := listing.GrantArguments{
		Caller: caller,
		Holder: holder,
	}

	client.printJson("Revoke Request", arguments)

	reply := &listing.GrantReply{}
	if err := client.client.Call("Auction.Revoke", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Revoke Reply", reply)

	return reply, nil
}
