// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/merkle"
	"github.com/yopTupoTop/auction/rpc/assets"
)

// MintData - data for a mint request
type MintData struct {
	Owner   account.Address
	Content string
	Payment uint64
}

// Mint - mint a new asset against full payment
func (client *Client) Mint(mintConfig *MintData) (*assets.MintReply, error) {

	arguments := assets.MintArguments{
		Owner:   mintConfig.Owner,
		Content: mintConfig.Content,
		Payment: mintConfig.Payment,
	}

	client.printJson("Mint Request", arguments)

	reply := &assets.MintReply{}
	if err := client.client.Call("Assets.Mint", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Mint Reply", reply)

	return reply, nil
}

// MintWhitelistedData - data for a whitelist mint request
type MintWhitelistedData struct {
	Owner   account.Address
	Proof   []merkle.Digest
	Content string
	Payment uint64
}

// MintWhitelisted - mint a new asset against a whitelist proof
func (client *Client) MintWhitelisted(mintConfig *MintWhitelistedData) (*assets.MintReply, error) {

	arguments := assets.MintWhitelistedArguments{
		Owner:   mintConfig.Owner,
		Proof:   mintConfig.Proof,
		Content: mintConfig.Content,
		Payment: mintConfig.Payment,
	}

	client.printJson("MintWhitelisted Request", arguments)

	reply := &assets.MintReply{}
	if err := client.client.Call("Assets.MintWhitelisted", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("MintWhitelisted Reply", reply)

	return reply, nil
}

// TransferData - data for a transfer request
type TransferData struct {
	From    account.Address
	To      account.Address
	AssetId uint64
}

// Transfer - move ownership of an asset
func (client *Client) Transfer(transferConfig *TransferData) (*assets.TransferReply, error) {

	arguments := assets.TransferArguments{
		From:    transferConfig.From,
		To:      transferConfig.To,
		AssetId: transferConfig.AssetId,
	}

	client.printJson("Transfer Request", arguments)

	reply := &assets.TransferReply{}
	if err := client.client.Call("Assets.Transfer", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Transfer Reply", reply)

	return reply, nil
}

// GetAsset - fetch one asset record
func (client *Client) GetAsset(assetId uint64) (*assets.GetReply, error) {

	arguments := assets.GetArguments{
		AssetId: assetId,
	}

	client.printJson("Get Request", arguments)

	reply := &assets.GetReply{}
	if err := client.client.Call("Assets.Get", &arguments, reply); nil != err {
		return nil, err
	}

	client.printJson("Get Reply", reply)

	return reply, nil
}
