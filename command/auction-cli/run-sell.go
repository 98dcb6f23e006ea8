// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/yopTupoTop/auction/command/auction-cli/rpccalls"
)

func runSell(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkIdentity(c)
	if nil != err {
		return err
	}

	assetId, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	startPrice, err := checkAmount(c.String("price"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "asset: %d\n", assetId)
		fmt.Fprintf(m.e, "seller: %s\n", caller)
		fmt.Fprintf(m.e, "start price: %d\n", startPrice)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	sellConfig := &rpccalls.SellData{
		Caller:     caller,
		AssetId:    assetId,
		StartPrice: startPrice,
	}

	response, err := client.Sell(sellConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
