// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/yopTupoTop/auction/command/auction-cli/rpccalls"
)

func runAccept(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkIdentity(c)
	if nil != err {
		return err
	}

	assetId, err := checkAssetId(c.String("asset"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Accept(caller, assetId)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
