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

func runMintWhitelisted(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkIdentity(c)
	if nil != err {
		return err
	}

	proof, err := checkProof(c.String("proof"))
	if nil != err {
		return err
	}

	payment, err := checkAmount(c.String("payment"))
	if nil != err {
		return err
	}

	content := c.String("content")

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "proof length: %d\n", len(proof))
		fmt.Fprintf(m.e, "payment: %d\n", payment)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	mintConfig := &rpccalls.MintWhitelistedData{
		Owner:   owner,
		Proof:   proof,
		Content: content,
		Payment: payment,
	}

	response, err := client.MintWhitelisted(mintConfig)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
