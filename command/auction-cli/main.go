// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "auction-cli"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "",
			Usage: "*auctiond host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity address `ADDRESS` acting as the caller",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "mint",
			Usage:     "mint a new asset against full payment",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "content, n",
					Value: "",
					Usage: " content `STRING` attached to the new asset",
				},
				cli.StringFlag{
					Name:  "payment, p",
					Value: "",
					Usage: "*payment `AMOUNT` covering base and additional price",
				},
			},
			Action: runMint,
		},
		{
			Name:      "mint-whitelisted",
			Usage:     "mint a new asset against a whitelist proof",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "proof, r",
					Value: "",
					Usage: "*comma separated hex `DIGESTS` proving whitelist membership",
				},
				cli.StringFlag{
					Name:  "content, n",
					Value: "",
					Usage: " content `STRING` attached to the new asset",
				},
				cli.StringFlag{
					Name:  "payment, p",
					Value: "",
					Usage: "*payment `AMOUNT` covering the base price",
				},
			},
			Action: runMintWhitelisted,
		},
		{
			Name:      "transfer",
			Usage:     "transfer an asset to a new owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` to transfer",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*address `ADDRESS` of the new owner",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "get",
			Usage:     "display one asset record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` to fetch",
				},
			},
			Action: runGet,
		},
		{
			Name:      "sell",
			Usage:     "open a listing cycle for an owned asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` to list",
				},
				cli.StringFlag{
					Name:  "price, p",
					Value: "",
					Usage: "*starting `PRICE` for the listing",
				},
			},
			Action: runSell,
		},
		{
			Name:      "bid",
			Usage:     "replace the highest bid on a listing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` of the listing",
				},
				cli.StringFlag{
					Name:  "amount, m",
					Value: "",
					Usage: "*bid `AMOUNT`, must exceed the current bid",
				},
			},
			Action: runBid,
		},
		{
			Name:      "cancel",
			Usage:     "take a listing off the market",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` of the listing",
				},
			},
			Action: runCancel,
		},
		{
			Name:      "accept",
			Usage:     "accept the highest bid and open the settlement",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` of the listing",
				},
			},
			Action: runAccept,
		},
		{
			Name:      "reactivate",
			Usage:     "unpause a halted listing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` of the listing",
				},
			},
			Action: runReactivate,
		},
		{
			Name:      "grant",
			Usage:     "give an address the unpause capability",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "holder, d",
					Value: "",
					Usage: "*address `ADDRESS` receiving the capability",
				},
			},
			Action: runGrant,
		},
		{
			Name:      "revoke",
			Usage:     "withdraw the unpause capability",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "holder, d",
					Value: "",
					Usage: "*address `ADDRESS` losing the capability",
				},
			},
			Action: runRevoke,
		},
		{
			Name:      "status",
			Usage:     "display the full listing condition",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` of the listing",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "pay",
			Usage:     "lodge the buyer's payment into escrow",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` of the pending trade",
				},
				cli.StringFlag{
					Name:  "amount, m",
					Value: "",
					Usage: "*payment `AMOUNT`, must match the accepted bid",
				},
			},
			Action: runPay,
		},
		{
			Name:      "settle",
			Usage:     "finalize a paid trade inside its window",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` of the pending trade",
				},
			},
			Action: runSettle,
		},
		{
			Name:      "pending",
			Usage:     "display one pending trade",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ID` of the pending trade",
				},
			},
			Action: runPending,
		},
		{
			Name:      "balance",
			Usage:     "display settled funds held for an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " address `ADDRESS` to query [default identity]",
				},
			},
			Action: runBalance,
		},
		{
			Name:   "info",
			Usage:  "display auctiond status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display auction-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		// no connection needed to show the version
		if "version" == c.Args().Get(0) {
			return nil
		}

		connect := c.GlobalString("connect")
		if "" == connect {
			return fmt.Errorf("missing connect HOST:PORT")
		}

		c.App.Metadata["config"] = &metadata{
			connect: connect,
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(os.Stderr, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
