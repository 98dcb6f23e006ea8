// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/merkle"
)

// the caller identity from the global flag
func checkIdentity(c *cli.Context) (account.Address, error) {
	identity := c.GlobalString("identity")
	if "" == identity {
		return account.Address{}, fault.ErrMissingParameters
	}
	return account.AddressFromBase58(identity)
}

func checkAddress(addressBase58 string) (account.Address, error) {
	if "" == addressBase58 {
		return account.Address{}, fault.ErrMissingParameters
	}
	return account.AddressFromBase58(addressBase58)
}

func checkAssetId(assetId string) (uint64, error) {
	if "" == assetId {
		return 0, fault.ErrMissingParameters
	}
	return strconv.ParseUint(assetId, 10, 64)
}

func checkAmount(amount string) (uint64, error) {
	if "" == amount {
		return 0, fault.ErrMissingParameters
	}
	return strconv.ParseUint(amount, 10, 64)
}

// comma separated hex digests
func checkProof(proof string) ([]merkle.Digest, error) {
	if "" == proof {
		return nil, fault.ErrMissingParameters
	}
	parts := strings.Split(proof, ",")
	digests := make([]merkle.Digest, len(parts))
	for i, part := range parts {
		err := digests[i].UnmarshalText([]byte(strings.TrimSpace(part)))
		if nil != err {
			return nil, err
		}
	}
	return digests, nil
}
