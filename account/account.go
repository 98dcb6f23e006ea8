// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - participant addresses
//
// an address is an opaque fixed-width identifier; the base58 text form
// carries a network flag byte and a truncated sha3 checksum so that a
// testing address cannot be replayed against a live marketplace
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/yopTupoTop/auction/fault"
)

// miscellaneous constants
const (
	IDLength       = 20
	checksumLength = 4

	liveFlag = 0x41
	testFlag = 0x68
)

// Address - base type for marketplace participants
type Address struct {
	Test bool
	ID   [IDLength]byte
}

// AddressFromBytes - build an address from a raw identifier
func AddressFromBytes(test bool, id []byte) (Address, error) {
	if IDLength != len(id) {
		return Address{}, fault.ErrCannotDecodeAddress
	}
	address := Address{Test: test}
	copy(address.ID[:], id)
	return address, nil
}

// AddressFromBase58 - convert the base58 text form back to an address
func AddressFromBase58(addressBase58Encoded string) (Address, error) {

	decoded, err := base58.Decode(addressBase58Encoded)
	if nil != err {
		return Address{}, fault.ErrCannotDecodeAddress
	}

	if 1+IDLength+checksumLength != len(decoded) {
		return Address{}, fault.ErrCannotDecodeAddress
	}

	address := Address{}
	switch decoded[0] {
	case liveFlag:
		address.Test = false
	case testFlag:
		address.Test = true
	default:
		return Address{}, fault.ErrWrongNetworkForAddress
	}

	copy(address.ID[:], decoded[1:1+IDLength])

	checksum := computeChecksum(decoded[:1+IDLength])
	if !bytes.Equal(checksum, decoded[1+IDLength:]) {
		return Address{}, fault.ErrChecksumMismatch
	}

	return address, nil
}

// Bytes - raw identifier bytes
func (address Address) Bytes() []byte {
	return address.ID[:]
}

// IsZero - an unset address
func (address Address) IsZero() bool {
	return Address{Test: address.Test} == address
}

// Digest - whitelist leaf value for this address
func (address Address) Digest() [32]byte {
	return sha3.Sum256(address.ID[:])
}

// String - base58 text form for use by the fmt package (for %s)
func (address Address) String() string {
	flag := byte(liveFlag)
	if address.Test {
		flag = testFlag
	}
	buffer := make([]byte, 0, 1+IDLength+checksumLength)
	buffer = append(buffer, flag)
	buffer = append(buffer, address.ID[:]...)
	buffer = append(buffer, computeChecksum(buffer)...)
	return base58.Encode(buffer)
}

// MarshalText - base58 text form
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - decode the base58 text form
func (address *Address) UnmarshalText(s []byte) error {
	a, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*address = a
	return nil
}

// first bytes of sha3-256 over the flag and identifier
func computeChecksum(data []byte) []byte {
	digest := sha3.Sum256(data)
	return digest[:checksumLength]
}
