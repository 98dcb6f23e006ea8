// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
)

// flag bits of the packed record
const (
	recordFlagLocked    = 0x01
	recordFlagTestOwner = 0x02
)

// packed record is: flags ‖ owner id
const recordSize = 1 + account.IDLength

// the unpacked form of one asset record
type record struct {
	owner  account.Address
	locked bool
}

// pack - flags byte followed by the owner identifier
func (r record) pack() []byte {
	buffer := make([]byte, recordSize)
	if r.locked {
		buffer[0] |= recordFlagLocked
	}
	if r.owner.Test {
		buffer[0] |= recordFlagTestOwner
	}
	copy(buffer[1:], r.owner.ID[:])
	return buffer
}

// unpack - decode a stored asset record
//
// the pool only ever holds records written by pack, so a size mismatch
// is database corruption
func unpack(buffer []byte) record {
	if recordSize != len(buffer) {
		logger.Panicf("asset: invalid record size: %d", len(buffer))
	}
	r := record{
		locked: 0 != buffer[0]&recordFlagLocked,
	}
	r.owner.Test = 0 != buffer[0]&recordFlagTestOwner
	copy(r.owner.ID[:], buffer[1:])
	return r
}

// database key for one asset
func assetKey(assetId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, assetId)
	return key
}

// database key for one (owner, asset) pairing
func ownerAssetKey(owner account.Address, assetId uint64) []byte {
	key := make([]byte, 0, account.IDLength+8)
	key = append(key, owner.ID[:]...)
	return append(key, assetKey(assetId)...)
}

// database key for one slot of an owner's enumeration list
func listKey(owner account.Address, index uint64) []byte {
	return ownerAssetKey(owner, index)
}
