// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Scan - iterate over all records of one pool in key order
//
// the callback receives the key without its pool prefix; returning
// false stops the scan early
func (p *PoolHandle) Scan(fn func(key []byte, value []byte) bool) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return
	}

	iterator := poolData.db.NewIterator(ldb_util.BytesPrefix([]byte{p.prefix}), nil)
	defer iterator.Release()

	for iterator.Next() {
		key := make([]byte, len(iterator.Key())-1)
		copy(key, iterator.Key()[1:])
		value := make([]byte, len(iterator.Value()))
		copy(value, iterator.Value())
		if !fn(key, value) {
			break
		}
	}
}
