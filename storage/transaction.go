// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Transaction - a batch of writes over several pools that commit together
//
// reads see the writes already queued on the same transaction; the
// callers serialise access through their own package locks
type Transaction interface {
	Put(pool *PoolHandle, key []byte, value []byte)
	PutN(pool *PoolHandle, key []byte, value uint64)
	Delete(pool *PoolHandle, key []byte)
	Get(pool *PoolHandle, key []byte) []byte
	GetN(pool *PoolHandle, key []byte) (uint64, bool)
	Has(pool *PoolHandle, key []byte) bool
	Commit() error
}

type transactionData struct {
	batch *leveldb.Batch
}

// NewTransaction - create an empty write batch
func NewTransaction() Transaction {
	return &transactionData{
		batch: new(leveldb.Batch),
	}
}

func (t *transactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	prefixed := pool.prefixKey(key)
	poolData.cache.Set(dbPut, string(prefixed), value)
	t.batch.Put(prefixed, value)
}

func (t *transactionData) PutN(pool *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(pool, key, buffer)
}

func (t *transactionData) Delete(pool *PoolHandle, key []byte) {
	prefixed := pool.prefixKey(key)
	poolData.cache.Set(dbDelete, string(prefixed), []byte{})
	t.batch.Delete(prefixed)
}

func (t *transactionData) Get(pool *PoolHandle, key []byte) []byte {
	return pool.Get(key)
}

func (t *transactionData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return pool.GetN(key)
}

func (t *transactionData) Has(pool *PoolHandle, key []byte) bool {
	return pool.Has(key)
}

// Commit - write the whole batch to the database
func (t *transactionData) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("transaction.Commit nil database")
		return nil
	}
	return poolData.db.Write(t.batch, nil)
}
