// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Assets     *PoolHandle `prefix:"A"` // asset id → packed asset record
	Contents   *PoolHandle `prefix:"C"` // owner‖asset id → content string
	Claims     *PoolHandle `prefix:"W"` // owner → whitelist claim marker
	OwnerCount *PoolHandle `prefix:"N"` // owner → number of owned assets
	OwnerList  *PoolHandle `prefix:"L"` // owner‖index → asset id
	OwnerIndex *PoolHandle `prefix:"D"` // owner‖asset id → index in owner list
	Control    *PoolHandle `prefix:"K"` // miscellaneous counters (next asset id)
	Trades     *PoolHandle `prefix:"T"` // asset id → packed pending trade
	Balances   *PoolHandle `prefix:"B"` // owner → currency balance
	TestData   *PoolHandle `prefix:"Z"` // reserved for unit tests
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	db    *leveldb.DB
	cache Cache

	// set once during initialise
	initialised bool
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if poolData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("storage")
	log.Info("starting…")

	db, err := leveldb.OpenFile(database, nil)
	if nil != err {
		log.Criticalf("cannot open database: %q  error: %s", database, err)
		return err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return err
	}

	switch {
	case 0 == version:
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			db.Close()
			return err
		}
	case currentDBVersion == version:
		// matches
	default:
		log.Criticalf("database version: %d  expected: %d", version, currentDBVersion)
		db.Close()
		return fault.ErrChecksumMismatch
	}

	poolData.db = db
	poolData.cache = newCache()

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field to locate its prefix tag
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("storage: pool: %s has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		p := &PoolHandle{
			prefix: prefixTag[0],
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	poolData.initialised = true

	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if !poolData.initialised {
		return
	}

	poolData.cache.Clear()
	poolData.db.Close()
	poolData.db = nil
	poolData.initialised = false
}

// read the version record
func getVersion(db *leveldb.DB) (uint32, error) {
	value, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}
	if 4 != len(value) {
		return 0, fault.ErrChecksumMismatch
	}
	return binary.BigEndian.Uint32(value), nil
}

// write the version record
func putVersion(db *leveldb.DB, version uint32) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, version)
	return db.Put(versionKey, value, &ldb_opt.WriteOptions{Sync: true})
}
