// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/storage"
)

// test database directory
const (
	databaseFileName = "test.leveldb"
	logDirectory     = "testing"
)

// remove all files created by test
func removeFiles() {
	_ = os.RemoveAll(databaseFileName)
	_ = os.RemoveAll(logDirectory)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if err := storage.Initialise(databaseFileName); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func TestPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	key := []byte("key-one")
	value := []byte("data-one")

	assert.False(t, p.Has(key), "unexpected record")

	p.Put(key, value)
	assert.True(t, p.Has(key), "missing record")
	assert.Equal(t, value, p.Get(key), "wrong value")

	p.Delete(key)
	assert.False(t, p.Has(key), "record not deleted")
	assert.Nil(t, p.Get(key), "deleted record has value")
}

func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("shared-key")

	storage.Pool.TestData.Put(key, []byte("test-data"))

	// the same key in a different pool must be independent
	assert.False(t, storage.Pool.Control.Has(key), "prefix leak")
	assert.Nil(t, storage.Pool.Control.Get(key), "prefix leak")
}

func TestGetNPutN(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Control

	key := []byte("counter")

	_, found := p.GetN(key)
	assert.False(t, found, "unexpected counter")

	p.PutN(key, 1234)
	n, found := p.GetN(key)
	assert.True(t, found, "missing counter")
	assert.Equal(t, uint64(1234), n, "wrong counter value")
}

func TestTransaction(t *testing.T) {
	setup(t)
	defer teardown(t)

	keyOne := []byte("trx-one")
	keyTwo := []byte("trx-two")

	storage.Pool.TestData.Put(keyOne, []byte("before"))

	trx := storage.NewTransaction()
	trx.Put(storage.Pool.TestData, keyTwo, []byte("after"))
	trx.Delete(storage.Pool.TestData, keyOne)
	trx.PutN(storage.Pool.Control, []byte("seq"), 7)

	assert.Nil(t, trx.Commit(), "commit error")

	assert.False(t, storage.Pool.TestData.Has(keyOne), "delete not applied")
	assert.Equal(t, []byte("after"), storage.Pool.TestData.Get(keyTwo), "put not applied")
	n, found := storage.Pool.Control.GetN([]byte("seq"))
	assert.True(t, found, "missing sequence")
	assert.Equal(t, uint64(7), n, "wrong sequence")
}

func TestPersistence(t *testing.T) {
	setup(t)

	key := []byte("persistent")
	storage.Pool.TestData.Put(key, []byte("still here"))

	// close and reopen
	storage.Finalise()
	if err := storage.Initialise(databaseFileName); nil != err {
		t.Fatalf("storage reinitialise error: %s", err)
	}
	defer teardown(t)

	assert.Equal(t, []byte("still here"), storage.Pool.TestData.Get(key), "record lost on reopen")
}
