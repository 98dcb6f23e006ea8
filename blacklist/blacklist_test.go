// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blacklist_test

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/blacklist"
)

const testDir = "testing"

func setupTestLogger(t *testing.T) {
	_ = os.RemoveAll(testDir)
	if err := os.Mkdir(testDir, 0700); nil != err {
		t.Fatalf("mkdir error: %s", err)
	}
	_ = logger.Initialise(logger.Configuration{
		Directory: testDir,
		File:      "test.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
}

func teardownTestLogger() {
	logger.Finalise()
	_ = os.RemoveAll(testDir)
}

func makeAddress(test bool, n byte) account.Address {
	id := make([]byte, account.IDLength)
	id[0] = n
	address, err := account.AddressFromBytes(test, id)
	if nil != err {
		panic(err)
	}
	return address
}

func TestAddRemove(t *testing.T) {
	setupTestLogger(t)
	defer teardownTestLogger()

	assert.Nil(t, blacklist.Initialise(""), "initialise error")
	defer blacklist.Finalise()

	one := makeAddress(true, 1)
	two := makeAddress(true, 2)

	assert.False(t, blacklist.IsBlacklisted(one), "empty set")

	blacklist.Add(one)
	assert.True(t, blacklist.IsBlacklisted(one), "added address")
	assert.False(t, blacklist.IsBlacklisted(two), "other address")

	blacklist.Remove(one)
	assert.False(t, blacklist.IsBlacklisted(one), "removed address")
}

func TestDoubleInitialise(t *testing.T) {
	setupTestLogger(t)
	defer teardownTestLogger()

	assert.Nil(t, blacklist.Initialise(""), "initialise error")
	defer blacklist.Finalise()

	assert.NotNil(t, blacklist.Initialise(""), "second initialise must fail")
}

func TestFileReload(t *testing.T) {
	setupTestLogger(t)
	defer teardownTestLogger()

	one := makeAddress(true, 1)
	two := makeAddress(true, 2)

	fileName := filepath.Join(testDir, "blacklist.json")
	writeList := func(addresses ...account.Address) {
		encoded := make([]string, len(addresses))
		for i, a := range addresses {
			encoded[i] = a.String()
		}
		data, err := json.Marshal(encoded)
		if nil != err {
			t.Fatalf("marshal error: %s", err)
		}
		if err := ioutil.WriteFile(fileName, data, 0600); nil != err {
			t.Fatalf("write error: %s", err)
		}
	}

	writeList(one)

	assert.Nil(t, blacklist.Initialise(fileName), "initialise error")
	defer blacklist.Finalise()

	assert.True(t, blacklist.IsBlacklisted(one), "initial file entry")
	assert.False(t, blacklist.IsBlacklisted(two), "absent entry")

	writeList(two)

	// the watcher runs in the background
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if blacklist.IsBlacklisted(two) && !blacklist.IsBlacklisted(one) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Error(fmt.Sprintf("reload not observed: one: %v  two: %v",
		blacklist.IsBlacklisted(one), blacklist.IsBlacklisted(two)))
}
