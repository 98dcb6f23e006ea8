// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yopTupoTop/auction/configuration"
)

type testConfiguration struct {
	DataDirectory string   `gluamapper:"data_directory"`
	Chain         string   `gluamapper:"chain"`
	Prices        prices   `gluamapper:"prices"`
	Broadcast     []string `gluamapper:"broadcast"`
}

type prices struct {
	Base       uint64 `gluamapper:"base"`
	Additional uint64 `gluamapper:"additional"`
}

const luaFile = `
local M = {}

M.data_directory = "/var/lib/auctiond"
M.chain = "testing"

M.prices = {
    base = 100,
    additional = 50,
}

M.broadcast = {
    "tcp://127.0.0.1:5566",
    "tcp://127.0.0.1:5567",
}

return M
`

func TestParseConfigurationFile(t *testing.T) {

	file, err := ioutil.TempFile("", "configuration-*.lua")
	assert.Nil(t, err, "temp file error")
	fileName := file.Name()
	defer os.Remove(fileName)

	_, err = file.WriteString(luaFile)
	assert.Nil(t, err, "write error")
	file.Close()

	config := testConfiguration{}
	err = configuration.ParseConfigurationFile(fileName, &config)
	assert.Nil(t, err, "parse error")

	assert.Equal(t, "/var/lib/auctiond", config.DataDirectory, "wrong data directory")
	assert.Equal(t, "testing", config.Chain, "wrong chain")
	assert.Equal(t, uint64(100), config.Prices.Base, "wrong base price")
	assert.Equal(t, uint64(50), config.Prices.Additional, "wrong additional price")
	assert.Equal(t, []string{"tcp://127.0.0.1:5566", "tcp://127.0.0.1:5567"}, config.Broadcast, "wrong broadcast list")
}

func TestParseMissingFile(t *testing.T) {
	config := testConfiguration{}
	err := configuration.ParseConfigurationFile("no-such-file.lua", &config)
	assert.NotNil(t, err, "missing file accepted")
}
