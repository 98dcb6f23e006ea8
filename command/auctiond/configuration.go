// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/chain"
	"github.com/yopTupoTop/auction/configuration"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/rpc/listeners"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultLiveDatabase     = chain.Live + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "auctiond.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients      = 10
	defaultBasePrice       = 100
	defaultAdditionalPrice = 50
)

// DatabaseType - directory and name of the LevelDB store
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// PricesType - mint pricing
type PricesType struct {
	Base       uint64 `gluamapper:"base" json:"base"`
	Additional uint64 `gluamapper:"additional" json:"additional"`
}

// MarketType - the fixed participants of the marketplace
type MarketType struct {
	Admin            string `gluamapper:"admin" json:"admin"`
	AuctionAddress   string `gluamapper:"auction_address" json:"auction_address"`
	Escrow           string `gluamapper:"escrow" json:"escrow"`
	BaseURI          string `gluamapper:"base_uri" json:"base_uri"`
	SettlementWindow string `gluamapper:"settlement_window" json:"settlement_window"`
}

// Configuration - the full configuration file data
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	BlacklistFile string `gluamapper:"blacklist_file" json:"blacklist_file"`

	Market MarketType `gluamapper:"market" json:"market"`
	Prices PricesType `gluamapper:"prices" json:"prices"`

	ClientRPC  listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Publishing publish.Configuration      `gluamapper:"publishing" json:"publishing"`
	Logging    logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Testing,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultTestingDatabase,
		},

		Market: MarketType{
			BaseURI:          "https://assets.example/",
			SettlementWindow: "24h",
		},

		Prices: PricesType{
			Base:       defaultBasePrice,
			Additional: defaultAdditionalPrice,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// if any test mode and the database is the live database
	if options.Chain != chain.Live && options.Database.Name == defaultLiveDatabase {
		switch options.Chain {
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errConfiguration("invalid data directory: " + options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileDoesNotExist(options.DataDirectory) {
		return nil, errConfiguration("directory does not exist: " + options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}
	if "" != options.BlacklistFile {
		options.BlacklistFile = ensureAbsolute(options.DataDirectory, options.BlacklistFile)
	}
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if the certificate files are missing, then load their
	// contents since the listener takes PEM data not file names
	for _, f := range []*string{
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
	} {
		if fileDoesNotExist(*f) {
			return nil, errConfiguration("file does not exist: " + *f)
		}
		data, err := ioutil.ReadFile(*f)
		if nil != err {
			return nil, err
		}
		*f = string(data)
	}

	// make the database directory and name
	options.Database.Name = ensureAbsolute(options.Database.Directory, options.Database.Name)

	return options, nil
}

// settlementWindow - parse the configured settlement window
func (configuration *Configuration) settlementWindow() (time.Duration, error) {
	if "" == configuration.Market.SettlementWindow {
		return 0, nil
	}
	return time.ParseDuration(configuration.Market.SettlementWindow)
}

// error type for configuration problems
type errConfiguration string

func (e errConfiguration) Error() string { return string(e) }

// ensureAbsolute - ensure the path is absolute
//
// if not, prepend the directory to make absolute path
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
