// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blacklist

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/yopTupoTop/auction/account"
)

// watches the blacklist file for edits
type watcherData struct {
	fileName string
	watcher  *fsnotify.Watcher
}

func newWatcher(fileName string) (*watcherData, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	// watch the directory; editors replace files rather than write in place
	if err := watcher.Add(filepath.Dir(fileName)); nil != err {
		watcher.Close()
		return nil, err
	}

	return &watcherData{
		fileName: fileName,
		watcher:  watcher,
	}, nil
}

// background loop
func (w *watcherData) Run(args interface{}, shutdown <-chan struct{}) {

	log := args.(*logger.L)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event := <-w.watcher.Events:
			if w.fileName != event.Name {
				continue loop
			}
			if 0 == event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue loop
			}
			log.Infof("blacklist file changed: %s", event.Name)
			if err := reloadFile(w.fileName); nil != err {
				log.Errorf("blacklist reload error: %s", err)
			}

		case err := <-w.watcher.Errors:
			if nil != err {
				log.Errorf("blacklist watch error: %s", err)
			}
		}
	}

	w.watcher.Close()
}

// read a JSON array of base58 addresses
func loadFile(fileName string) ([]account.Address, error) {

	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	var encoded []string
	if err := json.Unmarshal(data, &encoded); nil != err {
		return nil, err
	}

	addresses := make([]account.Address, 0, len(encoded))
	for _, item := range encoded {
		address, err := account.AddressFromBase58(item)
		if nil != err {
			return nil, err
		}
		addresses = append(addresses, address)
	}

	return addresses, nil
}

// replace the current set from the file
//
// watcher path only; Initialise loads directly since it already holds
// the global lock
func reloadFile(fileName string) error {
	addresses, err := loadFile(fileName)
	if nil != err {
		return err
	}
	replace(addresses)
	return nil
}
