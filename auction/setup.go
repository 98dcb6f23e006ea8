// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auction - per-asset listing state machines
//
// one listing record per asset id, reused across listing cycles:
//
//   Idle → Listed → Idle        (cancel)
//   Idle → Listed → Settling → Idle  (accept, then settle)
//
// a halted listing stays paused until it is reactivated, either by the
// treasury on settlement or by a holder of the unpause capability
package auction

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/fault"
)

// State - where a listing is in its cycle
type State int

// listing states
const (
	StateIdle State = iota
	StateListed
	StateSettling
)

// String - display name of a state
func (state State) String() string {
	switch state {
	case StateIdle:
		return "Idle"
	case StateListed:
		return "Listed"
	case StateSettling:
		return "Settling"
	default:
		return "?"
	}
}

// why a listing was halted
type haltReason int

const (
	haltNone haltReason = iota
	haltCancelled
	haltSettled
)

// Bid - the highest-bid record of one listing
type Bid struct {
	Amount uint64          `json:"amount"`
	Bidder account.Address `json:"bidder"`
	When   time.Time       `json:"when"`
}

// one listing record
type listing struct {
	state  State
	active bool
	paused bool
	halt   haltReason
	bid    Bid
}

// globals
type globalDataType struct {
	sync.RWMutex
	log *logger.L

	admin   account.Address // grants and revokes the unpause capability
	address account.Address // identity used towards registry and treasury

	listings  map[uint64]*listing
	unpausers map[[account.IDLength]byte]struct{}

	// set once during initialise
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the listing registry
//
// address is this auction's own identity; it must match the registry's
// auction address and the treasury's controller
func Initialise(admin account.Address, address account.Address) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if admin.IsZero() || address.IsZero() {
		return fault.ErrAddressIsZero
	}

	globalData.log = logger.New("auction")
	globalData.log.Info("starting…")

	globalData.admin = admin
	globalData.address = address
	globalData.listings = make(map[uint64]*listing)
	globalData.unpausers = make(map[[account.IDLength]byte]struct{})

	globalData.initialised = true

	return nil
}

// Finalise - shut down the listing registry
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.Lock()
	globalData.initialised = false
	globalData.listings = nil
	globalData.unpausers = nil
	globalData.Unlock()

	return nil
}

// Address - the auction's own identity
func Address() account.Address {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.address
}
