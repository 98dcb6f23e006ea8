// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package treasury

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/yopTupoTop/auction/account"
	"github.com/yopTupoTop/auction/asset"
	"github.com/yopTupoTop/auction/fault"
	"github.com/yopTupoTop/auction/publish"
	"github.com/yopTupoTop/auction/storage"
)

// event payload for settlement broadcasts
type settlementEvent struct {
	AssetId uint64          `json:"assetId"`
	Seller  account.Address `json:"seller"`
	Buyer   account.Address `json:"buyer"`
	Amount  uint64          `json:"amount"`
}

// RecordTrade - create the pending-trade record for an accepted offer
//
// only the auction may do this; the deadline is now plus the
// settlement window
func RecordTrade(caller account.Address, assetId uint64, seller account.Address, buyer account.Address, amount uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	if caller.ID != globalData.controller.ID {
		return fault.ErrNotAuctionController
	}

	if storage.Pool.Trades.Has(tradeKey(assetId)) {
		return fault.ErrTradeAlreadyPending
	}

	trade := Trade{
		Seller:   seller,
		Buyer:    buyer,
		Amount:   amount,
		Deadline: time.Now().Add(globalData.window),
	}
	storage.Pool.Trades.Put(tradeKey(assetId), trade.pack())

	globalData.log.Infof("record: %d  seller: %s  buyer: %s  amount: %d", assetId, seller, buyer, amount)

	return nil
}

// Pay - lodge the buyer's payment into escrow
//
// only the recorded buyer may pay, and only the exact amount
func Pay(caller account.Address, assetId uint64, payment uint64) error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	buffer := storage.Pool.Trades.Get(tradeKey(assetId))
	if nil == buffer {
		return fault.ErrNoSuchTrade
	}
	trade := unpackTrade(buffer)

	if caller.ID != trade.Buyer.ID {
		return fault.ErrNotBuyer
	}
	if trade.Paid {
		return fault.ErrTradeAlreadyPaid
	}
	if payment != trade.Amount {
		return fault.ErrExactAmountRequired
	}

	trade.Paid = true

	trx := storage.NewTransaction()
	trx.Put(storage.Pool.Trades, tradeKey(assetId), trade.pack())

	// funds sit with the escrow until the trade is checked
	held, _ := trx.GetN(storage.Pool.Balances, globalData.escrow.Bytes())
	trx.PutN(storage.Pool.Balances, globalData.escrow.Bytes(), held+payment)

	if err := trx.Commit(); nil != err {
		return err
	}

	globalData.log.Infof("pay: %d  amount: %d", assetId, payment)

	return nil
}

// CheckTrade - finalize one paid trade inside its window
//
// moves the asset from escrow to the buyer, credits the seller,
// reactivates the auction and deletes the record so a second check
// finds nothing
func CheckTrade(assetId uint64) error {

	reactivate, err := finalizeTrade(assetId)
	if nil != err {
		return err
	}

	// outside the package lock so the callback may take the auction's
	if nil != reactivate {
		if err := reactivate(assetId); nil != err {
			globalData.log.Warnf("reactivate: %d  error: %s", assetId, err)
		}
	}

	return nil
}

// the locked part of CheckTrade
func finalizeTrade(assetId uint64) (ReactivateFunc, error) {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}

	buffer := storage.Pool.Trades.Get(tradeKey(assetId))
	if nil == buffer {
		return nil, fault.ErrNoSuchTrade
	}
	trade := unpackTrade(buffer)

	if time.Now().After(trade.Deadline) {
		return nil, fault.ErrTradeExpired
	}
	if !trade.Paid {
		return nil, fault.ErrTradeNotPaid
	}

	// release custody: unlock, hand over, then move the funds
	if err := asset.SetLock(globalData.controller, assetId, false); nil != err {
		return nil, err
	}
	if err := asset.Transfer(globalData.escrow, trade.Buyer, assetId); nil != err {
		// keep the asset locked while the trade stays pending
		_ = asset.SetLock(globalData.controller, assetId, true)
		return nil, err
	}

	trx := storage.NewTransaction()
	trx.Delete(storage.Pool.Trades, tradeKey(assetId))

	held, _ := trx.GetN(storage.Pool.Balances, globalData.escrow.Bytes())
	if held < trade.Amount {
		logger.Panicf("treasury: escrow balance underflow: held: %d  amount: %d", held, trade.Amount)
	}
	trx.PutN(storage.Pool.Balances, globalData.escrow.Bytes(), held-trade.Amount)

	sellerBalance, _ := trx.GetN(storage.Pool.Balances, trade.Seller.Bytes())
	trx.PutN(storage.Pool.Balances, trade.Seller.Bytes(), sellerBalance+trade.Amount)

	if err := trx.Commit(); nil != err {
		return nil, err
	}

	globalData.log.Infof("settled: %d  seller: %s  buyer: %s  amount: %d",
		assetId, trade.Seller, trade.Buyer, trade.Amount)
	publish.Send("trade.settled", settlementEvent{
		AssetId: assetId,
		Seller:  trade.Seller,
		Buyer:   trade.Buyer,
		Amount:  trade.Amount,
	})

	return globalData.reactivate, nil
}

// Pending - read one pending trade
func Pending(assetId uint64) (Trade, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return Trade{}, fault.ErrNotInitialised
	}

	buffer := storage.Pool.Trades.Get(tradeKey(assetId))
	if nil == buffer {
		return Trade{}, fault.ErrNoSuchTrade
	}
	return unpackTrade(buffer), nil
}

// Balance - settled funds held for one address
func Balance(owner account.Address) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	n, _ := storage.Pool.Balances.GetN(owner.Bytes())
	return n
}
