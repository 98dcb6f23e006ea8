// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type AccessDeniedError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressIsZero              = InvalidError("address is zero")
	ErrAlreadyClaimed             = ExistsError("whitelist mint already claimed")
	ErrAlreadyInitialised         = ProcessError("already initialised")
	ErrAlreadyListed              = ExistsError("asset is already listed")
	ErrAssetLocked                = ProcessError("asset is locked")
	ErrAssetNotFound              = NotFoundError("asset not found")
	ErrAuctionNotPaused           = ProcessError("auction is not paused")
	ErrAuctionPaused              = ProcessError("auction is paused")
	ErrBidTooLow                  = InvalidError("bid does not exceed the current highest bid")
	ErrBlacklisted                = AccessDeniedError("address is blacklisted")
	ErrCannotDecodeAddress        = RecordError("cannot decode address")
	ErrCertificateFileExists      = ExistsError("certificate file already exists")
	ErrChecksumMismatch           = ProcessError("checksum mismatch")
	ErrExactAmountRequired        = InvalidError("payment must match the recorded trade amount")
	ErrInsufficientPayment        = InvalidError("insufficient payment")
	ErrInvalidCount               = InvalidError("invalid count")
	ErrInvalidIPAddress           = InvalidError("invalid ip address")
	ErrInvalidLoggerChannel       = InvalidError("invalid logger channel")
	ErrInvalidProof               = InvalidError("merkle proof verification failed")
	ErrInvalidStructPointer       = InvalidError("invalid struct pointer")
	ErrKeyFileExists              = ExistsError("key file already exists")
	ErrListingNotFound            = NotFoundError("no listing for asset")
	ErrMissingParameters          = LengthError("missing parameters")
	ErrNoSuchTrade                = NotFoundError("no pending trade for asset")
	ErrNotAdmin                   = AccessDeniedError("caller does not hold the admin capability")
	ErrNotAssetOwner              = AccessDeniedError("caller is not the asset owner")
	ErrNotAuctionController       = AccessDeniedError("caller is not the registered auction address")
	ErrNotAvailableDuringStartup  = ProcessError("not available during startup")
	ErrNotBuyer                   = AccessDeniedError("caller is not the recorded buyer")
	ErrNotInitialised             = ProcessError("not initialised")
	ErrNotListed                  = ProcessError("asset is not listed")
	ErrNotUnpauser                = AccessDeniedError("caller does not hold the unpause capability")
	ErrRateLimiting               = ProcessError("rate limiting active")
	ErrRecipientBlacklisted       = AccessDeniedError("recipient address is blacklisted")
	ErrSelfTrade                  = InvalidError("cannot accept own bid")
	ErrSenderBlacklisted          = AccessDeniedError("sender address is blacklisted")
	ErrTradeAlreadyPaid           = ExistsError("trade is already paid")
	ErrTradeAlreadyPending        = ExistsError("trade is already pending")
	ErrTradeExpired               = ProcessError("trade deadline has passed")
	ErrTradeNotPaid               = ProcessError("trade is not paid yet")
	ErrWrongNetworkForAddress     = InvalidError("wrong network for address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessDeniedError) Error() string { return string(e) }
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e LengthError) Error() string       { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e RecordError) Error() string       { return string(e) }

// determine the class of an error
func IsErrAccessDenied(e error) bool { _, ok := e.(AccessDeniedError); return ok }
func IsErrExists(e error) bool       { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool      { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool       { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool     { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool      { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool       { _, ok := e.(RecordError); return ok }
