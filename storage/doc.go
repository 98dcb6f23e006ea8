// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database containing several pools of
// key/value pairs; each pool is distinguished by a one byte prefix so
// that its records sort together
//
// the registry, auction and treasury never touch LevelDB directly,
// they only use the exported pool handles and transactions
package storage
