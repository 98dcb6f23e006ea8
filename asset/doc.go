// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - the asset registry
//
// canonical record of ownership for every minted asset together with
// its lock flag and the per-(owner, asset) content slot
//
// custody rules:
// a. every asset has exactly one owner
// b. a locked asset cannot be transferred by its owner
// c. only the registered auction address may toggle the lock
// d. content is bound to the (owner, asset) pairing and is cleared
//    when the asset changes hands, never copied
package asset
