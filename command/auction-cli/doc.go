// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command-line access to an auctiond node
//
// e.g. to list an owned asset for sale:
//
//   auction-cli -c 127.0.0.1:2130 -i <address> sell -a 7 -p 100
package main
