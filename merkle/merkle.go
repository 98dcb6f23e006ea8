// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - whitelist membership trees
//
// pairs are hashed in sorted order so that an inclusion proof does
// not need left/right direction flags
package merkle

import (
	"bytes"
)

// hash one pair, lower digest first
func hashPair(a Digest, b Digest) Digest {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return NewDigest(append(a[:], b[:]...))
}

// Root - compute the root of a sorted-pair tree over some leaves
//
// an odd leaf at the end of a level is promoted unchanged
func Root(leaves []Digest) Digest {

	if 0 == len(leaves) {
		return Digest{}
	}

	level := make([]Digest, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([]Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
			} else {
				next = append(next, hashPair(level[i], level[i+1]))
			}
		}
		level = next
	}
	return level[0]
}

// Proof - compute the inclusion proof for one leaf position
//
// returns nil if the index is out of range
func Proof(leaves []Digest, index int) []Digest {

	if index < 0 || index >= len(leaves) {
		return nil
	}

	proof := make([]Digest, 0, 8)

	level := make([]Digest, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		sibling := index ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}

		next := make([]Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
			} else {
				next = append(next, hashPair(level[i], level[i+1]))
			}
		}
		level = next
		index /= 2
	}

	return proof
}

// Verify - check an inclusion proof of a leaf against a root
func Verify(leaf Digest, proof []Digest, root Digest) bool {

	computed := leaf
	for _, p := range proof {
		computed = hashPair(computed, p)
	}
	return computed == root
}
