// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package hashing provides the digest primitives hash chains are built from.
// Each algorithm maps a 32-byte digest to a 32-byte digest and is selected by
// name, with sha256 being the default.
package hashing

//go:generate mockgen -source hasher.go -destination hasher_mocks.go -package hashing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/0xsoniclabs/hashcheck/common"
	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"golang.org/x/exp/maps"
	"lukechampine.com/blake3"
)

// Default is the name of the algorithm used when none is configured.
const Default = "sha256"

var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Hasher is a fixed-output-length cryptographic hash function applied to a
// single digest. Implementations must be stateless and safe for concurrent use.
type Hasher interface {
	// Algorithm returns the name the hasher is registered under.
	Algorithm() string
	// Hash computes the digest of the given digest.
	Hash(common.Digest) common.Digest
}

// hasher adapts a one-shot hash function to the Hasher interface.
type hasher struct {
	name string
	sum  func([]byte) [common.DigestSize]byte
}

func (h hasher) Algorithm() string {
	return h.name
}

func (h hasher) Hash(in common.Digest) common.Digest {
	return h.sum(in[:])
}

func keccak256(data []byte) [common.DigestSize]byte {
	var res [common.DigestSize]byte
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(res[:0])
	return res
}

var registry = map[string]Hasher{
	"sha256":      hasher{name: "sha256", sum: sha256.Sum256},
	"sha3-256":    hasher{name: "sha3-256", sum: sha3.Sum256},
	"keccak256":   hasher{name: "keccak256", sum: keccak256},
	"blake2b-256": hasher{name: "blake2b-256", sum: blake2b.Sum256},
	"blake3":      hasher{name: "blake3", sum: blake3.Sum256},
}

// Lookup returns the hasher registered under the given name. An empty name
// selects the default algorithm.
func Lookup(name string) (Hasher, error) {
	if name == "" {
		name = Default
	}
	h, found := registry[name]
	if !found {
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownAlgorithm, name, Algorithms())
	}
	return h, nil
}

// Algorithms lists the names of all supported algorithms in sorted order.
func Algorithms() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}
