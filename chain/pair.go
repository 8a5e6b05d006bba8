// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chain

import (
	"fmt"
	"io"

	"github.com/0xsoniclabs/hashcheck/common"
)

// Pair is a seed together with the commitment derived from it.
type Pair struct {
	Seed       common.Digest // < secret, never to be shared
	Commitment common.Digest // < public
	Iterations int
}

// Generate derives a commitment by hashing the seed the given number of
// times. If seed is nil, a fresh seed is drawn from the engine's random
// source. Nothing is persisted; storing the pair is up to the caller.
func (e *Engine) Generate(seed *common.Digest, iterations int) (Pair, error) {
	if iterations <= 0 {
		return Pair{}, fmt.Errorf("%w, got %d", ErrInvalidIterations, iterations)
	}
	var s common.Digest
	if seed != nil {
		s = *seed
	} else if _, err := io.ReadFull(e.entropy, s[:]); err != nil {
		return Pair{}, fmt.Errorf("failed to read random seed: %w", err)
	}
	return Pair{
		Seed:       s,
		Commitment: e.Advance(s, iterations),
		Iterations: iterations,
	}, nil
}

// Verify determines the number of hashes connecting the seed to the
// commitment, searching at most bound steps. A non-positive bound is raised
// to a single step. If no connection is found, ErrNotVerified is returned.
//
// This is a brute-force search performing up to bound hashes, so the bound
// controls both the security margin and the cost of a verification.
func (e *Engine) Verify(seed, commitment common.Digest, bound int) (int, error) {
	if bound <= 0 {
		bound = 1
	}
	steps, err := e.Find(seed, commitment, bound)
	if err != nil {
		return 0, fmt.Errorf("%w: could not verify pair after %d iterations", ErrNotVerified, bound)
	}
	return steps, nil
}
