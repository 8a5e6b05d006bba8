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
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
	"testing/iotest"

	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SuppliedSeedIsUsedVerbatim(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	seed := digestOf(100)

	pair, err := engine.Generate(&seed, 5)
	require.NoError(t, err)
	require.Equal(t, seed, pair.Seed)
	require.Equal(t, digestOf(105), pair.Commitment)
	require.Equal(t, 5, pair.Iterations)
}

func TestGenerate_CommitmentIsSeedAdvancedByIterations(t *testing.T) {
	engine := sha256Engine(t)
	seed := common.Digest{0xaa}
	pair, err := engine.Generate(&seed, 1000)
	require.NoError(t, err)
	require.Equal(t, engine.Advance(seed, 1000), pair.Commitment)
}

func TestGenerate_FreshSeedIsDrawnFromEntropySource(t *testing.T) {
	entropy := bytes.Repeat([]byte{7}, common.DigestSize)
	engine := NewEngine(incrementHasher{}, WithEntropy(bytes.NewReader(entropy)))

	pair, err := engine.Generate(nil, 3)
	require.NoError(t, err)
	require.Equal(t, common.Digest(entropy), pair.Seed)
	require.Equal(t, engine.Advance(pair.Seed, 3), pair.Commitment)
}

func TestGenerate_DefaultEntropyProducesDistinctSeeds(t *testing.T) {
	engine := sha256Engine(t)
	first, err := engine.Generate(nil, 1)
	require.NoError(t, err)
	second, err := engine.Generate(nil, 1)
	require.NoError(t, err)
	require.NotEqual(t, first.Seed, second.Seed)
}

func TestGenerate_EntropyFailureIsReported(t *testing.T) {
	issue := errors.New("no entropy")
	engine := NewEngine(incrementHasher{}, WithEntropy(iotest.ErrReader(issue)))
	_, err := engine.Generate(nil, 3)
	require.ErrorIs(t, err, issue)

	engine = NewEngine(incrementHasher{}, WithEntropy(bytes.NewReader(make([]byte, 10))))
	_, err = engine.Generate(nil, 3)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestGenerate_NonPositiveIterationsAreRejected(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	seed := digestOf(1)
	for _, iterations := range []int{0, -1} {
		_, err := engine.Generate(&seed, iterations)
		require.ErrorIs(t, err, ErrInvalidIterations)
	}
}

func TestVerify_FindsChainLengthWithinBound(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	for n := 1; n <= 12; n++ {
		seed := digestOf(0)
		pair, err := engine.Generate(&seed, n)
		require.NoError(t, err)
		for bound := 1; bound <= 15; bound++ {
			t.Run(fmt.Sprintf("n=%d/bound=%d", n, bound), func(t *testing.T) {
				steps, err := engine.Verify(pair.Seed, pair.Commitment, bound)
				if bound >= n {
					require.NoError(t, err)
					require.Equal(t, n, steps)
				} else {
					require.ErrorIs(t, err, ErrNotVerified)
				}
			})
		}
	}
}

func TestVerify_NotVerifiedIsANotFoundOutcome(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	_, err := engine.Verify(digestOf(0), digestOf(9), 3)
	require.ErrorIs(t, err, ErrNotVerified)
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "after 3 iterations")
}

func TestVerify_NonPositiveBoundPerformsOneStep(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	for _, bound := range []int{0, -7} {
		steps, err := engine.Verify(digestOf(0), digestOf(1), bound)
		require.NoError(t, err)
		require.Equal(t, 1, steps)

		_, err = engine.Verify(digestOf(0), digestOf(2), bound)
		require.ErrorIs(t, err, ErrNotVerified)
	}
}

func TestVerify_UnrelatedPairsAreNotVerified(t *testing.T) {
	engine := sha256Engine(t)
	seed := common.Digest{1}
	pair, err := engine.Generate(&seed, 50)
	require.NoError(t, err)

	_, err = engine.Verify(common.Digest{2}, pair.Commitment, 200)
	require.ErrorIs(t, err, ErrNotVerified)
}

func TestScenario_ZeroSeedWithIncrementingHash(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	seed := common.Digest{}

	pair, err := engine.Generate(&seed, 5)
	require.NoError(t, err)
	require.Equal(t, digestOf(5), pair.Commitment)

	steps, err := engine.Verify(seed, pair.Commitment, 10)
	require.NoError(t, err)
	require.Equal(t, 5, steps)

	_, err = engine.Verify(seed, pair.Commitment, 3)
	require.ErrorIs(t, err, ErrNotVerified)

	proof, err := engine.Prove(seed, pair.Commitment, Config{Iterations: 10, Offset: 2, FinalHop: FinalHopOffset})
	require.NoError(t, err)
	require.Equal(t, digestOf(3), proof.Disclosure)
	require.Equal(t, 5, proof.Length)
	require.Equal(t, 3, proof.Position())
}
