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
	"errors"
	"fmt"
	"testing"

	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/0xsoniclabs/hashcheck/hashing"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestParseFinalHop(t *testing.T) {
	tests := map[string]FinalHop{
		"":       FinalHopOffset,
		"offset": FinalHopOffset,
		"single": FinalHopSingle,
	}
	for name, want := range tests {
		got, err := ParseFinalHop(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseFinalHop("double")
	require.ErrorIs(t, err, ErrUnknownFinalHop)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.Equal(t, 4194304, config.Iterations)
	require.Equal(t, 1, config.Offset)
	require.Equal(t, FinalHopOffset, config.FinalHop)
}

func TestProve_SucceedsForAllOffsetsWithinChain(t *testing.T) {
	const length = 10
	engine := NewEngine(incrementHasher{})
	seed := digestOf(0)
	commitment := digestOf(length)

	for offset := 1; offset < length; offset++ {
		t.Run(fmt.Sprintf("offset=%d", offset), func(t *testing.T) {
			proof, err := engine.Prove(seed, commitment, Config{Iterations: 2 * length, Offset: offset})
			require.NoError(t, err)
			require.Equal(t, length, proof.Length)
			require.Equal(t, offset, proof.Offset)
			require.Equal(t, digestOf(uint64(length-offset)), proof.Disclosure)
			require.Equal(t, commitment, engine.Advance(proof.Disclosure, offset))
		})
	}
}

func TestProve_SingleHopModeAcceptsOffsetOne(t *testing.T) {
	engine := sha256Engine(t)
	seed := common.Digest{3}
	pair, err := engine.Generate(&seed, 20)
	require.NoError(t, err)

	proof, err := engine.Prove(seed, pair.Commitment, Config{Iterations: 20, Offset: 1, FinalHop: FinalHopSingle})
	require.NoError(t, err)
	require.Equal(t, pair.Commitment, engine.Advance(proof.Disclosure, 1))
}

func TestProve_SingleHopModeRejectsLargerOffsets(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	_, err := engine.Prove(digestOf(0), digestOf(5), Config{Iterations: 10, Offset: 2, FinalHop: FinalHopSingle})
	require.ErrorIs(t, err, ErrProofFailed)
}

func TestProve_NonPositiveOffsetIsRejectedBeforeHashing(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewEngine(hashing.NewMockHasher(ctrl))

	for _, offset := range []int{0, -1, -100} {
		_, err := engine.Prove(digestOf(0), digestOf(5), Config{Iterations: 10, Offset: offset})
		require.ErrorIs(t, err, ErrInvalidOffset)
	}
}

func TestProve_OffsetNotBelowSearchBoundIsRejectedBeforeHashing(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewEngine(hashing.NewMockHasher(ctrl))

	for _, offset := range []int{10, 11} {
		_, err := engine.Prove(digestOf(0), digestOf(5), Config{Iterations: 10, Offset: offset})
		require.ErrorIs(t, err, ErrInvalidOffset)
	}
}

func TestProve_OffsetNotBelowChainLengthIsRejected(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	for _, offset := range []int{5, 6, 9} {
		_, err := engine.Prove(digestOf(0), digestOf(5), Config{Iterations: 10, Offset: offset})
		require.ErrorIs(t, err, ErrInvalidOffset)

		var issue *InvalidOffsetError
		require.True(t, errors.As(err, &issue))
		require.Equal(t, offset, issue.Offset)
		require.Equal(t, 5, issue.Length)
	}
}

func TestProve_UnknownFinalHopIsRejectedBeforeHashing(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := NewEngine(hashing.NewMockHasher(ctrl))
	_, err := engine.Prove(digestOf(0), digestOf(5), Config{Iterations: 10, Offset: 1, FinalHop: "twice"})
	require.ErrorIs(t, err, ErrUnknownFinalHop)
}

func TestProve_UnrelatedPairIsNotVerified(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	_, err := engine.Prove(digestOf(0), digestOf(50), Config{Iterations: 10, Offset: 1})
	require.ErrorIs(t, err, ErrNotVerified)
}

func TestProve_DoesNotModifySeed(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	seed := digestOf(0)
	_, err := engine.Prove(seed, digestOf(8), Config{Iterations: 10, Offset: 3})
	require.NoError(t, err)
	require.Equal(t, digestOf(0), seed)
}

func TestProve_RecordsDisclosureInLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockDisclosureLog(ctrl)
	commitment := digestOf(5)
	gomock.InOrder(
		log.EXPECT().Last(commitment).Return(0, false, nil),
		log.EXPECT().Record(commitment, 2).Return(nil),
	)

	engine := NewEngine(incrementHasher{}, WithDisclosureLog(log))
	_, err := engine.Prove(digestOf(0), commitment, Config{Iterations: 10, Offset: 2})
	require.NoError(t, err)
}

func TestProve_AcceptsOffsetLargerThanLastDisclosure(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockDisclosureLog(ctrl)
	commitment := digestOf(5)
	log.EXPECT().Last(commitment).Return(1, true, nil)
	log.EXPECT().Record(commitment, 2).Return(nil)

	engine := NewEngine(incrementHasher{}, WithDisclosureLog(log))
	_, err := engine.Prove(digestOf(0), commitment, Config{Iterations: 10, Offset: 2})
	require.NoError(t, err)
}

func TestProve_ConsumedOffsetIsRejectedBeforeHashing(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockDisclosureLog(ctrl)
	commitment := digestOf(5)
	log.EXPECT().Last(commitment).Return(3, true, nil).Times(2)

	engine := NewEngine(hashing.NewMockHasher(ctrl), WithDisclosureLog(log))
	for _, offset := range []int{2, 3} {
		_, err := engine.Prove(digestOf(0), commitment, Config{Iterations: 10, Offset: offset})
		require.ErrorIs(t, err, ErrOffsetConsumed)
	}
}

func TestProve_DisclosureLogFailuresAreReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockDisclosureLog(ctrl)
	commitment := digestOf(5)
	issue := errors.New("disk on fire")

	log.EXPECT().Last(commitment).Return(0, false, issue)
	engine := NewEngine(incrementHasher{}, WithDisclosureLog(log))
	_, err := engine.Prove(digestOf(0), commitment, Config{Iterations: 10, Offset: 2})
	require.ErrorIs(t, err, issue)

	log.EXPECT().Last(commitment).Return(0, false, nil)
	log.EXPECT().Record(commitment, 2).Return(issue)
	_, err = engine.Prove(digestOf(0), commitment, Config{Iterations: 10, Offset: 2})
	require.ErrorIs(t, err, issue)
}

func TestProve_FailedProofIsNotRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := NewMockDisclosureLog(ctrl)
	commitment := digestOf(5)
	log.EXPECT().Last(commitment).Return(0, false, nil)

	engine := NewEngine(incrementHasher{}, WithDisclosureLog(log))
	_, err := engine.Prove(digestOf(0), commitment, Config{Iterations: 10, Offset: 2, FinalHop: FinalHopSingle})
	require.ErrorIs(t, err, ErrProofFailed)
}

func TestCheckDisclosure_OffsetMode(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	commitment := digestOf(5)

	require.NoError(t, engine.CheckDisclosure(digestOf(3), commitment, 2, FinalHopOffset))
	require.NoError(t, engine.CheckDisclosure(digestOf(4), commitment, 1, FinalHopOffset))

	// too far away
	require.ErrorIs(t, engine.CheckDisclosure(digestOf(2), commitment, 2, FinalHopOffset), ErrProofFailed)
	// too close
	require.ErrorIs(t, engine.CheckDisclosure(digestOf(4), commitment, 2, FinalHopOffset), ErrProofFailed)
}

func TestCheckDisclosure_SingleMode(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	commitment := digestOf(5)

	require.NoError(t, engine.CheckDisclosure(digestOf(4), commitment, 1, FinalHopSingle))
	require.NoError(t, engine.CheckDisclosure(digestOf(4), commitment, 3, FinalHopSingle))
	require.ErrorIs(t, engine.CheckDisclosure(digestOf(3), commitment, 2, FinalHopSingle), ErrProofFailed)
}

func TestCheckDisclosure_RejectsInvalidParameters(t *testing.T) {
	engine := NewEngine(incrementHasher{})
	require.ErrorIs(t, engine.CheckDisclosure(digestOf(4), digestOf(5), 0, FinalHopOffset), ErrInvalidOffset)
	require.ErrorIs(t, engine.CheckDisclosure(digestOf(4), digestOf(5), 1, "none"), ErrUnknownFinalHop)
}

func TestProve_EndToEndWithSha256(t *testing.T) {
	engine := sha256Engine(t)
	pair, err := engine.Generate(nil, 64)
	require.NoError(t, err)

	proof, err := engine.Prove(pair.Seed, pair.Commitment, Config{Iterations: 100, Offset: 7})
	require.NoError(t, err)
	require.Equal(t, 64, proof.Length)
	require.Equal(t, engine.Advance(pair.Seed, 57), proof.Disclosure)
	require.NoError(t, engine.CheckDisclosure(proof.Disclosure, pair.Commitment, 7, FinalHopOffset))
}
