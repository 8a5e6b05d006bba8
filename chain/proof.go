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

	"github.com/0xsoniclabs/hashcheck/common"
)

// FinalHop selects how a disclosure is checked against its commitment.
type FinalHop string

const (
	// FinalHopOffset requires the commitment to be reached from the
	// disclosure in exactly offset hashes.
	FinalHopOffset FinalHop = "offset"
	// FinalHopSingle requires the commitment to be reached from the
	// disclosure in a single hash, independent of the offset. This is the
	// behavior of earlier hashcheck releases; disclosures with an offset
	// larger than one never pass this check.
	FinalHopSingle FinalHop = "single"
)

// ParseFinalHop converts a mode name into a FinalHop. The empty string
// selects FinalHopOffset.
func ParseFinalHop(name string) (FinalHop, error) {
	switch FinalHop(name) {
	case "", FinalHopOffset:
		return FinalHopOffset, nil
	case FinalHopSingle:
		return FinalHopSingle, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFinalHop, name)
}

// Config controls the proof protocol.
type Config struct {
	// Iterations is the upper bound for locating the chain length.
	Iterations int
	// Offset is the number of final chain steps withheld by the disclosure.
	Offset int
	// FinalHop selects the check applied to the disclosure.
	FinalHop FinalHop
}

// DefaultConfig returns the configuration used if nothing else is specified.
func DefaultConfig() Config {
	return Config{
		Iterations: DefaultIterations,
		Offset:     DefaultOffset,
		FinalHop:   FinalHopOffset,
	}
}

// Proof is the outcome of a successful proof. Only the disclosure is meant to
// be handed to a verifier, together with the offset.
type Proof struct {
	Disclosure common.Digest
	Length     int // < number of hashes from the seed to the commitment
	Offset     int // < number of hashes from the disclosure to the commitment
}

// Position returns the number of hashes from the seed to the disclosure.
func (p Proof) Position() int {
	return p.Length - p.Offset
}

// Prove produces a disclosure showing that the seed's chain reaches the
// commitment. The chain length is located by verifying the pair using
// config.Iterations as search bound, then the seed is advanced to the
// position config.Offset steps short of the commitment. The resulting value
// is checked against the commitment according to config.FinalHop.
//
// Offsets outside of (0, chain length) are rejected before the expensive
// parts of the protocol, as is an offset already consumed according to the
// engine's disclosure log.
func (e *Engine) Prove(seed, commitment common.Digest, config Config) (Proof, error) {
	offset := config.Offset
	if offset <= 0 || offset >= config.Iterations {
		return Proof{}, &InvalidOffsetError{Offset: offset, Length: config.Iterations}
	}
	if _, err := ParseFinalHop(string(config.FinalHop)); err != nil {
		return Proof{}, err
	}
	if err := e.checkNotDisclosed(commitment, offset); err != nil {
		return Proof{}, err
	}

	length, err := e.Verify(seed, commitment, config.Iterations)
	if err != nil {
		return Proof{}, err
	}

	position := length - offset
	if position <= 0 || position >= length {
		return Proof{}, &InvalidOffsetError{Offset: offset, Length: length}
	}

	proof := Proof{
		Disclosure: e.Advance(seed, position),
		Length:     length,
		Offset:     offset,
	}
	if err := e.CheckDisclosure(proof.Disclosure, commitment, offset, config.FinalHop); err != nil {
		return Proof{}, err
	}

	if e.disclosures != nil {
		if err := e.disclosures.Record(commitment, offset); err != nil {
			return Proof{}, fmt.Errorf("failed to record disclosure: %w", err)
		}
	}
	return proof, nil
}

// CheckDisclosure checks that the disclosed value reaches the commitment, as
// required by the given final hop mode. This is the check performed by a
// verifier receiving a disclosure and its offset. It returns ErrProofFailed
// if the check fails.
func (e *Engine) CheckDisclosure(disclosure, commitment common.Digest, offset int, mode FinalHop) error {
	if offset <= 0 {
		return fmt.Errorf("%w: offset must be positive, got %d", ErrInvalidOffset, offset)
	}
	mode, err := ParseFinalHop(string(mode))
	if err != nil {
		return err
	}
	switch mode {
	case FinalHopSingle:
		if _, err := e.Verify(disclosure, commitment, 1); err != nil {
			return fmt.Errorf("%w: commitment is not one hash away from disclosure", ErrProofFailed)
		}
	case FinalHopOffset:
		steps, err := e.Find(disclosure, commitment, offset)
		if err != nil || steps != offset {
			return fmt.Errorf("%w: commitment is not %d hashes away from disclosure", ErrProofFailed, offset)
		}
	}
	return nil
}

func (e *Engine) checkNotDisclosed(commitment common.Digest, offset int) error {
	if e.disclosures == nil {
		return nil
	}
	last, found, err := e.disclosures.Last(commitment)
	if err != nil {
		return fmt.Errorf("failed to read disclosure log: %w", err)
	}
	if found && offset <= last {
		return fmt.Errorf("%w: offset %d was disclosed before, new disclosures need an offset > %d", ErrOffsetConsumed, last, last)
	}
	return nil
}
