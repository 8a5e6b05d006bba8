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
)

var (
	// ErrNotFound is reported by the engine if a target is not reached within
	// the search bound. It is a regular outcome, not a failure of the engine.
	ErrNotFound = errors.New("target not reached within search bound")
	// ErrNotVerified is reported if a seed does not lead to a commitment
	// within the search bound. It wraps ErrNotFound.
	ErrNotVerified = fmt.Errorf("not verified: %w", ErrNotFound)
	// ErrInvalidOffset is matched by all InvalidOffsetError values.
	ErrInvalidOffset = errors.New("invalid offset")
	// ErrProofFailed is reported if a disclosure does not reach the commitment.
	ErrProofFailed = errors.New("proof failed")
	// ErrOffsetConsumed is reported if a disclosure would not withhold more
	// steps than a disclosure recorded earlier for the same commitment.
	ErrOffsetConsumed = errors.New("offset already disclosed")
	// ErrInvalidIterations is reported for non-positive chain lengths.
	ErrInvalidIterations = errors.New("number of iterations must be positive")
	// ErrUnknownFinalHop is reported for unsupported final hop modes.
	ErrUnknownFinalHop = errors.New("unknown final hop mode")
)

// InvalidOffsetError describes an offset which is not strictly between zero
// and the length of the chain it is applied to.
type InvalidOffsetError struct {
	Offset int
	// Length is the chain length the offset was checked against. If the
	// offset was rejected before locating the chain, this is the search bound.
	Length int
}

func (e *InvalidOffsetError) Error() string {
	return fmt.Sprintf("invalid offset %d, must be in (0, %d)", e.Offset, e.Length)
}

func (e *InvalidOffsetError) Is(target error) bool {
	return target == ErrInvalidOffset
}
