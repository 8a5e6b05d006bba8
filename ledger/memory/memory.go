// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"sync"

	"github.com/0xsoniclabs/hashcheck/common"
)

// Ledger is an in-memory disclosure log, mostly useful for tests and
// single-process sessions.
type Ledger struct {
	mu      sync.Mutex
	offsets map[common.Digest]int
}

// NewLedger creates an empty in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{offsets: map[common.Digest]int{}}
}

// Last returns the largest offset recorded for the commitment.
func (l *Ledger) Last(commitment common.Digest) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	offset, found := l.offsets[commitment]
	return offset, found, nil
}

// Record registers a disclosure. Smaller offsets than the recorded one are
// ignored, the recorded offset never decreases.
func (l *Ledger) Record(commitment common.Digest, offset int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, found := l.offsets[commitment]; !found || offset > cur {
		l.offsets[commitment] = offset
	}
	return nil
}

// Close the ledger
func (l *Ledger) Close() error {
	return nil // no-op for in-memory ledger
}
