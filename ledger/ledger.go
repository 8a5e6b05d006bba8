// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ledger provides implementations of chain.DisclosureLog recording,
// for every commitment, the largest offset disclosed so far.
package ledger

import (
	"io"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/0xsoniclabs/hashcheck/ledger/ldb"
	"github.com/0xsoniclabs/hashcheck/ledger/memory"
)

// Ledger is a closable disclosure log.
type Ledger interface {
	chain.DisclosureLog
	io.Closer
}

// Open opens the persistent ledger stored in the given directory, creating it
// if needed. An empty directory name results in an in-memory ledger.
func Open(directory string) (Ledger, error) {
	if directory == "" {
		return memory.NewLedger(), nil
	}
	return ldb.OpenLedger(directory)
}
