// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// disclosureTable is the key prefix of disclosure records.
const disclosureTable byte = 'd'

const valueSize = 8 // uint64

type dbKey [1 + common.DigestSize]byte

func newDbKey(commitment common.Digest) dbKey {
	var key dbKey
	key[0] = disclosureTable
	copy(key[1:], commitment[:])
	return key
}

// Ledger is a disclosure log persisted in a LevelDB instance.
type Ledger struct {
	db *leveldb.DB
	mu sync.Mutex // < serializes read-modify-write cycles of Record
}

// OpenLedger opens or creates a LevelDB ledger in the given directory.
func OpenLedger(directory string) (*Ledger, error) {
	db, err := leveldb.OpenFile(directory, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger %s: %w", directory, err)
	}
	return &Ledger{db: db}, nil
}

// Last returns the largest offset recorded for the commitment.
func (l *Ledger) Last(commitment common.Digest) (int, bool, error) {
	key := newDbKey(commitment)
	value, err := l.db.Get(key[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(value) != valueSize {
		return 0, false, fmt.Errorf("corrupted ledger entry for %v: %d bytes", commitment, len(value))
	}
	return int(binary.BigEndian.Uint64(value)), true, nil
}

// Record registers a disclosure, keeping the larger of the recorded and the
// given offset. The write is synced to disk before returning.
func (l *Ledger) Record(commitment common.Digest, offset int) error {
	if offset < 0 {
		return fmt.Errorf("invalid offset %d", offset)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, found, err := l.Last(commitment)
	if err != nil {
		return err
	}
	if found && cur >= offset {
		return nil
	}
	var value [valueSize]byte
	binary.BigEndian.PutUint64(value[:], uint64(offset))
	key := newDbKey(commitment)
	return l.db.Put(key[:], value[:], &opt.WriteOptions{Sync: true})
}

// Close the ledger
func (l *Ledger) Close() error {
	return l.db.Close()
}
