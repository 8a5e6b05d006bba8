// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package chain implements hash-chain precommitments. A secret seed is hashed
// forward a fixed number of times to derive a public commitment. Possession
// of the seed is later proven by disclosing an intermediate value of the
// chain, a given number of steps short of the commitment, without revealing
// the seed itself.
//
// All operations reduce to a single primitive, the bounded iterated
// application of a hash function implemented by the Engine:
//
//	engine := chain.NewEngine(hasher)
//	pair, _ := engine.Generate(nil, chain.DefaultIterations)
//	steps, err := engine.Verify(pair.Seed, pair.Commitment, chain.DefaultIterations)
//
// Verification is a brute-force search. Its cost is linear in the search
// bound, so callers should size the bound to the expected chain length plus
// some slack rather than to an arbitrarily large constant.
package chain

//go:generate mockgen -source engine.go -destination chain_mocks.go -package chain

import (
	"crypto/rand"
	"io"

	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/0xsoniclabs/hashcheck/hashing"
)

const (
	// DefaultIterations is the default chain length (1024*1024*4).
	DefaultIterations = 4194304
	// DefaultOffset is the default number of withheld steps in a disclosure.
	DefaultOffset = 1
	// ReportInterval is the number of hashes between two observer updates.
	ReportInterval = 1 << 16
)

// Observer is notified about the progress of chain walks. Implementations
// must be safe for concurrent use if the engine is shared between goroutines.
type Observer interface {
	// Advanced reports that the given number of hashes has been computed
	// using the named algorithm since the last report.
	Advanced(algorithm string, steps int)
}

// DisclosureLog keeps track of the largest offset disclosed per commitment.
// Since a disclosure reveals every chain value between it and the
// commitment, later disclosures must withhold strictly more steps.
type DisclosureLog interface {
	// Last returns the largest offset recorded for the commitment, if any.
	Last(commitment common.Digest) (offset int, found bool, err error)
	// Record registers a successful disclosure with the given offset.
	Record(commitment common.Digest, offset int) error
}

// Engine walks hash chains using a fixed hash function. An Engine holds no
// mutable state and may be shared, provided its observers are thread-safe.
type Engine struct {
	hasher      hashing.Hasher
	entropy     io.Reader
	observers   []Observer
	disclosures DisclosureLog
}

// Option customizes an Engine.
type Option func(*Engine)

// WithEntropy replaces the random source used to draw fresh seeds.
func WithEntropy(source io.Reader) Option {
	return func(e *Engine) {
		e.entropy = source
	}
}

// WithObserver registers an observer receiving progress updates. The option
// may be given multiple times, all observers receive every update.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observers = append(e.observers, observer)
		}
	}
}

// WithDisclosureLog attaches a log used by Prove to reject disclosures that
// would not withhold more steps than earlier ones.
func WithDisclosureLog(log DisclosureLog) Option {
	return func(e *Engine) {
		e.disclosures = log
	}
}

// NewEngine creates an engine walking chains with the given hash function.
func NewEngine(hasher hashing.Hasher, opts ...Option) *Engine {
	res := &Engine{
		hasher:  hasher,
		entropy: rand.Reader,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Algorithm returns the name of the hash function used by this engine.
func (e *Engine) Algorithm() string {
	return e.hasher.Algorithm()
}

// Advance hashes the given seed exactly bound times and returns the result.
// A non-positive bound performs no iterations and returns the seed.
func (e *Engine) Advance(seed common.Digest, bound int) common.Digest {
	res, _, _ := e.walk(seed, nil, bound)
	return res
}

// Find hashes the given seed until the running value equals target, and
// returns the number of hashes performed, starting at 1. If the target is not
// reached within bound hashes, ErrNotFound is returned. A non-positive bound
// never matches.
func (e *Engine) Find(seed, target common.Digest, bound int) (int, error) {
	_, steps, found := e.walk(seed, &target, bound)
	if !found {
		return 0, ErrNotFound
	}
	return steps, nil
}

// walk is the single chain loop shared by Advance and Find. The value is
// received by copy, so the caller's digest is never modified.
func (e *Engine) walk(value common.Digest, target *common.Digest, bound int) (common.Digest, int, bool) {
	pending := 0
	for i := 1; i <= bound; i++ {
		value = e.hasher.Hash(value)
		pending++
		if target != nil && value == *target {
			e.report(pending)
			return value, i, true
		}
		if pending == ReportInterval {
			e.report(pending)
			pending = 0
		}
	}
	e.report(pending)
	return value, max(bound, 0), false
}

func (e *Engine) report(steps int) {
	if len(e.observers) == 0 || steps <= 0 {
		return
	}
	algorithm := e.hasher.Algorithm()
	for _, observer := range e.observers {
		observer.Advanced(algorithm, steps)
	}
}
