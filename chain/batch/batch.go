// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package batch verifies many seed/commitment pairs concurrently. Pairs are
// listed in a YAML manifest:
//
//	bound: 4194304
//	entries:
//	  - name: alice
//	    public: 5f2b...
//	    private: 0c1d...
//	    bound: 100
//
// An entry's bound overrides the manifest's bound, which in turn defaults to
// chain.DefaultIterations.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/0xsoniclabs/hashcheck/common"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var ErrInvalidManifest = errors.New("invalid manifest")

type Manifest struct {
	Bound   int     `yaml:"bound"`
	Entries []Entry `yaml:"entries"`
}

type Entry struct {
	Name    string `yaml:"name"`
	Public  string `yaml:"public"`
	Private string `yaml:"private"`
	Bound   int    `yaml:"bound"`
}

// Outcome is the result of verifying a single entry. Steps is the chain
// length found, Err is set if the entry could not be verified.
type Outcome struct {
	Name  string
	Steps int
	Err   error
}

func (o Outcome) Verified() bool {
	return o.Err == nil
}

// Load reads a manifest in YAML format. Unknown keys are rejected. Entries
// without a name are named after their position, starting at 1.
func Load(in io.Reader) (Manifest, error) {
	var res Manifest
	decoder := yaml.NewDecoder(in)
	decoder.KnownFields(true)
	if err := decoder.Decode(&res); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if res.Bound < 0 {
		return Manifest{}, fmt.Errorf("%w: negative bound %d", ErrInvalidManifest, res.Bound)
	}
	for i := range res.Entries {
		entry := &res.Entries[i]
		if entry.Name == "" {
			entry.Name = fmt.Sprintf("#%d", i+1)
		}
		if entry.Bound < 0 {
			return Manifest{}, fmt.Errorf("%w: negative bound %d for %s", ErrInvalidManifest, entry.Bound, entry.Name)
		}
	}
	return res, nil
}

// Run verifies all entries of the manifest using up to the given number of
// concurrent workers. Outcomes are reported in manifest order. A failing
// entry does not affect the others. If ctx is cancelled, entries not yet
// started are reported with the context's error, which is also returned.
func Run(ctx context.Context, engine *chain.Engine, manifest Manifest, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = 1
	}
	bound := manifest.Bound
	if bound == 0 {
		bound = chain.DefaultIterations
	}

	res := make([]Outcome, len(manifest.Entries))
	var group errgroup.Group
	group.SetLimit(workers)
	for i, entry := range manifest.Entries {
		i, entry := i, entry
		res[i].Name = entry.Name
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				res[i].Err = err
				return err
			}
			limit := bound
			if entry.Bound > 0 {
				limit = entry.Bound
			}
			res[i].Steps, res[i].Err = verify(engine, entry, limit)
			return nil
		})
	}
	return res, group.Wait()
}

func verify(engine *chain.Engine, entry Entry, bound int) (int, error) {
	commitment, err := common.ParseDigest(entry.Public)
	if err != nil {
		return 0, fmt.Errorf("public key: %w", err)
	}
	seed, err := common.ParseDigest(entry.Private)
	if err != nil {
		return 0, fmt.Errorf("private key: %w", err)
	}
	return engine.Verify(seed, commitment, bound)
}

// Failures counts the outcomes which could not be verified.
func Failures(outcomes []Outcome) int {
	res := 0
	for _, outcome := range outcomes {
		if !outcome.Verified() {
			res++
		}
	}
	return res
}
