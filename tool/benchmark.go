// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"time"

	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/0xsoniclabs/hashcheck/hashing"
	"github.com/urfave/cli/v2"
)

var BenchmarkCmd = cli.Command{
	Action: operation("benchmark", doBenchmark),
	Name:   "benchmark",
	Usage:  "measure the hash rate of the supported algorithms",
	Flags: []cli.Flag{
		&countFlag,
		&targetFlag,
	},
}

// doBenchmark measures the hash rate of every algorithm, or only the one
// selected by --algorithm, and suggests the number of iterations for which a
// verification takes about the target duration.
func doBenchmark(ctx *cli.Context, env *environment) error {
	count := ctx.Int(countFlag.Name)
	if count <= 0 {
		return fmt.Errorf("--%s must be positive, got %d", countFlag.Name, count)
	}
	target := ctx.Duration(targetFlag.Name)
	if target <= 0 {
		return fmt.Errorf("--%s must be positive, got %v", targetFlag.Name, target)
	}

	algorithms := hashing.Algorithms()
	if ctx.IsSet(algorithmFlag.Name) {
		algorithms = []string{env.config.Algorithm}
	}

	for _, algorithm := range algorithms {
		engine, err := env.engineFor(algorithm)
		if err != nil {
			return err
		}
		start := time.Now()
		engine.Advance(common.Digest{}, count)
		elapsed := max(time.Since(start), time.Nanosecond)
		rate := float64(count) / elapsed.Seconds()
		fmt.Fprintf(env.out, "%-12s %14.0f hashes/s, %d iterations per %v\n", algorithm, rate, int(rate*target.Seconds()), target)
	}
	return nil
}
