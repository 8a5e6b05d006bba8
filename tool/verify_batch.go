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
	"os"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/0xsoniclabs/hashcheck/chain/batch"
	"github.com/urfave/cli/v2"
)

var VerifyBatchCmd = cli.Command{
	Action:    operation("verify-batch", doVerifyBatch),
	Name:      "verify-batch",
	Usage:     "verify all pairs listed in a YAML manifest",
	ArgsUsage: "<manifest>",
	Flags: []cli.Flag{
		&iterationsFlag,
		&workersFlag,
	},
}

func doVerifyBatch(ctx *cli.Context, env *environment) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("missing manifest parameter")
	}
	path := ctx.Args().Get(0)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()
	manifest, err := batch.Load(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if manifest.Bound == 0 || ctx.IsSet(iterationsFlag.Name) {
		manifest.Bound = env.config.Iterations
	}

	engine, err := env.engine()
	if err != nil {
		return err
	}
	env.log.Printf("Verifying %d pairs using %d workers", len(manifest.Entries), env.config.Workers)
	outcomes, err := batch.Run(ctx.Context, engine, manifest, env.config.Workers)
	for _, outcome := range outcomes {
		if outcome.Verified() {
			fmt.Fprintf(env.out, "%s: Success, %d iterations!\n", outcome.Name, outcome.Steps)
		} else {
			fmt.Fprintf(env.out, "%s: %v\n", outcome.Name, outcome.Err)
		}
	}
	if err != nil {
		return err
	}

	failures := batch.Failures(outcomes)
	fmt.Fprintf(env.out, "Verified %d of %d pairs\n", len(outcomes)-failures, len(outcomes))
	if failures > 0 {
		return fmt.Errorf("%w: %d of %d pairs", chain.ErrNotVerified, failures, len(outcomes))
	}
	return nil
}
