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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/0xsoniclabs/hashcheck/common/diagnostics"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./tool <command> <flags>

// version is set at build time using -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "hashcheck",
		Usage:     "hash-chain precommitment toolbox",
		Version:   version,
		Copyright: "(c) 2025 Sonic Operations Ltd",
		Flags: append([]cli.Flag{
			&configFlag,
			&algorithmFlag,
			&metricsFileFlag,
		}, diagnostics.Flags()...),
		Commands: commands(),
	}
}

// commands returns fresh copies of all commands, since the cli library
// modifies commands while running them.
func commands() []*cli.Command {
	res := []*cli.Command{}
	for _, cmd := range []cli.Command{
		CreateCmd,
		VerifyCmd,
		ProveCmd,
		CheckCmd,
		VerifyBatchCmd,
		BenchmarkCmd,
	} {
		cmd := cmd
		res = append(res, &cmd)
	}
	return res
}

// exitCode maps errors to the process exit status: 1 if a verification or
// proof failed, 2 for all other problems like invalid inputs.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, chain.ErrNotFound),
		errors.Is(err, chain.ErrProofFailed),
		errors.Is(err, chain.ErrInvalidOffset),
		errors.Is(err, chain.ErrOffsetConsumed):
		return 1
	}
	return 2
}
