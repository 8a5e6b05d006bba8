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

	"github.com/urfave/cli/v2"
)

var VerifyCmd = cli.Command{
	Action: operation("verify", doVerify),
	Name:   "verify",
	Usage:  "verify that a private key reaches a public key",
	Flags: []cli.Flag{
		&publicFlag,
		&privateFlag,
		&iterationsFlag,
	},
}

func doVerify(ctx *cli.Context, env *environment) error {
	public, err := env.digest(ctx, &publicFlag, "Please enter known public key: ")
	if err != nil {
		return err
	}
	private, err := env.digest(ctx, &privateFlag, "Please enter verification key: ")
	if err != nil {
		return err
	}
	engine, err := env.engine()
	if err != nil {
		return err
	}

	printVerifying(env.out, public, private)
	steps, err := engine.Verify(private, public, env.config.Iterations)
	if err != nil {
		fmt.Fprintf(env.out, "Could not verify pair after %d iterations\n", env.config.Iterations)
		return err
	}
	fmt.Fprintf(env.out, "Success, %d iterations!\n", steps)
	return nil
}
