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
	"errors"
	"fmt"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/urfave/cli/v2"
)

var CheckCmd = cli.Command{
	Action: operation("check", doCheck),
	Name:   "check",
	Usage:  "check a disclosed value against a public key",
	Flags: []cli.Flag{
		&publicFlag,
		&disclosureFlag,
		&offsetFlag,
		&finalHopFlag,
	},
}

func doCheck(ctx *cli.Context, env *environment) error {
	public, err := env.digest(ctx, &publicFlag, "Please enter known public key: ")
	if err != nil {
		return err
	}
	disclosure, err := env.digest(ctx, &disclosureFlag, "Please enter disclosed key: ")
	if err != nil {
		return err
	}
	engine, err := env.engine()
	if err != nil {
		return err
	}

	printVerifying(env.out, public, disclosure)
	mode := env.config.ChainConfig().FinalHop
	err = engine.CheckDisclosure(disclosure, public, env.config.Offset, mode)
	if errors.Is(err, chain.ErrProofFailed) {
		fmt.Fprintln(env.out, "Fail.")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, "Success!")
	return nil
}
