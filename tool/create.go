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

	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/0xsoniclabs/hashcheck/keyfile"
	"github.com/urfave/cli/v2"
)

var CreateCmd = cli.Command{
	Action: operation("create", doCreate),
	Name:   "create",
	Usage:  "create a new private/public key pair",
	Flags: []cli.Flag{
		&privateFlag,
		&iterationsFlag,
		&formatFlag,
		&outFlag,
		&passphraseFlag,
	},
}

func doCreate(ctx *cli.Context, env *environment) error {
	var seed *common.Digest
	if ctx.IsSet(privateFlag.Name) {
		private, err := env.digest(ctx, &privateFlag, "")
		if err != nil {
			return err
		}
		seed = &private
	}

	format, err := common.ParseFormat(ctx.String(formatFlag.Name))
	if err != nil {
		return err
	}

	out := ctx.String(outFlag.Name)
	passphrase := ctx.String(passphraseFlag.Name)
	if out != "" && passphrase == "" {
		return fmt.Errorf("--%s: %w", passphraseFlag.Name, keyfile.ErrEmptyPassphrase)
	}

	engine, err := env.engine()
	if err != nil {
		return err
	}
	fmt.Fprintf(env.errOut, "Generating pair with %d iterations\n", env.config.Iterations)
	pair, err := engine.Generate(seed, env.config.Iterations)
	if err != nil {
		return err
	}

	// With a key file, the private key is only stored encrypted.
	if out != "" {
		err := keyfile.Write(out, passphrase, keyfile.File{
			Seed:       pair.Seed,
			Commitment: pair.Commitment,
			Iterations: pair.Iterations,
			Algorithm:  engine.Algorithm(),
		})
		if err != nil {
			return fmt.Errorf("failed to write key file: %w", err)
		}
		env.log.Printf("Key file written to %s", out)
	} else {
		fmt.Fprintf(env.out, "Private:\n\t%s\n", pair.Seed.Encode(format))
	}
	fmt.Fprintf(env.out, "Public:\n\t%s\n", pair.Commitment.Encode(format))
	return nil
}
