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
	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/0xsoniclabs/hashcheck/keyfile"
	"github.com/0xsoniclabs/hashcheck/ledger"
	"github.com/urfave/cli/v2"
)

var ProveCmd = cli.Command{
	Action: operation("prove", doProve),
	Name:   "prove",
	Usage:  "disclose a chain value proving the possession of a private key",
	Flags: []cli.Flag{
		&publicFlag,
		&privateFlag,
		&keyFileFlag,
		&passphraseFlag,
		&iterationsFlag,
		&offsetFlag,
		&finalHopFlag,
		&ledgerFlag,
	},
}

func doProve(ctx *cli.Context, env *environment) error {
	private, public, err := proofKeys(ctx, env)
	if err != nil {
		return err
	}

	var opts []chain.Option
	if dir := env.config.Ledger; dir != "" {
		disclosures, err := ledger.Open(dir)
		if err != nil {
			return fmt.Errorf("failed to open ledger: %w", err)
		}
		defer disclosures.Close()
		opts = append(opts, chain.WithDisclosureLog(disclosures))
	}

	engine, err := env.engine(opts...)
	if err != nil {
		return err
	}
	proof, err := engine.Prove(private, public, env.config.ChainConfig())
	if errors.Is(err, chain.ErrProofFailed) {
		fmt.Fprintln(env.out, "Fail.")
	}
	if err != nil {
		return err
	}

	printVerifying(env.out, public, proof.Disclosure)
	fmt.Fprintln(env.out, "Success!")
	env.log.Printf("Disclosed value %d of %d, withholding %d steps", proof.Position(), proof.Length, proof.Offset)
	return nil
}

// proofKeys obtains the private and public key of a proof, either from a key
// file or from the command line.
func proofKeys(ctx *cli.Context, env *environment) (private, public common.Digest, err error) {
	path := ctx.String(keyFileFlag.Name)
	if path == "" {
		if private, err = env.digest(ctx, &privateFlag, "Please enter your private key: "); err != nil {
			return
		}
		public, err = env.digest(ctx, &publicFlag, "Please enter known public key: ")
		return
	}

	if ctx.IsSet(privateFlag.Name) {
		err = fmt.Errorf("--%s and --%s are mutually exclusive", privateFlag.Name, keyFileFlag.Name)
		return
	}
	file, err := keyfile.Read(path, ctx.String(passphraseFlag.Name))
	if err != nil {
		err = fmt.Errorf("failed to read key file: %w", err)
		return
	}
	if ctx.IsSet(algorithmFlag.Name) && env.config.Algorithm != file.Algorithm {
		err = fmt.Errorf("key file uses algorithm %s, not %s", file.Algorithm, env.config.Algorithm)
		return
	}
	env.config.Algorithm = file.Algorithm
	if !ctx.IsSet(iterationsFlag.Name) {
		env.config.Iterations = file.Iterations
	}

	private = file.Seed
	public = file.Commitment
	if ctx.IsSet(publicFlag.Name) {
		public, err = env.digest(ctx, &publicFlag, "")
	}
	return
}
