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
	"strings"
	"time"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/0xsoniclabs/hashcheck/hashing"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML file providing default settings, flags take precedence",
	}
	algorithmFlag = cli.StringFlag{
		Name:  "algorithm",
		Usage: "hash function used for the chain, one of " + strings.Join(hashing.Algorithms(), ", "),
		Value: hashing.Default,
	}
	metricsFileFlag = cli.StringFlag{
		Name:  "metrics-file",
		Usage: "file to write Prometheus metrics to after the command, disabled if empty",
	}
)

var (
	publicFlag = cli.StringFlag{
		Name:  "public",
		Usage: "hexadecimal public key, asked for interactively if missing",
	}
	privateFlag = cli.StringFlag{
		Name:  "private",
		Usage: "hexadecimal private key",
	}
	disclosureFlag = cli.StringFlag{
		Name:  "disclosure",
		Usage: "hexadecimal disclosed key, asked for interactively if missing",
	}
	iterationsFlag = cli.IntFlag{
		Name:  "iterations",
		Usage: "number of chain iterations, or the search bound when verifying",
		Value: chain.DefaultIterations,
	}
	offsetFlag = cli.IntFlag{
		Name:  "offset",
		Usage: "number of chain steps withheld by a disclosure",
		Value: chain.DefaultOffset,
	}
	finalHopFlag = cli.StringFlag{
		Name:  "final-hop",
		Usage: "check of a disclosure against the public key, 'offset' or 'single'",
		Value: string(chain.FinalHopOffset),
	}
	ledgerFlag = cli.StringFlag{
		Name:  "ledger",
		Usage: "directory of the ledger of disclosed offsets, disabled if empty",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "write the created pair to an encrypted key file",
	}
	keyFileFlag = cli.StringFlag{
		Name:  "key-file",
		Usage: "encrypted key file providing the private key",
	}
	passphraseFlag = cli.StringFlag{
		Name:    "passphrase",
		Usage:   "passphrase of the key file",
		EnvVars: []string{"HASHCHECK_PASSPHRASE"},
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "output format of keys, 'hex', 'base58' or 'mnemonic'",
		Value: string(common.FormatHex),
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of pairs verified in parallel",
	}
	countFlag = cli.IntFlag{
		Name:  "count",
		Usage: "number of hashes computed per algorithm",
		Value: 1 << 20,
	}
	targetFlag = cli.DurationFlag{
		Name:  "target",
		Usage: "verification time used to suggest a number of iterations",
		Value: time.Second,
	}
)
