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
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/0xsoniclabs/hashcheck/common"
	"github.com/0xsoniclabs/hashcheck/common/diagnostics"
	"github.com/0xsoniclabs/hashcheck/common/logging"
	"github.com/0xsoniclabs/hashcheck/config"
	"github.com/0xsoniclabs/hashcheck/hashing"
	"github.com/0xsoniclabs/hashcheck/metrics"
	"github.com/urfave/cli/v2"
)

// progressPeriod is the number of hashes between two progress log messages.
const progressPeriod = 1 << 22

// environment bundles the resources shared by all commands.
type environment struct {
	config  config.File
	log     *logging.Log
	metrics *metrics.Recorder
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
}

// operation turns a command implementation into an action. The action
// loads the configuration, records metrics of the command and runs it with
// the diagnostics requested on the command line.
func operation(name string, run func(*cli.Context, *environment) error) cli.ActionFunc {
	return diagnostics.Wrap(func(ctx *cli.Context) error {
		env, err := newEnvironment(ctx)
		if err != nil {
			return err
		}
		start := time.Now()
		err = run(ctx, env)
		env.metrics.Observe(name, start, err)
		if path := ctx.String(metricsFileFlag.Name); path != "" {
			if writeErr := env.metrics.WriteTextfile(path); writeErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to write metrics: %w", writeErr))
			}
		}
		return err
	})
}

func newEnvironment(ctx *cli.Context) (*environment, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &environment{
		config:  cfg,
		log:     logging.NewLogTo(ctx.App.ErrWriter),
		metrics: metrics.NewRecorder(),
		in:      bufio.NewReader(ctx.App.Reader),
		out:     ctx.App.Writer,
		errOut:  ctx.App.ErrWriter,
	}, nil
}

// loadConfig reads the config file, if any, and applies the flags set on
// the command line on top of it.
func loadConfig(ctx *cli.Context) (config.File, error) {
	cfg, err := config.Load(ctx.String(configFlag.Name))
	if err != nil {
		return config.File{}, err
	}
	if ctx.IsSet(algorithmFlag.Name) {
		cfg.Algorithm = ctx.String(algorithmFlag.Name)
	}
	if ctx.IsSet(iterationsFlag.Name) {
		cfg.Iterations = ctx.Int(iterationsFlag.Name)
	}
	if ctx.IsSet(offsetFlag.Name) {
		cfg.Offset = ctx.Int(offsetFlag.Name)
	}
	if ctx.IsSet(finalHopFlag.Name) {
		cfg.FinalHop = ctx.String(finalHopFlag.Name)
	}
	if ctx.IsSet(ledgerFlag.Name) {
		cfg.Ledger = ctx.String(ledgerFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		cfg.Workers = ctx.Int(workersFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return config.File{}, err
	}
	return cfg, nil
}

// engine creates a chain engine for the configured algorithm reporting to
// the progress log and the metrics of this environment.
func (e *environment) engine(opts ...chain.Option) (*chain.Engine, error) {
	return e.engineFor(e.config.Algorithm, opts...)
}

func (e *environment) engineFor(algorithm string, opts ...chain.Option) (*chain.Engine, error) {
	hasher, err := hashing.Lookup(algorithm)
	if err != nil {
		return nil, err
	}
	progress := e.log.NewProgressTracker("hashed %d values, %.2f hashes/s", progressPeriod)
	opts = append([]chain.Option{
		chain.WithObserver(e.metrics),
		chain.WithObserver(progress),
	}, opts...)
	return chain.NewEngine(hasher, opts...), nil
}

// digest obtains a key from the given flag. If the flag is not set, the
// user is prompted for it. Keys may be given in any format accepted by
// common.ParseKey.
func (e *environment) digest(ctx *cli.Context, flag *cli.StringFlag, prompt string) (common.Digest, error) {
	if ctx.IsSet(flag.Name) {
		res, err := common.ParseKey(ctx.String(flag.Name))
		if err != nil {
			return common.Digest{}, fmt.Errorf("--%s: input must be %d bytes long: %w", flag.Name, common.DigestSize, err)
		}
		return res, nil
	}
	fmt.Fprint(e.errOut, prompt)
	res, err := common.ReadKey(e.in)
	if err != nil {
		return common.Digest{}, fmt.Errorf("input must be %d bytes long: %w", common.DigestSize, err)
	}
	return res, nil
}

func printVerifying(out io.Writer, public, private common.Digest) {
	fmt.Fprintf(out, "Verifying: (public)\n\t%s\nWith: (private)\n\t%s\n", public, private)
}
