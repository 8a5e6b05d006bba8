// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package config loads hashcheck settings from YAML files. Settings not
// present in a file keep their default values.
//
// Example:
//
//	algorithm: sha256
//	iterations: 4194304
//	offset: 1
//	final_hop: offset
//	ledger: /var/lib/hashcheck/ledger
//	workers: 4
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/0xsoniclabs/hashcheck/hashing"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// File holds the settings which can be provided through a config file.
type File struct {
	Algorithm  string `yaml:"algorithm"`
	Iterations int    `yaml:"iterations"`
	Offset     int    `yaml:"offset"`
	FinalHop   string `yaml:"final_hop"`
	Ledger     string `yaml:"ledger"`  // < directory of the disclosure ledger, disabled if empty
	Workers    int    `yaml:"workers"` // < parallelism of batch verifications
}

// Default returns the settings used in the absence of a config file.
func Default() File {
	return File{
		Algorithm:  hashing.Default,
		Iterations: chain.DefaultIterations,
		Offset:     chain.DefaultOffset,
		FinalHop:   string(chain.FinalHopOffset),
		Workers:    runtime.NumCPU(),
	}
}

// Load reads the config file at the given path. An empty path yields the
// default settings.
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	res, err := Parse(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Parse reads settings in YAML format, rejecting unknown keys.
func Parse(r io.Reader) (File, error) {
	res := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&res); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := res.Validate(); err != nil {
		return File{}, err
	}
	return res, nil
}

// Validate checks that all settings are within their valid ranges. The
// iteration count and offset are not checked here; the chain operations
// using them report invalid values.
func (f File) Validate() error {
	if _, err := hashing.Lookup(f.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := chain.ParseFinalHop(f.FinalHop); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if f.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, f.Workers)
	}
	return nil
}

// ChainConfig returns the proof protocol settings.
func (f File) ChainConfig() chain.Config {
	mode, _ := chain.ParseFinalHop(f.FinalHop)
	return chain.Config{
		Iterations: f.Iterations,
		Offset:     f.Offset,
		FinalHop:   mode,
	}
}
