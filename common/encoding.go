// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
)

// Format is a textual representation of digests.
type Format string

const (
	FormatHex      Format = "hex"
	FormatBase58   Format = "base58"
	FormatMnemonic Format = "mnemonic" // < BIP-39 word list, 24 words
)

var ErrUnknownFormat = errors.New("unknown key format")

// ParseFormat converts a format name into a Format. The empty string
// selects FormatHex.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatHex:
		return FormatHex, nil
	case FormatBase58:
		return FormatBase58, nil
	case FormatMnemonic:
		return FormatMnemonic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encode returns the digest in the given format. Unknown formats fall back
// to hexadecimal.
func (d Digest) Encode(format Format) string {
	switch format {
	case FormatBase58:
		return base58.Encode(d[:])
	case FormatMnemonic:
		// 32 bytes are always a valid entropy length
		res, _ := bip39.NewMnemonic(d[:])
		return res
	}
	return d.String()
}

// ParseKey decodes a digest given in any supported format. Word lists are
// decoded as mnemonics, strings of 64 characters as hexadecimal and all
// other inputs as base58.
func ParseKey(s string) (Digest, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \t") {
		return ParseMnemonic(s)
	}
	if len(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")) == 2*DigestSize {
		return ParseDigest(s)
	}
	return ParseBase58(s)
}

// ParseMnemonic decodes a BIP-39 mnemonic of 24 words. The checksum word
// must be valid.
func ParseMnemonic(s string) (Digest, error) {
	var res Digest
	words := strings.Fields(s)
	raw, err := bip39.EntropyFromMnemonic(strings.Join(words, " "))
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrInvalidDigest, err)
	}
	if len(raw) != DigestSize {
		return res, fmt.Errorf("%w: mnemonic encodes %d bytes, expected %d", ErrInvalidDigest, len(raw), DigestSize)
	}
	copy(res[:], raw)
	return res, nil
}

func ParseBase58(s string) (Digest, error) {
	var res Digest
	raw, err := base58.Decode(strings.TrimSpace(s))
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrInvalidDigest, err)
	}
	if len(raw) != DigestSize {
		return res, fmt.Errorf("%w: base58 input encodes %d bytes, expected %d", ErrInvalidDigest, len(raw), DigestSize)
	}
	copy(res[:], raw)
	return res, nil
}

// ReadKey reads a single line like ReadDigest, but accepts keys in any
// format supported by ParseKey.
func ReadKey(r *bufio.Reader) (Digest, error) {
	line, err := readLine(r)
	if err != nil {
		return Digest{}, err
	}
	return ParseKey(line)
}
