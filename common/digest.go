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
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DigestSize is the number of bytes produced by every supported hash function.
const DigestSize = 32

// ErrInvalidDigest is returned when key material can not be decoded into a
// Digest, either because it is not hexadecimal or has the wrong length.
var ErrInvalidDigest = errors.New("invalid digest")

// Digest is the fixed-size output of a hash function. Seeds, commitments and
// disclosed intermediate values of a hash chain are all digests. As a value
// type, a Digest is copied on assignment, so walking a chain never modifies
// the caller's value.
type Digest [DigestSize]byte

// String returns the lowercase hexadecimal form of the digest, without prefix.
func (d Digest) String() string {
	return fmt.Sprintf("%x", d[:])
}

// IsZero reports whether all bytes of the digest are zero.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText encodes the digest in the same format as String.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a digest using ParseDigest.
func (d *Digest) UnmarshalText(text []byte) error {
	res, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = res
	return nil
}

// ParseDigest decodes a hexadecimal string into a Digest. An optional 0x
// prefix is accepted. The decoded value must be exactly DigestSize bytes long.
func ParseDigest(s string) (Digest, error) {
	var res Digest
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*DigestSize {
		return res, fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidDigest, 2*DigestSize, len(s))
	}
	raw, err := hexutil.Decode("0x" + s)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrInvalidDigest, err)
	}
	copy(res[:], raw)
	return res, nil
}

// ReadDigest reads a single line from the given reader and decodes it as a
// hexadecimal digest. Interactive input dropping the leading zero of the
// first byte, i.e. one character short, is padded with a leading zero.
// The reader is shared between subsequent prompts, so it is not wrapped here.
func ReadDigest(r *bufio.Reader) (Digest, error) {
	line, err := readLine(r)
	if err != nil {
		return Digest{}, err
	}
	return ParseDigest(line)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", fmt.Errorf("%w: no input: %v", ErrInvalidDigest, err)
	}
	line = strings.TrimSpace(line)
	if len(line) == 2*DigestSize-1 {
		line = "0" + line
	}
	return line, nil
}
