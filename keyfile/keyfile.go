// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package keyfile stores seeds in passphrase protected files. The content is
// sealed with XChaCha20-Poly1305 using a key derived from the passphrase
// with argon2id.
package keyfile

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xsoniclabs/hashcheck/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	envelopeVersion = 1
	filePrefix      = "HCKEY1\n"
	saltSize        = 16

	kdfName     = "argon2id"
	kdfTime     = 2
	kdfMemoryKB = 64 * 1024
	kdfThreads  = 1
)

var (
	ErrAuthFailed      = errors.New("key file authentication failed")
	ErrInvalid         = errors.New("key file is invalid")
	ErrEmptyPassphrase = errors.New("key file passphrase must not be empty")
)

// File is the content of a key file.
type File struct {
	Seed       common.Digest `json:"seed"`
	Commitment common.Digest `json:"commitment"`
	Iterations int           `json:"iterations"`
	Algorithm  string        `json:"algorithm"`
}

type envelope struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

// Write seals the given content with the passphrase and stores it at path,
// readable by the owner only. Existing files are not overwritten.
func Write(path, passphrase string, content File) error {
	data, err := Seal(passphrase, content, rand.Reader)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create key file directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	_, err = f.Write(data)
	return errors.Join(err, f.Close())
}

// Read loads and opens the key file at path.
func Read(path, passphrase string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read key file: %w", err)
	}
	return Open(passphrase, data)
}

// Seal encrypts the content, drawing salt and nonce from the given source.
func Seal(passphrase string, content File, random io.Reader) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	plaintext, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(plaintext)

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(random, salt); err != nil {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, fmt.Errorf("failed to read nonce: %w", err)
	}

	key := deriveKey(passphrase, salt)
	defer zeroBytes(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(envelope{
		Version:     envelopeVersion,
		KDF:         kdfName,
		KDFTime:     kdfTime,
		KDFMemoryKB: kdfMemoryKB,
		KDFThreads:  kdfThreads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, plaintext, []byte(filePrefix)),
	})
	if err != nil {
		return nil, err
	}
	return append([]byte(filePrefix), raw...), nil
}

// Open decrypts data produced by Seal.
func Open(passphrase string, data []byte) (File, error) {
	if !strings.HasPrefix(string(data), filePrefix) {
		return File{}, fmt.Errorf("%w: missing file header", ErrInvalid)
	}
	var env envelope
	if err := json.Unmarshal(data[len(filePrefix):], &env); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if env.Version != envelopeVersion || env.KDF != kdfName ||
		env.KDFTime != kdfTime || env.KDFMemoryKB != kdfMemoryKB || env.KDFThreads != kdfThreads ||
		len(env.Salt) != saltSize || len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return File{}, fmt.Errorf("%w: unsupported envelope", ErrInvalid)
	}

	key := deriveKey(passphrase, env.Salt)
	defer zeroBytes(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return File{}, err
	}
	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, []byte(filePrefix))
	if err != nil {
		return File{}, ErrAuthFailed
	}
	defer zeroBytes(plaintext)

	var res File
	if err := json.Unmarshal(plaintext, &res); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return res, nil
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, kdfTime, kdfMemoryKB, kdfThreads, chacha20poly1305.KeySize)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
