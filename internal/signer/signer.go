// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package signer

import (
	"context"
	"crypto/ecdsa"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// Signer holds the issuing key pair for the lifetime of the process
type Signer interface {
	// Sign returns the 64 byte [R || S] secp256k1 signature of a 32 byte digest
	Sign(ctx context.Context, digest *tktypes.Bytes32) (tktypes.HexBytes, error)
	// PublicKey returns the 33 byte compressed public key
	PublicKey() tktypes.HexBytes
}

type secp256k1Signer struct {
	key    *ecdsa.PrivateKey
	pubKey tktypes.HexBytes
}

// NewFromConfig loads the key from the signer.privateKey or signer.keyFile configuration,
// generating one only when signer.generate is enabled
func NewFromConfig(ctx context.Context) (Signer, error) {
	if hexKey := config.GetString(config.SignerPrivateKey); hexKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
		if err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgInvalidSignerKey)
		}
		return NewFromKey(key), nil
	}

	generate := config.GetBool(config.SignerGenerate)
	if keyFile := config.GetString(config.SignerKeyFile); keyFile != "" {
		return loadOrCreateKeyFile(ctx, keyFile, generate)
	}

	if !generate {
		return nil, i18n.NewError(ctx, i18n.MsgSignerKeyUnavailable, "no private key configured")
	}
	log.L(ctx).Warnf("No signing key configured. Generating an ephemeral key - tickets will not verify against a future process")
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgSignerKeyUnavailable, err)
	}
	return NewFromKey(key), nil
}

func loadOrCreateKeyFile(ctx context.Context, keyFile string, generate bool) (Signer, error) {
	key, err := crypto.LoadECDSA(keyFile)
	if err == nil {
		log.L(ctx).Infof("Loaded signing key from %s", keyFile)
		return NewFromKey(key), nil
	}
	if !os.IsNotExist(err) || !generate {
		return nil, i18n.WrapError(ctx, err, i18n.MsgSignerKeyFileFailed, keyFile)
	}

	if key, err = crypto.GenerateKey(); err == nil {
		err = crypto.SaveECDSA(keyFile, key)
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgSignerKeyFileFailed, keyFile)
	}
	log.L(ctx).Infof("Generated new signing key in %s", keyFile)
	return NewFromKey(key), nil
}

// NewFromKey wraps an existing private key
func NewFromKey(key *ecdsa.PrivateKey) Signer {
	return &secp256k1Signer{
		key:    key,
		pubKey: crypto.CompressPubkey(&key.PublicKey),
	}
}

func (s *secp256k1Signer) PublicKey() tktypes.HexBytes {
	return s.pubKey
}

func (s *secp256k1Signer) Sign(ctx context.Context, digest *tktypes.Bytes32) (tktypes.HexBytes, error) {
	if digest == nil {
		return nil, i18n.NewError(ctx, i18n.MsgSigningError, "no digest")
	}
	sig, err := crypto.Sign(digest[:], s.key)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgSigningError, err)
	}
	// Drop the recovery id, as the public key always travels with the signature
	return sig[0:64], nil
}

// Verify checks a [R || S] signature over a digest against a compressed or uncompressed public key.
// It does not consult any state, so any party holding the public key can verify offline.
func Verify(digest *tktypes.Bytes32, signature, publicKey []byte) bool {
	if digest == nil || len(signature) != 64 || len(publicKey) == 0 {
		return false
	}
	return crypto.VerifySignature(publicKey, digest[:], signature)
}
