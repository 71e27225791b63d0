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

package hashing

import (
	"context"
	"crypto/sha256"
	"strings"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/zeebo/blake3"
)

const (
	// SHA256 is the default algorithm, for both ticket hashes and Merkle nodes
	SHA256 = "sha256"
	// BLAKE3 uses the 256-bit BLAKE3 output
	BLAKE3 = "blake3"
)

// Hasher computes fixed size digests, and combines two digests into a Merkle parent.
// Combine is order sensitive, which is why proofs record the side of each sibling.
type Hasher interface {
	Name() string
	Digest(data []byte) *tktypes.Bytes32
	Combine(left, right *tktypes.Bytes32) *tktypes.Bytes32
}

// New returns the hasher for a configured algorithm name
func New(ctx context.Context, algorithm string) (Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "", SHA256:
		return &sha256Hasher{}, nil
	case BLAKE3:
		return &blake3Hasher{}, nil
	default:
		return nil, i18n.NewError(ctx, i18n.MsgUnknownHashAlgorithm, algorithm)
	}
}

type sha256Hasher struct{}

func (h *sha256Hasher) Name() string { return SHA256 }

func (h *sha256Hasher) Digest(data []byte) *tktypes.Bytes32 {
	b32 := tktypes.Bytes32(sha256.Sum256(data))
	return &b32
}

func (h *sha256Hasher) Combine(left, right *tktypes.Bytes32) *tktypes.Bytes32 {
	return h.Digest(concat(left, right))
}

type blake3Hasher struct{}

func (h *blake3Hasher) Name() string { return BLAKE3 }

func (h *blake3Hasher) Digest(data []byte) *tktypes.Bytes32 {
	b32 := tktypes.Bytes32(blake3.Sum256(data))
	return &b32
}

func (h *blake3Hasher) Combine(left, right *tktypes.Bytes32) *tktypes.Bytes32 {
	return h.Digest(concat(left, right))
}

func concat(left, right *tktypes.Bytes32) []byte {
	b := make([]byte, 64)
	copy(b[0:32], left[:])
	copy(b[32:64], right[:])
	return b
}
