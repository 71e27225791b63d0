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

package tktypes

import (
	"context"
	"crypto/rand"
	"database/sql/driver"
	"encoding/hex"
	"strings"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
)

// Bytes32 is a 32 byte digest: ticket hashes, Merkle nodes and roots, ledger transaction hashes.
// Text form is lower case hex without a prefix, although a 0x prefix is accepted on input.
type Bytes32 [32]byte

func NewRandB32() *Bytes32 {
	b := new(Bytes32)
	_, _ = rand.Read(b[:])
	return b
}

func ParseBytes32(ctx context.Context, s string) (*Bytes32, error) {
	b := new(Bytes32)
	if err := b.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return b, nil
}

// MustParseBytes32 panics on bad input, so is only for constants and tests
func MustParseBytes32(s string) *Bytes32 {
	b, err := ParseBytes32(context.Background(), s)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Bytes32) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(out, b[:])
	return out, nil
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "0x")
	if len(s) != hex.EncodedLen(len(b)) {
		return i18n.NewError(context.Background(), i18n.MsgInvalidWrongLenB32)
	}
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return i18n.WrapError(context.Background(), err, i18n.MsgInvalidHex)
	}
	return nil
}

func (b *Bytes32) String() string {
	if b == nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}

// HexString is the 0x prefixed form ledgers expect
func (b *Bytes32) HexString() string {
	if b == nil {
		return ""
	}
	return "0x" + b.String()
}

func (b *Bytes32) Equals(other *Bytes32) bool {
	if b == nil || other == nil {
		return b == other
	}
	return *b == *other
}

// Value stores the hex form, so columns stay readable in both SQL providers
func (b *Bytes32) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return b.String(), nil
}

// Scan accepts the stored hex form, or raw bytes from a driver that returns BLOBs
func (b *Bytes32) Scan(src interface{}) error {
	var text []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		text = []byte(v)
	case []byte:
		if len(v) == len(b) {
			copy(b[:], v)
			return nil
		}
		text = v
	default:
		return i18n.NewError(context.Background(), i18n.MsgScanFailed, src, b)
	}
	if len(text) == 0 {
		return nil
	}
	return b.UnmarshalText(text)
}

// HexBytes is variable length binary, such as a signature, in hex text form
type HexBytes []byte

func (h HexBytes) String() string {
	return hex.EncodeToString(h)
}

func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HexBytes) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(text), "0x"))
	if err != nil {
		return i18n.WrapError(context.Background(), err, i18n.MsgInvalidHex)
	}
	*h = b
	return nil
}

func (h HexBytes) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return h.String(), nil
}

func (h *HexBytes) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*h = nil
		return nil
	case string:
		return h.UnmarshalText([]byte(v))
	case []byte:
		return h.UnmarshalText(v)
	default:
		return i18n.NewError(context.Background(), i18n.MsgScanFailed, src, h)
	}
}
