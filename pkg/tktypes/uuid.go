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
	"database/sql/driver"

	"github.com/aidarkhanov/nanoid"
	"github.com/google/uuid"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
)

// Letters, digits and underscore only, so a double-click selects the whole ID in a log line
const shortIDChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// ShortID is an 8 character correlation ID for requests, connections and ticks
func ShortID() string {
	return nanoid.Must(nanoid.Generate(shortIDChars, 8))
}

// UUID identifies tickets, batches and anchors. A nil *UUID stores as SQL NULL.
type UUID uuid.UUID

func NewUUID() *UUID {
	u := UUID(uuid.New())
	return &u
}

func ParseUUID(ctx context.Context, s string) (*UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgInvalidUUID)
	}
	u := UUID(parsed)
	return &u, nil
}

// MustParseUUID is for constants and tests
func MustParseUUID(s string) *UUID {
	u := UUID(uuid.MustParse(s))
	return &u
}

func (u *UUID) String() string {
	if u == nil {
		return ""
	}
	return uuid.UUID(*u).String()
}

func (u UUID) MarshalText() ([]byte, error) {
	return uuid.UUID(u).MarshalText()
}

func (u *UUID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(u).UnmarshalText(b)
}

func (u *UUID) Value() (driver.Value, error) {
	if u == nil {
		return nil, nil
	}
	return u.String(), nil
}

func (u *UUID) Scan(src interface{}) error {
	return (*uuid.UUID)(u).Scan(src)
}

// Equals treats two nils as equal
func (u *UUID) Equals(other *UUID) bool {
	if u == nil || other == nil {
		return u == other
	}
	return *u == *other
}
