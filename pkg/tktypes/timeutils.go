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
	"encoding/json"
	"strconv"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
)

// Timestamp is serialized to JSON on the API in RFC3339 nanosecond UTC time.
// It is persisted as a nanosecond resolution timestamp in the database.
// It can be parsed from RFC3339, or unix timestamps (second, millisecond or nanosecond resolution)
type Timestamp time.Time

func Now() *Timestamp {
	t := Timestamp(time.Now().UTC())
	return &t
}

func ZeroTime() Timestamp {
	return Timestamp(time.Time{}.UTC())
}

func FromTime(t time.Time) *Timestamp {
	ts := Timestamp(t.UTC())
	return &ts
}

func UnixTime(unixTime int64) *Timestamp {
	if unixTime < 1e10 {
		unixTime *= 1e3 // secs to millis
	}
	if unixTime < 1e15 {
		unixTime *= 1e6 // millis to nanos
	}
	t := Timestamp(time.Unix(0, unixTime).UTC())
	return &t
}

func (ts *Timestamp) MarshalJSON() ([]byte, error) {
	if ts == nil || time.Time(*ts).IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(ts.String())
}

func ParseTimestamp(str string) (*Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		var unixTime int64
		unixTime, err = strconv.ParseInt(str, 10, 64)
		if err == nil {
			return UnixTime(unixTime), nil
		}
	}
	if err != nil {
		zero := ZeroTime()
		return &zero, i18n.NewError(context.Background(), i18n.MsgTimeParseFail, str)
	}
	ts := Timestamp(t.UTC())
	return &ts, nil
}

func (ts *Timestamp) Time() time.Time {
	if ts == nil {
		return time.Time{}
	}
	return time.Time(*ts)
}

func (ts *Timestamp) UnixNano() int64 {
	if ts == nil {
		return 0
	}
	return time.Time(*ts).UnixNano()
}

func (ts *Timestamp) IsZero() bool {
	return ts == nil || time.Time(*ts).IsZero()
}

// Truncate drops precision below the supplied unit, returning a new timestamp
func (ts *Timestamp) Truncate(d time.Duration) *Timestamp {
	if ts == nil {
		return nil
	}
	return FromTime(time.Time(*ts).Truncate(d))
}

func (ts *Timestamp) UnmarshalText(b []byte) error {
	t, err := ParseTimestamp(string(b))
	if err != nil {
		return err
	}
	*ts = *t
	return nil
}

// Scan implements sql.Scanner
func (ts *Timestamp) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*ts = ZeroTime()
		return nil

	case string:
		t, err := ParseTimestamp(src)
		if err != nil {
			return err
		}
		*ts = *t
		return nil

	case int64:
		if src == 0 {
			return nil
		}
		*ts = Timestamp(time.Unix(0, src).UTC())
		return nil

	default:
		return i18n.NewError(context.Background(), i18n.MsgScanFailed, src, ts)
	}
}

// Value implements sql.Valuer
func (ts *Timestamp) Value() (driver.Value, error) {
	if ts == nil || time.Time(*ts).IsZero() {
		return nil, nil
	}
	return ts.UnixNano(), nil
}

func (ts *Timestamp) String() string {
	if ts == nil || time.Time(*ts).IsZero() {
		return ""
	}
	return time.Time(*ts).UTC().Format(time.RFC3339Nano)
}
