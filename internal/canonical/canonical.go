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

package canonical

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// TimeFormat is the single rendering used for every date value
const TimeFormat = time.RFC3339

// Canonicalize renders a flat field set as one deterministic byte string: a JSON object with
// lexicographically sorted keys, no insignificant whitespace, and fixed formats for numbers and dates.
// Null values, missing required keys and strings that are not valid UTF-8 are errors, never defaulted.
func Canonicalize(ctx context.Context, fields map[string]interface{}, required ...string) ([]byte, error) {
	for _, k := range required {
		if _, ok := fields[k]; !ok {
			return nil, i18n.NewError(ctx, i18n.MsgCanonicalizationMissing, k)
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !utf8.ValidString(k) {
			return nil, i18n.NewError(ctx, i18n.MsgCanonicalizationUTF8, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, k)
		buf.WriteByte(':')
		if err := writeValue(ctx, buf, k, fields[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
}

func writeTime(buf *bytes.Buffer, t time.Time) {
	writeString(buf, t.UTC().Format(TimeFormat))
}

func writeValue(ctx context.Context, buf *bytes.Buffer, k string, v interface{}) error {
	switch tv := v.(type) {
	case nil:
		return i18n.NewError(ctx, i18n.MsgCanonicalizationMissing, k)
	case string:
		// The JSON encoder would substitute U+FFFD, so distinct inputs could render the same
		if !utf8.ValidString(tv) {
			return i18n.NewError(ctx, i18n.MsgCanonicalizationUTF8, k)
		}
		writeString(buf, tv)
	case bool:
		buf.WriteString(strconv.FormatBool(tv))
	case int:
		buf.WriteString(strconv.FormatInt(int64(tv), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(tv), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(tv, 10))
	case uint:
		buf.WriteString(strconv.FormatUint(uint64(tv), 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(tv), 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(tv, 10))
	case float64:
		if math.IsNaN(tv) || math.IsInf(tv, 0) {
			return i18n.NewError(ctx, i18n.MsgCanonicalizationType, v, k)
		}
		buf.WriteString(strconv.FormatFloat(tv, 'f', -1, 64))
	case time.Time:
		writeTime(buf, tv)
	case *time.Time:
		if tv == nil {
			return i18n.NewError(ctx, i18n.MsgCanonicalizationMissing, k)
		}
		writeTime(buf, *tv)
	case tktypes.Timestamp:
		writeTime(buf, time.Time(tv))
	case *tktypes.Timestamp:
		if tv.IsZero() {
			return i18n.NewError(ctx, i18n.MsgCanonicalizationMissing, k)
		}
		writeTime(buf, tv.Time())
	case *tktypes.UUID:
		if tv == nil {
			return i18n.NewError(ctx, i18n.MsgCanonicalizationMissing, k)
		}
		writeString(buf, tv.String())
	case *tktypes.Bytes32:
		if tv == nil {
			return i18n.NewError(ctx, i18n.MsgCanonicalizationMissing, k)
		}
		writeString(buf, tv.String())
	case tktypes.HexBytes:
		if tv == nil {
			return i18n.NewError(ctx, i18n.MsgCanonicalizationMissing, k)
		}
		writeString(buf, tv.String())
	default:
		return i18n.NewError(ctx, i18n.MsgCanonicalizationType, v, k)
	}
	return nil
}
