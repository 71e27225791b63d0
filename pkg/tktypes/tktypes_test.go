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
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBytes32JSONRoundTrip(t *testing.T) {
	b := NewRandB32()
	j, err := json.Marshal(b)
	assert.NoError(t, err)
	assert.Equal(t, `"`+b.String()+`"`, string(j))

	var b2 Bytes32
	err = json.Unmarshal(j, &b2)
	assert.NoError(t, err)
	assert.True(t, b.Equals(&b2))
	assert.Equal(t, "0x"+b.String(), b.HexString())
}

func TestParseBytes32(t *testing.T) {
	_, err := ParseBytes32(context.Background(), "0x1234")
	assert.Regexp(t, "TA10128", err)
	_, err = ParseBytes32(context.Background(), "zz34567890123456789012345678901234567890123456789012345678901234")
	assert.Regexp(t, "TA10127", err)
	b, err := ParseBytes32(context.Background(), "0x0123456789012345678901234567890123456789012345678901234567890123")
	assert.NoError(t, err)
	assert.Equal(t, "0123456789012345678901234567890123456789012345678901234567890123", b.String())
	assert.Panics(t, func() { MustParseBytes32("!") })
}

func TestBytes32ScanValue(t *testing.T) {
	b := NewRandB32()
	v, err := b.Value()
	assert.NoError(t, err)

	var b2 Bytes32
	assert.NoError(t, b2.Scan(v))
	assert.Equal(t, *b, b2)

	var b3 Bytes32
	assert.NoError(t, b3.Scan(b[:]))
	assert.Equal(t, *b, b3)

	assert.NoError(t, b3.Scan(nil))
	assert.NoError(t, b3.Scan(""))
	assert.NoError(t, b3.Scan([]byte{}))
	assert.Regexp(t, "TA10126", b3.Scan(12345))

	var nilB32 *Bytes32
	v, err = nilB32.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, "", nilB32.String())
	assert.Equal(t, "", nilB32.HexString())
	assert.True(t, nilB32.Equals(nil))
	assert.False(t, nilB32.Equals(b))
}

func TestHexBytes(t *testing.T) {
	h := HexBytes{0x01, 0xab}
	j, err := json.Marshal(h)
	assert.NoError(t, err)
	assert.Equal(t, `"01ab"`, string(j))

	var h2 HexBytes
	assert.NoError(t, json.Unmarshal([]byte(`"0x01ab"`), &h2))
	assert.Equal(t, h, h2)
	assert.Regexp(t, "TA10127", json.Unmarshal([]byte(`"xyz"`), &h2))

	v, _ := h.Value()
	var h3 HexBytes
	assert.NoError(t, h3.Scan(v))
	assert.Equal(t, h, h3)
	assert.NoError(t, h3.Scan([]byte("ff")))
	assert.Equal(t, HexBytes{0xff}, h3)
	assert.NoError(t, h3.Scan(nil))
	assert.Nil(t, h3)
	assert.Regexp(t, "TA10126", h3.Scan(42))

	v, _ = HexBytes(nil).Value()
	assert.Nil(t, v)
}

func TestUUID(t *testing.T) {
	u := NewUUID()
	u2, err := ParseUUID(context.Background(), u.String())
	assert.NoError(t, err)
	assert.True(t, u.Equals(u2))
	_, err = ParseUUID(context.Background(), "bad")
	assert.Regexp(t, "TA10129", err)

	v, err := u.Value()
	assert.NoError(t, err)
	var u3 UUID
	assert.NoError(t, u3.Scan(v))
	assert.Equal(t, *u, u3)

	var nilU *UUID
	assert.Equal(t, "", nilU.String())
	v, _ = nilU.Value()
	assert.Nil(t, v)
	assert.True(t, nilU.Equals(nil))
	assert.False(t, nilU.Equals(u))
	assert.Len(t, ShortID(), 8)
}

func TestTimestampParsing(t *testing.T) {
	ts, err := ParseTimestamp("2021-05-15T19:49:04.123456789Z")
	assert.NoError(t, err)
	assert.Equal(t, int64(1621108144123456789), ts.UnixNano())

	ts, err = ParseTimestamp("1621108144")
	assert.NoError(t, err)
	assert.Equal(t, "2021-05-15T19:49:04Z", ts.String())

	ts, err = ParseTimestamp("1621108144123")
	assert.NoError(t, err)
	assert.Equal(t, "2021-05-15T19:49:04.123Z", ts.String())

	_, err = ParseTimestamp("yesterday")
	assert.Regexp(t, "TA10130", err)
}

func TestTimestampJSON(t *testing.T) {
	ts := FromTime(time.Date(2021, 5, 15, 19, 49, 4, 0, time.FixedZone("X", 3600)))
	j, err := json.Marshal(ts)
	assert.NoError(t, err)
	assert.Equal(t, `"2021-05-15T18:49:04Z"`, string(j))

	var ts2 Timestamp
	assert.NoError(t, json.Unmarshal(j, &ts2))
	assert.Equal(t, ts.UnixNano(), ts2.UnixNano())

	var nilTS *Timestamp
	j, _ = json.Marshal(nilTS)
	assert.Equal(t, "null", string(j))
	assert.True(t, nilTS.IsZero())
	assert.Nil(t, nilTS.Truncate(time.Second))
	assert.Equal(t, time.Time{}, nilTS.Time())
	assert.Equal(t, int64(0), nilTS.UnixNano())
	assert.Equal(t, "", nilTS.String())
}

func TestTimestampScanValue(t *testing.T) {
	ts := Now()
	v, err := ts.Value()
	assert.NoError(t, err)
	var ts2 Timestamp
	assert.NoError(t, ts2.Scan(v))
	assert.Equal(t, ts.UnixNano(), ts2.UnixNano())

	assert.NoError(t, ts2.Scan("2021-05-15T19:49:04Z"))
	assert.Regexp(t, "TA10130", ts2.Scan("nope"))
	assert.NoError(t, ts2.Scan(int64(0)))
	assert.NoError(t, ts2.Scan(nil))
	assert.True(t, ts2.IsZero())
	assert.Regexp(t, "TA10126", ts2.Scan(false))

	v, _ = ts2.Value()
	assert.Nil(t, v)
}

func TestTimestampTruncate(t *testing.T) {
	ts := FromTime(time.Unix(1621108144, 999))
	assert.Equal(t, int64(1621108144000000000), ts.Truncate(time.Second).UnixNano())
}

func TestProofPathScanValue(t *testing.T) {
	pp := ProofPath{
		{Hash: NewRandB32(), Side: ProofSideRight},
		{Hash: NewRandB32(), Side: ProofSideLeft},
	}
	v, err := pp.Value()
	assert.NoError(t, err)

	var pp2 ProofPath
	assert.NoError(t, pp2.Scan(v))
	assert.Equal(t, pp, pp2)

	var pp3 ProofPath
	assert.NoError(t, pp3.Scan([]byte(v.(string))))
	assert.Equal(t, pp, pp3)
	assert.NoError(t, pp3.Scan(nil))
	assert.Nil(t, pp3)
	assert.Regexp(t, "TA10126", pp3.Scan(1))

	v, _ = ProofPath(nil).Value()
	assert.Nil(t, v)
}

func TestVerificationLevelRank(t *testing.T) {
	assert.Less(t, VerificationLevelSignature.Rank(), VerificationLevelProof.Rank())
	assert.Less(t, VerificationLevelProof.Rank(), VerificationLevelChain.Rank())
	assert.Equal(t, 0, VerificationLevel("other").Rank())
}

func TestAnchorStatusFinal(t *testing.T) {
	assert.False(t, AnchorStatusPending.IsFinal())
	assert.False(t, AnchorStatusSubmitted.IsFinal())
	assert.True(t, AnchorStatusConfirmed.IsFinal())
	assert.True(t, AnchorStatusFailed.IsFinal())
	assert.True(t, AnchorStatusExpired.IsFinal())
}
