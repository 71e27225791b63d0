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

package i18n

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestExpand(t *testing.T) {
	lang := language.Make("en")
	ctx := WithLang(context.Background(), lang)
	str := Expand(ctx, MsgTicketNotFound, "myticket")
	assert.Equal(t, "Ticket 'myticket' not found", str)
}

func TestExpandWithCode(t *testing.T) {
	lang := language.Make("en")
	ctx := WithLang(context.Background(), lang)
	str := ExpandWithCode(ctx, MsgTicketNotFound, "myticket")
	assert.Equal(t, "TA10151: Ticket 'myticket' not found", str)
}

func TestExpandDefaultLang(t *testing.T) {
	SetLang("fr")
	str := ExpandWithCode(context.Background(), MsgContextCanceled)
	assert.Equal(t, "TA10110: Context cancelled", str)
	SetLang("en")
}

func TestGetStatusHint(t *testing.T) {
	code, ok := GetStatusHint(string(MsgValidationError))
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)
	_, ok = GetStatusHint(string(MsgDBQueryFailed))
	assert.False(t, ok)
}

func TestResponseMessagesDistinct(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "TA10229: Created", ExpandWithCode(ctx, MsgCreatedResponse))
	assert.NotEqual(t, MsgCreatedResponse, MsgFilterAscendingDesc)
	assert.Equal(t, "TA10223: Ascending sort order (overrides all fields in a multi-field sort)", ExpandWithCode(ctx, MsgFilterAscendingDesc))
}

func TestDuplicateKey(t *testing.T) {
	tam("ABCD1234", "test1")
	assert.Panics(t, func() {
		tam("ABCD1234", "test2")
	})
}

func TestNewErrorCodes(t *testing.T) {
	err := NewError(context.Background(), MsgLedgerNetworkError, "eth", "pop")
	assert.Regexp(t, "TA10148.*eth.*pop", err)
	assert.True(t, IsCode(err, MsgLedgerNetworkError))
	assert.False(t, IsCode(err, MsgLedgerRejectionError))
	assert.True(t, HasCodePrefix(err, MsgLedgerNetworkError))
	assert.Equal(t, http.StatusBadGateway, err.(TicketAnchorError).HTTPStatus())
}

func TestWrapErrorKeepsCause(t *testing.T) {
	cause := fmt.Errorf("pop")
	err := WrapError(context.Background(), cause, MsgDBQueryFailed)
	assert.Regexp(t, "TA10114.*pop", err)
	assert.Equal(t, cause, errors.Cause(err))
	assert.Equal(t, http.StatusInternalServerError, err.(TicketAnchorError).HTTPStatus())

	outer := WrapError(context.Background(), err, MsgLedgerNetworkError, "eth", "x")
	assert.True(t, IsCode(outer, MsgDBQueryFailed))
	assert.True(t, IsCode(outer, MsgLedgerNetworkError))
}
