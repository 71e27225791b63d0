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

package localledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/pkg/ledger"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/stretchr/testify/assert"
)

var utConfPrefix = config.NewPluginConfig("localledger_unit_tests")

func newTestLocalLedger(t *testing.T, blockInterval string) *LocalLedger {
	config.Reset()
	l := &LocalLedger{}
	l.InitPrefix(utConfPrefix)
	utConfPrefix.Set(LocalLedgerConfURL, fmt.Sprintf("memory://%s", tktypes.ShortID()))
	utConfPrefix.Set(LocalLedgerConfBlockInterval, blockInterval)
	err := l.Init(context.Background(), utConfPrefix)
	assert.NoError(t, err)
	return l
}

func TestInit(t *testing.T) {
	l := newTestLocalLedger(t, "0")
	defer l.Close()
	assert.Equal(t, "localledger", l.Name())
	assert.Equal(t, int64(0), l.Height())
	assert.True(t, l.IsReachable(context.Background()))

	cost, err := l.EstimateSubmissionCost(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(21000), cost.Int64())
}

func TestInitBadURL(t *testing.T) {
	config.Reset()
	l := &LocalLedger{}
	l.InitPrefix(utConfPrefix)
	utConfPrefix.Set(LocalLedgerConfURL, "!badness://")
	err := l.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "TA10167", err)
}

func TestSubmitAndConfirm(t *testing.T) {
	ctx := context.Background()
	l := newTestLocalLedger(t, "0")
	defer l.Close()

	root := tktypes.NewRandB32()
	exists, err := l.RootExists(ctx, root)
	assert.NoError(t, err)
	assert.False(t, exists)
	found, err := l.FindRootTransaction(ctx, root)
	assert.NoError(t, err)
	assert.Empty(t, found)

	txHash, err := l.SubmitRoot(ctx, root)
	assert.NoError(t, err)
	assert.Regexp(t, "^0x[0-9a-f]{64}$", txHash)
	assert.Equal(t, int64(1), l.Height())

	exists, err = l.RootExists(ctx, root)
	assert.NoError(t, err)
	assert.True(t, exists)
	found, err = l.FindRootTransaction(ctx, root)
	assert.NoError(t, err)
	assert.Equal(t, txHash, found)

	confirmations, err := l.GetConfirmationCount(ctx, txHash)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), confirmations)

	// Later blocks deepen the transaction
	for i := 0; i < 3; i++ {
		err = l.mine(nil, "")
		assert.NoError(t, err)
	}
	confirmations, err = l.GetConfirmationCount(ctx, txHash)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), confirmations)
}

func TestSubmitDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	l := newTestLocalLedger(t, "0")
	defer l.Close()

	root := tktypes.NewRandB32()
	_, err := l.SubmitRoot(ctx, root)
	assert.NoError(t, err)

	_, err = l.SubmitRoot(ctx, root)
	assert.True(t, ledger.IsRejectionError(err))
	assert.Equal(t, int64(1), l.Height())
}

func TestConfirmationsUnknownTx(t *testing.T) {
	l := newTestLocalLedger(t, "0")
	defer l.Close()
	_, err := l.GetConfirmationCount(context.Background(), "0x1234")
	assert.True(t, ledger.IsRejectionError(err))
	assert.Regexp(t, "TA10149.*0x1234", err)
}

func TestBlockLoopMines(t *testing.T) {
	l := newTestLocalLedger(t, "1ms")
	defer l.Close()
	for l.Height() < 3 {
		time.Sleep(1 * time.Millisecond)
	}
}

func TestHeightSurvivesReopen(t *testing.T) {
	config.Reset()
	name := fmt.Sprintf("memory://%s", tktypes.ShortID())
	l := &LocalLedger{}
	l.InitPrefix(utConfPrefix)
	utConfPrefix.Set(LocalLedgerConfURL, name)
	utConfPrefix.Set(LocalLedgerConfBlockInterval, "0")
	err := l.Init(context.Background(), utConfPrefix)
	assert.NoError(t, err)
	defer l.Close()
	_, err = l.SubmitRoot(context.Background(), tktypes.NewRandB32())
	assert.NoError(t, err)

	err = l.loadHead()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), l.Height())
}

func TestClosedLedger(t *testing.T) {
	ctx := context.Background()
	l := newTestLocalLedger(t, "0")
	l.Close()
	l.Close()

	assert.False(t, l.IsReachable(ctx))
	_, err := l.SubmitRoot(ctx, tktypes.NewRandB32())
	assert.True(t, ledger.IsNetworkError(err))
	_, err = l.GetConfirmationCount(ctx, "0x1234")
	assert.True(t, ledger.IsNetworkError(err))
	_, err = l.FindRootTransaction(ctx, tktypes.NewRandB32())
	assert.True(t, ledger.IsNetworkError(err))
}
