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

package batching

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/database/sqlcommon"
	"github.com/kaleido-io/ticketanchor/internal/database/sqlite"
	"github.com/kaleido-io/ticketanchor/internal/hashing"
	"github.com/kaleido-io/ticketanchor/internal/merkle"
	"github.com/kaleido-io/ticketanchor/mocks/databasemocks"
	"github.com/kaleido-io/ticketanchor/mocks/metricsmocks"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestDB(t *testing.T) (database.Plugin, func()) {
	dir, err := os.MkdirTemp("", "batching")
	assert.NoError(t, err)
	db := &sqlite.SQLite{}
	prefix := config.NewPluginConfig("unittest.batching")
	db.InitPrefix(prefix)
	prefix.Set(sqlcommon.SQLConfDatasourceURL, path.Join(dir, "test.db"))
	prefix.Set(sqlcommon.SQLConfMigrationsAuto, true)
	prefix.Set(sqlcommon.SQLConfMigrationsDirectory, "../../db/migrations/sqlite")
	prefix.Set(sqlcommon.SQLConfMaxConnections, 1)
	err = db.Init(context.Background(), prefix)
	assert.NoError(t, err)
	return db, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func newTestMetrics() *metricsmocks.Manager {
	mmm := &metricsmocks.Manager{}
	mmm.On("BatchSealed", mock.Anything).Return()
	return mmm
}

func newTestBatchManagerWithDB(t *testing.T, minSize int64, maxAge string) (*batchManager, database.Plugin, func()) {
	config.Reset()
	config.Set(config.BatchMinSize, minSize)
	config.Set(config.BatchMaxAge, maxAge)
	db, done := newTestDB(t)
	bm, err := NewBatchManager(context.Background(), db, newTestMetrics())
	assert.NoError(t, err)
	return bm.(*batchManager), db, done
}

func newTestBatchManager(t *testing.T) (*batchManager, *databasemocks.Plugin) {
	config.Reset()
	mdi := &databasemocks.Plugin{}
	mdi.On("RunAsGroup", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	}).Maybe()
	bm, err := NewBatchManager(context.Background(), mdi, newTestMetrics())
	assert.NoError(t, err)
	return bm.(*batchManager), mdi
}

func newTestTicket(t *testing.T, db database.Plugin, bookingID string) *tktypes.Ticket {
	h, _ := hashing.New(context.Background(), hashing.SHA256)
	now := tktypes.Now()
	ticket := &tktypes.Ticket{
		ID:               tktypes.NewUUID(),
		BookingID:        bookingID,
		RiderID:          "rider1",
		DriverID:         "driver1",
		RouteID:          "route1",
		TripDate:         tktypes.FromTime(time.Date(2026, 11, 1, 9, 30, 0, 0, time.UTC)),
		SeatNumber:       1,
		PickupID:         "stop-a",
		DropoffID:        "stop-b",
		Fare:             "9.00",
		CanonicalPayload: fmt.Sprintf(`{"bookingId":"%s"}`, bookingID),
		HashAlgorithm:    hashing.SHA256,
		Hash:             h.Digest([]byte(bookingID)),
		Code:             "code",
		Signature:        tktypes.HexBytes{0x01},
		PublicKey:        tktypes.HexBytes{0x02},
		QRPayload:        "{}",
		Status:           tktypes.TicketStatusValid,
		Created:          now,
		ExpiresAt:        tktypes.FromTime(now.Time().Add(time.Hour)),
	}
	if db != nil {
		err := db.InsertTicket(context.Background(), ticket)
		assert.NoError(t, err)
	}
	return ticket
}

func TestE2EAppendAndSealThreeTickets(t *testing.T) {
	bm, db, done := newTestBatchManagerWithDB(t, 3, "1h")
	defer done()
	ctx := context.Background()

	tickets := []*tktypes.Ticket{
		newTestTicket(t, db, "b1"),
		newTestTicket(t, db, "b2"),
		newTestTicket(t, db, "b3"),
	}
	var batchID *tktypes.UUID
	for i, ticket := range tickets {
		id, leafIndex, err := bm.AddTicket(ctx, ticket)
		assert.NoError(t, err)
		assert.Equal(t, int64(i), leafIndex)
		if batchID == nil {
			batchID = id
		}
		assert.Equal(t, *batchID, *id)
	}

	res, err := bm.ProcessReadyBatches(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Processed)

	batch, err := bm.GetBatchByID(ctx, batchID.String())
	assert.NoError(t, err)
	assert.Equal(t, tktypes.BatchStatusReady, batch.Status)
	assert.Equal(t, int64(3), batch.TicketCount)
	assert.NotNil(t, batch.Sealed)

	h, _ := hashing.New(ctx, hashing.SHA256)
	expected := h.Combine(
		h.Combine(tickets[0].Hash, tickets[1].Hash),
		h.Combine(tickets[2].Hash, tickets[2].Hash),
	)
	assert.Equal(t, *expected, *batch.MerkleRoot)

	for i, ticket := range tickets {
		proof, err := db.GetProof(ctx, batchID, ticket.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(i), proof.LeafIndex)
		assert.True(t, merkle.VerifyProof(ctx, h, ticket.Hash, proof.Path, batch.MerkleRoot))
	}

	leaves, _, err := bm.GetBatchTickets(ctx, batchID.String(), database.BatchTicketQueryFactory.NewFilter(ctx).And())
	assert.NoError(t, err)
	assert.Len(t, leaves, 3)

	// Sealing again is a no-op
	again, err := bm.CloseBatch(ctx, batchID)
	assert.NoError(t, err)
	assert.Equal(t, *batch.MerkleRoot, *again.MerkleRoot)

	// The next ticket opens a new batch
	id, leafIndex, err := bm.AddTicket(ctx, newTestTicket(t, db, "b4"))
	assert.NoError(t, err)
	assert.NotEqual(t, *batchID, *id)
	assert.Equal(t, int64(0), leafIndex)
}

func TestE2ESingleTicketBatchSealedByAge(t *testing.T) {
	bm, db, done := newTestBatchManagerWithDB(t, 100, "0s")
	defer done()
	ctx := context.Background()

	ticket := newTestTicket(t, db, "solo")
	batchID, _, err := bm.AddTicket(ctx, ticket)
	assert.NoError(t, err)

	res, err := bm.ProcessReadyBatches(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Processed)

	batch, err := db.GetBatchByID(ctx, batchID)
	assert.NoError(t, err)
	h, _ := hashing.New(ctx, hashing.SHA256)
	assert.Equal(t, *h.Combine(ticket.Hash, ticket.Hash), *batch.MerkleRoot)
}

func TestE2ENotReadyIsSkipped(t *testing.T) {
	bm, db, done := newTestBatchManagerWithDB(t, 100, "1h")
	defer done()
	ctx := context.Background()

	_, _, err := bm.AddTicket(ctx, newTestTicket(t, db, "waiting"))
	assert.NoError(t, err)

	res, err := bm.ProcessReadyBatches(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 1, res.Skipped)
}

func TestE2ESweepUnbatchedTickets(t *testing.T) {
	bm, db, done := newTestBatchManagerWithDB(t, 2, "1h")
	defer done()
	ctx := context.Background()

	t1 := newTestTicket(t, db, "missed1")
	t2 := newTestTicket(t, db, "missed2")

	res, err := bm.ProcessReadyBatches(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Processed)

	for _, ticket := range []*tktypes.Ticket{t1, t2} {
		stored, err := db.GetTicketByID(ctx, ticket.ID)
		assert.NoError(t, err)
		assert.NotNil(t, stored.BatchID)
	}
}

func TestE2EAddTicketTwice(t *testing.T) {
	bm, db, done := newTestBatchManagerWithDB(t, 10, "1h")
	defer done()
	ctx := context.Background()

	ticket := newTestTicket(t, db, "twice")
	batchID, _, err := bm.AddTicket(ctx, ticket)
	assert.NoError(t, err)
	_, _, err = bm.AddTicket(ctx, ticket)
	assert.Regexp(t, "TA10174.*"+batchID.String(), err)

	batch, err := db.GetBatchByID(ctx, batchID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), batch.TicketCount)
}

func TestE2EConcurrentAppendsAndSeals(t *testing.T) {
	bm, db, done := newTestBatchManagerWithDB(t, 7, "1h")
	defer done()
	ctx := context.Background()

	const count = 40
	tickets := make([]*tktypes.Ticket, count)
	for i := range tickets {
		tickets[i] = newTestTicket(t, db, fmt.Sprintf("concurrent%d", i))
	}

	var wg sync.WaitGroup
	for _, ticket := range tickets {
		wg.Add(2)
		go func(ticket *tktypes.Ticket) {
			defer wg.Done()
			_, _, err := bm.AddTicket(ctx, ticket)
			if err != nil {
				// The sweep got there first
				assert.Regexp(t, "TA10174", err)
			}
		}(ticket)
		go func() {
			defer wg.Done()
			_, err := bm.ProcessReadyBatches(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	leavesByBatch := map[tktypes.UUID][]int64{}
	for _, ticket := range tickets {
		stored, err := db.GetTicketByID(ctx, ticket.ID)
		assert.NoError(t, err)
		if assert.NotNil(t, stored.BatchID, "ticket %s dropped", ticket.ID) {
			leavesByBatch[*stored.BatchID] = append(leavesByBatch[*stored.BatchID], *stored.LeafIndex)
		}
	}

	total := 0
	for batchID, indexes := range leavesByBatch {
		batchID := batchID
		sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })
		for i, leafIndex := range indexes {
			assert.Equal(t, int64(i), leafIndex, "batch %s", batchID)
		}
		batch, err := db.GetBatchByID(ctx, &batchID)
		assert.NoError(t, err)
		assert.Equal(t, int64(len(indexes)), batch.TicketCount)
		leaves, _, err := bm.GetBatchTickets(ctx, batchID.String(), database.BatchTicketQueryFactory.NewFilter(ctx).And())
		assert.NoError(t, err)
		assert.Len(t, leaves, len(indexes))
		total += len(indexes)
	}
	assert.Equal(t, count, total)
}

func TestE2EBatchKeepsItsHashAlgorithm(t *testing.T) {
	bm, db, done := newTestBatchManagerWithDB(t, 1, "1h")
	defer done()
	ctx := context.Background()

	ticket := newTestTicket(t, db, "b3hash")
	bm.hasher, _ = hashing.New(ctx, hashing.BLAKE3)
	batchID, _, err := bm.AddTicket(ctx, ticket)
	assert.NoError(t, err)
	bm.hasher, _ = hashing.New(ctx, hashing.SHA256)

	batch, err := bm.CloseBatch(ctx, batchID)
	assert.NoError(t, err)
	assert.Equal(t, hashing.BLAKE3, batch.HashAlgorithm)
	b3, _ := hashing.New(ctx, hashing.BLAKE3)
	assert.Equal(t, *b3.Combine(ticket.Hash, ticket.Hash), *batch.MerkleRoot)
}

func TestIsReady(t *testing.T) {
	now := time.Now()
	old := tktypes.FromTime(now.Add(-2 * time.Hour))
	recent := tktypes.FromTime(now)
	assert.True(t, IsReady(&tktypes.MerkleBatch{TicketCount: 10, Created: recent}, 10, time.Hour, now))
	assert.False(t, IsReady(&tktypes.MerkleBatch{TicketCount: 9, Created: recent}, 10, time.Hour, now))
	assert.True(t, IsReady(&tktypes.MerkleBatch{TicketCount: 1, Created: old}, 10, time.Hour, now))
	assert.False(t, IsReady(&tktypes.MerkleBatch{TicketCount: 0, Created: old}, 10, time.Hour, now))
}

func TestNewBatchManagerMissingDeps(t *testing.T) {
	_, err := NewBatchManager(context.Background(), nil, nil)
	assert.Regexp(t, "TA10132", err)
}

func TestNewBatchManagerBadAlgorithm(t *testing.T) {
	config.Reset()
	config.Set(config.HashingBatchAlgorithm, "md5")
	_, err := NewBatchManager(context.Background(), &databasemocks.Plugin{}, &metricsmocks.Manager{})
	assert.Regexp(t, "TA10156", err)
}

func TestConfig(t *testing.T) {
	bm, _ := newTestBatchManager(t)
	assert.Equal(t, "sha256", bm.HashAlgorithm())
	assert.Equal(t, int64(100), bm.Config().MinSize)
	assert.Equal(t, "10m0s", bm.Config().MaxAge)
}

func TestAddTicketLockFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(fmt.Errorf("pop"))
	_, _, err := bm.AddTicket(context.Background(), &tktypes.Ticket{ID: tktypes.NewUUID()})
	assert.Regexp(t, "pop", err)
}

func TestAddTicketGetBatchesFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return(nil, nil, fmt.Errorf("pop"))
	_, _, err := bm.AddTicket(context.Background(), &tktypes.Ticket{ID: tktypes.NewUUID()})
	assert.Regexp(t, "pop", err)
}

func TestAddTicketInsertBatchFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{}, nil, nil)
	mdi.On("InsertBatch", mock.Anything, mock.Anything).Return(fmt.Errorf("pop"))
	_, _, err := bm.AddTicket(context.Background(), &tktypes.Ticket{ID: tktypes.NewUUID()})
	assert.Regexp(t, "pop", err)
}

func TestAddTicketSetBatchFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	open := &tktypes.MerkleBatch{ID: tktypes.NewUUID(), TicketCount: 5}
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{open}, nil, nil)
	mdi.On("SetTicketBatch", mock.Anything, mock.Anything, open.ID, int64(5)).Return(fmt.Errorf("pop"))
	_, _, err := bm.AddTicket(context.Background(), &tktypes.Ticket{ID: tktypes.NewUUID()})
	assert.Regexp(t, "pop", err)
}

func TestAddTicketConflictUnknownBatch(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	open := &tktypes.MerkleBatch{ID: tktypes.NewUUID()}
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{open}, nil, nil)
	mdi.On("SetTicketBatch", mock.Anything, mock.Anything, open.ID, int64(0)).Return(database.UpdateConflict)
	mdi.On("GetTicketByID", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("pop"))
	_, _, err := bm.AddTicket(context.Background(), &tktypes.Ticket{ID: tktypes.NewUUID()})
	assert.Regexp(t, "TA10174.*unknown", err)
}

func TestAddTicketInsertLeafFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	open := &tktypes.MerkleBatch{ID: tktypes.NewUUID()}
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{open}, nil, nil)
	mdi.On("SetTicketBatch", mock.Anything, mock.Anything, open.ID, int64(0)).Return(nil)
	mdi.On("InsertBatchTicket", mock.Anything, mock.Anything).Return(fmt.Errorf("pop"))
	_, _, err := bm.AddTicket(context.Background(), &tktypes.Ticket{ID: tktypes.NewUUID()})
	assert.Regexp(t, "pop", err)
}

func TestAddTicketUpdateCountFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	open := &tktypes.MerkleBatch{ID: tktypes.NewUUID()}
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{open}, nil, nil)
	mdi.On("SetTicketBatch", mock.Anything, mock.Anything, open.ID, int64(0)).Return(nil)
	mdi.On("InsertBatchTicket", mock.Anything, mock.Anything).Return(nil)
	mdi.On("UpdateBatch", mock.Anything, open.ID, tktypes.BatchStatusPending, mock.Anything).Return(database.UpdateConflict)
	_, _, err := bm.AddTicket(context.Background(), &tktypes.Ticket{ID: tktypes.NewUUID()})
	assert.Regexp(t, "TA10122", err)
}

func TestProcessReadyBatchesSweepFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("GetTickets", mock.Anything, mock.Anything).Return(nil, nil, fmt.Errorf("pop"))
	_, err := bm.ProcessReadyBatches(context.Background())
	assert.Regexp(t, "pop", err)
}

func TestProcessReadyBatchesSweepAppendFailContinues(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("GetTickets", mock.Anything, mock.Anything).Return([]*tktypes.Ticket{{ID: tktypes.NewUUID()}}, nil, nil)
	mdi.On("LockBatches", mock.Anything).Return(fmt.Errorf("pop"))
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{}, nil, nil)
	res, err := bm.ProcessReadyBatches(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
}

func TestProcessReadyBatchesQueryFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("GetTickets", mock.Anything, mock.Anything).Return([]*tktypes.Ticket{}, nil, nil)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return(nil, nil, fmt.Errorf("pop"))
	_, err := bm.ProcessReadyBatches(context.Background())
	assert.Regexp(t, "pop", err)
}

func TestProcessReadyBatchesSealFailCounted(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	ready := &tktypes.MerkleBatch{ID: tktypes.NewUUID(), TicketCount: 1000, Created: tktypes.Now()}
	mdi.On("GetTickets", mock.Anything, mock.Anything).Return([]*tktypes.Ticket{}, nil, nil)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{ready}, nil, nil)
	mdi.On("LockBatches", mock.Anything).Return(fmt.Errorf("pop"))
	res, err := bm.ProcessReadyBatches(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
}

func TestCloseBatchNotFound(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(nil, nil)
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "TA10152", err)
}

func TestCloseBatchGetFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("pop"))
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "pop", err)
}

func TestCloseBatchEmpty(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(&tktypes.MerkleBatch{
		ID:     tktypes.NewUUID(),
		Status: tktypes.BatchStatusPending,
	}, nil)
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "TA10182", err)
}

func pendingBatch(count int64) *tktypes.MerkleBatch {
	return &tktypes.MerkleBatch{
		ID:            tktypes.NewUUID(),
		Status:        tktypes.BatchStatusPending,
		TicketCount:   count,
		HashAlgorithm: hashing.SHA256,
	}
}

func TestCloseBatchSetBuildingFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(pendingBatch(1), nil)
	mdi.On("UpdateBatch", mock.Anything, mock.Anything, tktypes.BatchStatusPending, mock.Anything).Return(database.UpdateConflict)
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "TA10122", err)
}

func TestCloseBatchGetLeavesFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(pendingBatch(1), nil)
	mdi.On("UpdateBatch", mock.Anything, mock.Anything, tktypes.BatchStatusPending, mock.Anything).Return(nil)
	mdi.On("GetBatchTickets", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil, fmt.Errorf("pop"))
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "pop", err)
}

func TestCloseBatchLeafCountMismatch(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(pendingBatch(2), nil)
	mdi.On("UpdateBatch", mock.Anything, mock.Anything, tktypes.BatchStatusPending, mock.Anything).Return(nil)
	mdi.On("GetBatchTickets", mock.Anything, mock.Anything, mock.Anything).Return([]*tktypes.BatchTicket{
		{TicketID: tktypes.NewUUID(), TicketHash: tktypes.NewRandB32(), LeafIndex: 0},
	}, nil, nil)
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "TA10147", err)
}

func TestCloseBatchLeafIndexGap(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(pendingBatch(2), nil)
	mdi.On("UpdateBatch", mock.Anything, mock.Anything, tktypes.BatchStatusPending, mock.Anything).Return(nil)
	mdi.On("GetBatchTickets", mock.Anything, mock.Anything, mock.Anything).Return([]*tktypes.BatchTicket{
		{TicketID: tktypes.NewUUID(), TicketHash: tktypes.NewRandB32(), LeafIndex: 0},
		{TicketID: tktypes.NewUUID(), TicketHash: tktypes.NewRandB32(), LeafIndex: 2},
	}, nil, nil)
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "TA10183", err)
}

func TestCloseBatchBadAlgorithm(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	batch := pendingBatch(1)
	batch.HashAlgorithm = "md5"
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(batch, nil)
	mdi.On("UpdateBatch", mock.Anything, mock.Anything, tktypes.BatchStatusPending, mock.Anything).Return(nil)
	mdi.On("GetBatchTickets", mock.Anything, mock.Anything, mock.Anything).Return([]*tktypes.BatchTicket{
		{TicketID: tktypes.NewUUID(), TicketHash: tktypes.NewRandB32(), LeafIndex: 0},
	}, nil, nil)
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "TA10156", err)
}

func TestCloseBatchInsertProofFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(pendingBatch(1), nil)
	mdi.On("UpdateBatch", mock.Anything, mock.Anything, tktypes.BatchStatusPending, mock.Anything).Return(nil)
	mdi.On("GetBatchTickets", mock.Anything, mock.Anything, mock.Anything).Return([]*tktypes.BatchTicket{
		{TicketID: tktypes.NewUUID(), TicketHash: tktypes.NewRandB32(), LeafIndex: 0},
	}, nil, nil)
	mdi.On("InsertProof", mock.Anything, mock.Anything).Return(fmt.Errorf("pop"))
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "pop", err)
}

func TestCloseBatchSetReadyFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("LockBatches", mock.Anything).Return(nil)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(pendingBatch(1), nil)
	mdi.On("UpdateBatch", mock.Anything, mock.Anything, tktypes.BatchStatusPending, mock.Anything).Return(nil)
	mdi.On("GetBatchTickets", mock.Anything, mock.Anything, mock.Anything).Return([]*tktypes.BatchTicket{
		{TicketID: tktypes.NewUUID(), TicketHash: tktypes.NewRandB32(), LeafIndex: 0},
	}, nil, nil)
	mdi.On("InsertProof", mock.Anything, mock.Anything).Return(nil)
	mdi.On("UpdateBatch", mock.Anything, mock.Anything, tktypes.BatchStatusBuilding, mock.Anything).Return(fmt.Errorf("pop"))
	_, err := bm.CloseBatch(context.Background(), tktypes.NewUUID())
	assert.Regexp(t, "pop", err)
}

func TestGetBatchByIDBadID(t *testing.T) {
	bm, _ := newTestBatchManager(t)
	_, err := bm.GetBatchByID(context.Background(), "!uuid")
	assert.Regexp(t, "TA10129", err)
}

func TestGetBatchByIDNotFound(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(nil, nil)
	_, err := bm.GetBatchByID(context.Background(), tktypes.NewUUID().String())
	assert.Regexp(t, "TA10152", err)
}

func TestGetBatchByIDFail(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("pop"))
	_, err := bm.GetBatchByID(context.Background(), tktypes.NewUUID().String())
	assert.Regexp(t, "pop", err)
}

func TestGetBatchTicketsNotFound(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("GetBatchByID", mock.Anything, mock.Anything).Return(nil, nil)
	_, _, err := bm.GetBatchTickets(context.Background(), tktypes.NewUUID().String(), nil)
	assert.Regexp(t, "TA10152", err)
}

func TestGetBatches(t *testing.T) {
	bm, mdi := newTestBatchManager(t)
	mdi.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{}, nil, nil)
	batches, _, err := bm.GetBatches(context.Background(), database.BatchQueryFactory.NewFilter(context.Background()).And())
	assert.NoError(t, err)
	assert.Empty(t, batches)
}
