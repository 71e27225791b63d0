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
	"sync"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/hashing"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/metrics"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

type Manager interface {
	// AddTicket appends the ticket to the open batch, returning its batch and leaf index
	AddTicket(ctx context.Context, ticket *tktypes.Ticket) (*tktypes.UUID, int64, error)
	// CloseBatch seals a pending batch, computing its root and proofs. Any other status is a no-op.
	CloseBatch(ctx context.Context, id *tktypes.UUID) (*tktypes.MerkleBatch, error)
	// ProcessReadyBatches sweeps unbatched tickets, then seals every batch meeting the readiness rule
	ProcessReadyBatches(ctx context.Context) (*tktypes.TickResult, error)

	GetBatches(ctx context.Context, filter database.Filter) ([]*tktypes.MerkleBatch, *database.FilterResult, error)
	GetBatchByID(ctx context.Context, id string) (*tktypes.MerkleBatch, error)
	GetBatchTickets(ctx context.Context, id string, filter database.Filter) ([]*tktypes.BatchTicket, *database.FilterResult, error)
	HashAlgorithm() string
	Config() *tktypes.BatchConfig
}

type batchManager struct {
	database   database.Plugin
	metrics    metrics.Manager
	hasher     hashing.Hasher
	minSize    int64
	maxAge     time.Duration
	sweepLimit uint64
	// appendMux serializes appends and seals within this process. Across processes
	// the same ordering comes from the batches table lock, where the database has one.
	appendMux sync.Mutex
}

func NewBatchManager(ctx context.Context, di database.Plugin, mm metrics.Manager) (Manager, error) {
	if di == nil || mm == nil {
		return nil, i18n.NewError(ctx, i18n.MsgInitializationNilDepError)
	}
	hasher, err := hashing.New(ctx, config.GetString(config.HashingBatchAlgorithm))
	if err != nil {
		return nil, err
	}
	minSize := config.GetInt64(config.BatchMinSize)
	if minSize < 1 {
		minSize = 1
	}
	return &batchManager{
		database:   di,
		metrics:    mm,
		hasher:     hasher,
		minSize:    minSize,
		maxAge:     config.GetDuration(config.BatchMaxAge),
		sweepLimit: uint64(config.GetInt64(config.BatchSweepLimit)),
	}, nil
}

func (bm *batchManager) HashAlgorithm() string {
	return bm.hasher.Name()
}

func (bm *batchManager) Config() *tktypes.BatchConfig {
	return &tktypes.BatchConfig{
		MinSize: bm.minSize,
		MaxAge:  bm.maxAge.String(),
	}
}

// IsReady is the sealing rule: enough tickets, or a non-empty batch that has waited long enough
func IsReady(batch *tktypes.MerkleBatch, minSize int64, maxAge time.Duration, now time.Time) bool {
	if batch.TicketCount >= minSize {
		return true
	}
	return batch.TicketCount > 0 && batch.Created != nil && now.Sub(batch.Created.Time()) >= maxAge
}

func (bm *batchManager) AddTicket(ctx context.Context, ticket *tktypes.Ticket) (batchID *tktypes.UUID, leafIndex int64, err error) {
	bm.appendMux.Lock()
	defer bm.appendMux.Unlock()

	err = bm.database.RunAsGroup(ctx, func(ctx context.Context) error {
		batchID, leafIndex, err = bm.appendLocked(ctx, ticket)
		return err
	})
	if err != nil {
		return nil, -1, err
	}
	log.L(ctx).Debugf("Ticket %s appended to batch %s at leaf %d", ticket.ID, batchID, leafIndex)
	return batchID, leafIndex, nil
}

// appendLocked must run in a transaction holding the batch lock
func (bm *batchManager) appendLocked(ctx context.Context, ticket *tktypes.Ticket) (*tktypes.UUID, int64, error) {
	if err := bm.database.LockBatches(ctx); err != nil {
		return nil, -1, err
	}
	batch, err := bm.openBatch(ctx)
	if err != nil {
		return nil, -1, err
	}

	leafIndex := batch.TicketCount
	err = bm.database.SetTicketBatch(ctx, ticket.ID, batch.ID, leafIndex)
	if err == database.UpdateConflict {
		return nil, -1, i18n.NewError(ctx, i18n.MsgTicketAlreadyBatched, ticket.ID, bm.currentBatch(ctx, ticket.ID))
	}
	if err != nil {
		return nil, -1, err
	}

	err = bm.database.InsertBatchTicket(ctx, &tktypes.BatchTicket{
		BatchID:    batch.ID,
		TicketID:   ticket.ID,
		TicketHash: ticket.Hash,
		LeafIndex:  leafIndex,
	})
	if err != nil {
		return nil, -1, err
	}

	update := database.BatchQueryFactory.NewUpdate(ctx).Set("ticketcount", leafIndex+1)
	if err := bm.database.UpdateBatch(ctx, batch.ID, tktypes.BatchStatusPending, update); err != nil {
		return nil, -1, err
	}
	return batch.ID, leafIndex, nil
}

func (bm *batchManager) currentBatch(ctx context.Context, ticketID *tktypes.UUID) string {
	ticket, err := bm.database.GetTicketByID(ctx, ticketID)
	if err != nil || ticket == nil || ticket.BatchID == nil {
		return "unknown"
	}
	return ticket.BatchID.String()
}

// openBatch returns the newest pending batch, or creates one. At most one batch is open,
// as batches are only created under the batch lock.
func (bm *batchManager) openBatch(ctx context.Context) (*tktypes.MerkleBatch, error) {
	fb := database.BatchQueryFactory.NewFilter(ctx)
	batches, _, err := bm.database.GetBatches(ctx, fb.And(
		fb.Eq("status", tktypes.BatchStatusPending),
	).Sort("-sequence").Limit(1))
	if err != nil {
		return nil, err
	}
	if len(batches) > 0 {
		return batches[0], nil
	}

	batch := &tktypes.MerkleBatch{
		ID:            tktypes.NewUUID(),
		Status:        tktypes.BatchStatusPending,
		HashAlgorithm: bm.hasher.Name(),
		Created:       tktypes.Now(),
	}
	if err := bm.database.InsertBatch(ctx, batch); err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Opened batch %s hashAlgorithm=%s", batch.ID, batch.HashAlgorithm)
	return batch, nil
}

func (bm *batchManager) ProcessReadyBatches(ctx context.Context) (*tktypes.TickResult, error) {
	result := &tktypes.TickResult{}

	if err := bm.sweepUnbatched(ctx); err != nil {
		return nil, err
	}

	fb := database.BatchQueryFactory.NewFilter(ctx)
	batches, _, err := bm.database.GetBatches(ctx, fb.And(
		fb.Eq("status", tktypes.BatchStatusPending),
	).Sort("sequence"))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, batch := range batches {
		if !IsReady(batch, bm.minSize, bm.maxAge, now) {
			result.Skipped++
			continue
		}
		if _, err := bm.CloseBatch(ctx, batch.ID); err != nil {
			log.L(ctx).Errorf("Failed to seal batch %s: %s", batch.ID, err)
			result.Failed++
			continue
		}
		result.Processed++
	}
	return result, nil
}

// sweepUnbatched appends valid tickets that missed their batch, for example because the
// append after issuance failed
func (bm *batchManager) sweepUnbatched(ctx context.Context) error {
	fb := database.TicketQueryFactory.NewFilter(ctx)
	tickets, _, err := bm.database.GetTickets(ctx, fb.And(
		fb.Eq("status", tktypes.TicketStatusValid),
		fb.IsNull("batch"),
	).Sort("sequence").Limit(bm.sweepLimit))
	if err != nil {
		return err
	}
	for _, ticket := range tickets {
		if _, _, err := bm.AddTicket(ctx, ticket); err != nil {
			log.L(ctx).Warnf("Unable to sweep ticket %s into a batch: %s", ticket.ID, err)
			continue
		}
	}
	if len(tickets) > 0 {
		log.L(ctx).Infof("Swept %d unbatched tickets", len(tickets))
	}
	return nil
}

func (bm *batchManager) GetBatches(ctx context.Context, filter database.Filter) ([]*tktypes.MerkleBatch, *database.FilterResult, error) {
	return bm.database.GetBatches(ctx, filter)
}

func (bm *batchManager) GetBatchByID(ctx context.Context, id string) (*tktypes.MerkleBatch, error) {
	u, err := tktypes.ParseUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	batch, err := bm.database.GetBatchByID(ctx, u)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, i18n.NewError(ctx, i18n.MsgBatchNotFound, id)
	}
	return batch, nil
}

func (bm *batchManager) GetBatchTickets(ctx context.Context, id string, filter database.Filter) ([]*tktypes.BatchTicket, *database.FilterResult, error) {
	batch, err := bm.GetBatchByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return bm.database.GetBatchTickets(ctx, batch.ID, filter)
}
