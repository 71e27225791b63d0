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

	"github.com/kaleido-io/ticketanchor/internal/hashing"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/merkle"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

func (bm *batchManager) CloseBatch(ctx context.Context, id *tktypes.UUID) (*tktypes.MerkleBatch, error) {
	bm.appendMux.Lock()
	defer bm.appendMux.Unlock()

	var batch *tktypes.MerkleBatch
	sealed := false
	err := bm.database.RunAsGroup(ctx, func(ctx context.Context) (err error) {
		batch, sealed, err = bm.sealLocked(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if sealed {
		bm.metrics.BatchSealed(batch.TicketCount)
		log.L(ctx).Infof("Sealed batch %s tickets=%d root=%s", batch.ID, batch.TicketCount, batch.MerkleRoot)
	}
	return batch, nil
}

// sealLocked re-reads the batch under the lock, so two concurrent closes of the same
// batch result in one seal and one no-op
func (bm *batchManager) sealLocked(ctx context.Context, id *tktypes.UUID) (*tktypes.MerkleBatch, bool, error) {
	if err := bm.database.LockBatches(ctx); err != nil {
		return nil, false, err
	}
	batch, err := bm.database.GetBatchByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if batch == nil {
		return nil, false, i18n.NewError(ctx, i18n.MsgBatchNotFound, id)
	}
	if batch.Status != tktypes.BatchStatusPending {
		log.L(ctx).Debugf("Batch %s already %s", batch.ID, batch.Status)
		return batch, false, nil
	}
	if batch.TicketCount == 0 {
		return nil, false, i18n.NewError(ctx, i18n.MsgBatchEmpty, id)
	}

	update := database.BatchQueryFactory.NewUpdate(ctx).Set("status", tktypes.BatchStatusBuilding)
	if err := bm.database.UpdateBatch(ctx, id, tktypes.BatchStatusPending, update); err != nil {
		return nil, false, err
	}

	leaves, _, err := bm.database.GetBatchTickets(ctx, id, database.BatchTicketQueryFactory.NewFilter(ctx).And().Sort("leafindex"))
	if err != nil {
		return nil, false, err
	}
	if int64(len(leaves)) != batch.TicketCount {
		return nil, false, i18n.NewError(ctx, i18n.MsgTreeLeafCountMismatch, id, batch.TicketCount, len(leaves))
	}
	hashes := make([]*tktypes.Bytes32, len(leaves))
	for i, leaf := range leaves {
		if leaf.LeafIndex != int64(i) {
			return nil, false, i18n.NewError(ctx, i18n.MsgInvalidLeafIndex, leaf.LeafIndex, len(leaves))
		}
		hashes[i] = leaf.TicketHash
	}

	// A batch keeps the algorithm it was opened with, even if the configuration changed since
	hasher, err := hashing.New(ctx, batch.HashAlgorithm)
	if err != nil {
		return nil, false, err
	}
	tree, err := merkle.Build(ctx, hasher, hashes)
	if err != nil {
		return nil, false, err
	}

	for i, leaf := range leaves {
		path, err := tree.Proof(ctx, i)
		if err != nil {
			return nil, false, err
		}
		err = bm.database.InsertProof(ctx, &tktypes.MerkleProof{
			BatchID:       batch.ID,
			TicketID:      leaf.TicketID,
			TicketHash:    leaf.TicketHash,
			LeafIndex:     leaf.LeafIndex,
			MerkleRoot:    tree.Root(),
			HashAlgorithm: hasher.Name(),
			Path:          path,
		})
		if err != nil {
			return nil, false, err
		}
	}

	sealedAt := tktypes.Now()
	update = database.BatchQueryFactory.NewUpdate(ctx).
		Set("status", tktypes.BatchStatusReady).
		Set("merkleroot", tree.Root()).
		Set("sealed", sealedAt)
	if err := bm.database.UpdateBatch(ctx, id, tktypes.BatchStatusBuilding, update); err != nil {
		return nil, false, err
	}

	batch.Status = tktypes.BatchStatusReady
	batch.MerkleRoot = tree.Root()
	batch.Sealed = sealedAt
	return batch, true, nil
}
