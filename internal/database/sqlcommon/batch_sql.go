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

package sqlcommon

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

var (
	batchColumns = []string{
		"id",
		"status",
		"hash_alg",
		"merkle_root",
		"ticket_count",
		"anchor_id",
		"created",
		"sealed",
	}
	batchFilterFieldMap = map[string]string{
		"hashalg":     "hash_alg",
		"merkleroot":  "merkle_root",
		"ticketcount": "ticket_count",
		"anchor":      "anchor_id",
	}
)

func (s *SQLCommon) InsertBatch(ctx context.Context, batch *tktypes.MerkleBatch) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	seq, err := s.insertTx(ctx, tx,
		sq.Insert("batches").
			Columns(batchColumns...).
			Values(
				batch.ID,
				string(batch.Status),
				batch.HashAlgorithm,
				batch.MerkleRoot,
				batch.TicketCount,
				batch.AnchorID,
				batch.Created,
				batch.Sealed,
			),
		nil,
	)
	if err != nil {
		return err
	}
	batch.Sequence = seq

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) batchResult(ctx context.Context, row *sql.Rows) (*tktypes.MerkleBatch, error) {
	var batch tktypes.MerkleBatch
	err := row.Scan(
		&batch.ID,
		&batch.Status,
		&batch.HashAlgorithm,
		&batch.MerkleRoot,
		&batch.TicketCount,
		&batch.AnchorID,
		&batch.Created,
		&batch.Sealed,
		&batch.Sequence,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "batches")
	}
	return &batch, nil
}

func (s *SQLCommon) GetBatchByID(ctx context.Context, id *tktypes.UUID) (*tktypes.MerkleBatch, error) {
	rows, err := s.query(ctx,
		sq.Select(append(batchColumns, sequenceColumn)...).
			From("batches").
			Where(sq.Eq{"id": id}),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		log.L(ctx).Debugf("Batch '%s' not found", id)
		return nil, nil
	}

	return s.batchResult(ctx, rows)
}

func (s *SQLCommon) GetBatches(ctx context.Context, filter database.Filter) ([]*tktypes.MerkleBatch, *database.FilterResult, error) {

	query, fop, fi, err := s.filterSelect(ctx, sq.Select(append(batchColumns, sequenceColumn)...).From("batches"), filter, batchFilterFieldMap, []string{"-sequence"})
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	batches := []*tktypes.MerkleBatch{}
	for rows.Next() {
		batch, err := s.batchResult(ctx, rows)
		if err != nil {
			return nil, nil, err
		}
		batches = append(batches, batch)
	}
	rows.Close()

	res, err := s.queryRes(ctx, nil, "batches", fop, fi)
	return batches, res, err
}

func (s *SQLCommon) UpdateBatch(ctx context.Context, id *tktypes.UUID, expected tktypes.BatchStatus, update database.Update) (err error) {

	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	query, err := s.buildUpdate(sq.Update("batches"), update, batchFilterFieldMap)
	if err != nil {
		return err
	}
	where := sq.Eq{"id": id}
	if expected != "" {
		where["status"] = string(expected)
	}

	affected, err := s.updateTx(ctx, tx, query.Where(where), nil)
	if err != nil {
		return err
	}
	if affected < 1 {
		return database.UpdateConflict
	}

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) LockBatches(ctx context.Context) error {
	tx := getTXFromContext(ctx)
	if tx == nil {
		log.L(ctx).Errorf("Batch lock requested outside of a transaction")
		return i18n.NewError(ctx, i18n.MsgDBLockFailed)
	}
	return s.lockTableExclusiveTx(ctx, tx, "batches")
}
