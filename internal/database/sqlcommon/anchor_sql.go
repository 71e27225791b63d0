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
	anchorColumns = []string{
		"id",
		"batch_id",
		"merkle_root",
		"ledger",
		"tx_hash",
		"status",
		"confirmations",
		"retries",
		"error",
		"created",
		"submitted",
		"confirmed",
		"next_attempt",
	}
	anchorFilterFieldMap = map[string]string{
		"batch":       "batch_id",
		"merkleroot":  "merkle_root",
		"txhash":      "tx_hash",
		"nextattempt": "next_attempt",
	}
)

func (s *SQLCommon) InsertAnchor(ctx context.Context, anchor *tktypes.BlockchainAnchor) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	seq, err := s.insertTx(ctx, tx,
		sq.Insert("anchors").
			Columns(anchorColumns...).
			Values(
				anchor.ID,
				anchor.BatchID,
				anchor.MerkleRoot,
				anchor.Ledger,
				anchor.TransactionHash,
				string(anchor.Status),
				anchor.Confirmations,
				anchor.Retries,
				anchor.Error,
				anchor.Created,
				anchor.Submitted,
				anchor.Confirmed,
				anchor.NextAttempt,
			),
		nil,
	)
	if err != nil {
		return err
	}
	anchor.Sequence = seq

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) anchorResult(ctx context.Context, row *sql.Rows) (*tktypes.BlockchainAnchor, error) {
	var anchor tktypes.BlockchainAnchor
	err := row.Scan(
		&anchor.ID,
		&anchor.BatchID,
		&anchor.MerkleRoot,
		&anchor.Ledger,
		&anchor.TransactionHash,
		&anchor.Status,
		&anchor.Confirmations,
		&anchor.Retries,
		&anchor.Error,
		&anchor.Created,
		&anchor.Submitted,
		&anchor.Confirmed,
		&anchor.NextAttempt,
		&anchor.Sequence,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "anchors")
	}
	return &anchor, nil
}

func (s *SQLCommon) getAnchorEq(ctx context.Context, eq sq.Eq, textID string) (*tktypes.BlockchainAnchor, error) {
	rows, err := s.query(ctx,
		sq.Select(append(anchorColumns, sequenceColumn)...).
			From("anchors").
			Where(eq),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		log.L(ctx).Debugf("Anchor '%s' not found", textID)
		return nil, nil
	}

	return s.anchorResult(ctx, rows)
}

func (s *SQLCommon) GetAnchorByID(ctx context.Context, id *tktypes.UUID) (*tktypes.BlockchainAnchor, error) {
	return s.getAnchorEq(ctx, sq.Eq{"id": id}, id.String())
}

func (s *SQLCommon) GetAnchorByBatchID(ctx context.Context, batchID *tktypes.UUID) (*tktypes.BlockchainAnchor, error) {
	return s.getAnchorEq(ctx, sq.Eq{"batch_id": batchID}, "batch:"+batchID.String())
}

func (s *SQLCommon) GetAnchors(ctx context.Context, filter database.Filter) ([]*tktypes.BlockchainAnchor, *database.FilterResult, error) {

	query, fop, fi, err := s.filterSelect(ctx, sq.Select(append(anchorColumns, sequenceColumn)...).From("anchors"), filter, anchorFilterFieldMap, []string{"-sequence"})
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	anchors := []*tktypes.BlockchainAnchor{}
	for rows.Next() {
		anchor, err := s.anchorResult(ctx, rows)
		if err != nil {
			return nil, nil, err
		}
		anchors = append(anchors, anchor)
	}
	rows.Close()

	res, err := s.queryRes(ctx, nil, "anchors", fop, fi)
	return anchors, res, err
}

func (s *SQLCommon) UpdateAnchor(ctx context.Context, id *tktypes.UUID, expected tktypes.AnchorStatus, update database.Update) (err error) {

	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	query, err := s.buildUpdate(sq.Update("anchors"), update, anchorFilterFieldMap)
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

func (s *SQLCommon) ClaimAnchor(ctx context.Context, id *tktypes.UUID, due, leaseUntil *tktypes.Timestamp) (err error) {

	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	query := sq.Update("anchors").
		Set("next_attempt", leaseUntil).
		Where(sq.Eq{"id": id, "status": string(tktypes.AnchorStatusPending)}).
		Where(sq.Or{
			sq.Eq{"next_attempt": nil},
			sq.LtOrEq{"next_attempt": due},
		})
	affected, err := s.updateTx(ctx, tx, query, nil)
	if err != nil {
		return err
	}
	if affected < 1 {
		log.L(ctx).Debugf("Anchor %s already claimed", id)
		return database.UpdateConflict
	}

	return s.commitTx(ctx, tx, autoCommit)
}
