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
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

var (
	batchTicketColumns = []string{
		"batch_id",
		"ticket_id",
		"ticket_hash",
		"leaf_index",
	}
	batchTicketFilterFieldMap = map[string]string{
		"batch":     "batch_id",
		"ticket":    "ticket_id",
		"hash":      "ticket_hash",
		"leafindex": "leaf_index",
	}
)

func (s *SQLCommon) InsertBatchTicket(ctx context.Context, bt *tktypes.BatchTicket) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	if _, err = s.insertTx(ctx, tx,
		sq.Insert("batch_tickets").
			Columns(batchTicketColumns...).
			Values(
				bt.BatchID,
				bt.TicketID,
				bt.TicketHash,
				bt.LeafIndex,
			),
		nil,
	); err != nil {
		return err
	}

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) batchTicketResult(ctx context.Context, row *sql.Rows) (*tktypes.BatchTicket, error) {
	var bt tktypes.BatchTicket
	err := row.Scan(
		&bt.BatchID,
		&bt.TicketID,
		&bt.TicketHash,
		&bt.LeafIndex,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "batch_tickets")
	}
	return &bt, nil
}

func (s *SQLCommon) GetBatchTickets(ctx context.Context, batchID *tktypes.UUID, filter database.Filter) ([]*tktypes.BatchTicket, *database.FilterResult, error) {

	query, fop, fi, err := s.filterSelect(ctx, sq.Select(batchTicketColumns...).From("batch_tickets").Where(sq.Eq{"batch_id": batchID}), filter, batchTicketFilterFieldMap, []string{"leafindex"})
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	leaves := []*tktypes.BatchTicket{}
	for rows.Next() {
		bt, err := s.batchTicketResult(ctx, rows)
		if err != nil {
			return nil, nil, err
		}
		leaves = append(leaves, bt)
	}
	rows.Close()

	res, err := s.queryRes(ctx, nil, "batch_tickets", sq.And{sq.Eq{"batch_id": batchID}, fop}, fi)
	return leaves, res, err
}
