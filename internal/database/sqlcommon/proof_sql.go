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
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

var (
	proofColumns = []string{
		"batch_id",
		"ticket_id",
		"ticket_hash",
		"leaf_index",
		"merkle_root",
		"hash_alg",
		"proof_path",
	}
)

func (s *SQLCommon) InsertProof(ctx context.Context, proof *tktypes.MerkleProof) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	if _, err = s.insertTx(ctx, tx,
		sq.Insert("merkle_proofs").
			Columns(proofColumns...).
			Values(
				proof.BatchID,
				proof.TicketID,
				proof.TicketHash,
				proof.LeafIndex,
				proof.MerkleRoot,
				proof.HashAlgorithm,
				proof.Path,
			),
		nil,
	); err != nil {
		return err
	}

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) proofResult(ctx context.Context, row *sql.Rows) (*tktypes.MerkleProof, error) {
	var proof tktypes.MerkleProof
	err := row.Scan(
		&proof.BatchID,
		&proof.TicketID,
		&proof.TicketHash,
		&proof.LeafIndex,
		&proof.MerkleRoot,
		&proof.HashAlgorithm,
		&proof.Path,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "merkle_proofs")
	}
	return &proof, nil
}

func (s *SQLCommon) getProofEq(ctx context.Context, eq sq.Eq, ticketID *tktypes.UUID) (*tktypes.MerkleProof, error) {
	rows, err := s.query(ctx,
		sq.Select(proofColumns...).
			From("merkle_proofs").
			Where(eq),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		log.L(ctx).Debugf("Proof for ticket '%s' not found", ticketID)
		return nil, nil
	}

	return s.proofResult(ctx, rows)
}

func (s *SQLCommon) GetProof(ctx context.Context, batchID, ticketID *tktypes.UUID) (*tktypes.MerkleProof, error) {
	return s.getProofEq(ctx, sq.Eq{"batch_id": batchID, "ticket_id": ticketID}, ticketID)
}

func (s *SQLCommon) GetProofByTicket(ctx context.Context, ticketID *tktypes.UUID) (*tktypes.MerkleProof, error) {
	return s.getProofEq(ctx, sq.Eq{"ticket_id": ticketID}, ticketID)
}
