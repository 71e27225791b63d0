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
	ticketColumns = []string{
		"id",
		"booking_id",
		"rider_id",
		"driver_id",
		"route_id",
		"trip_date",
		"seat_number",
		"pickup_id",
		"dropoff_id",
		"fare",
		"canonical_payload",
		"hash_alg",
		"hash",
		"code",
		"signature",
		"public_key",
		"qr_payload",
		"status",
		"created",
		"expires_at",
		"batch_id",
		"leaf_index",
	}
	ticketFilterFieldMap = map[string]string{
		"bookingid":  "booking_id",
		"riderid":    "rider_id",
		"driverid":   "driver_id",
		"routeid":    "route_id",
		"tripdate":   "trip_date",
		"seatnumber": "seat_number",
		"expiresat":  "expires_at",
		"batch":      "batch_id",
		"leafindex":  "leaf_index",
	}
)

func (s *SQLCommon) InsertTicket(ctx context.Context, ticket *tktypes.Ticket) (err error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	seq, err := s.insertTx(ctx, tx,
		sq.Insert("tickets").
			Columns(ticketColumns...).
			Values(
				ticket.ID,
				ticket.BookingID,
				ticket.RiderID,
				ticket.DriverID,
				ticket.RouteID,
				ticket.TripDate,
				ticket.SeatNumber,
				ticket.PickupID,
				ticket.DropoffID,
				ticket.Fare,
				ticket.CanonicalPayload,
				ticket.HashAlgorithm,
				ticket.Hash,
				ticket.Code,
				ticket.Signature,
				ticket.PublicKey,
				ticket.QRPayload,
				string(ticket.Status),
				ticket.Created,
				ticket.ExpiresAt,
				ticket.BatchID,
				ticket.LeafIndex,
			),
		nil,
	)
	if err != nil {
		return err
	}
	ticket.Sequence = seq

	return s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) ticketResult(ctx context.Context, row *sql.Rows) (*tktypes.Ticket, error) {
	var ticket tktypes.Ticket
	var leafIndex sql.NullInt64
	err := row.Scan(
		&ticket.ID,
		&ticket.BookingID,
		&ticket.RiderID,
		&ticket.DriverID,
		&ticket.RouteID,
		&ticket.TripDate,
		&ticket.SeatNumber,
		&ticket.PickupID,
		&ticket.DropoffID,
		&ticket.Fare,
		&ticket.CanonicalPayload,
		&ticket.HashAlgorithm,
		&ticket.Hash,
		&ticket.Code,
		&ticket.Signature,
		&ticket.PublicKey,
		&ticket.QRPayload,
		&ticket.Status,
		&ticket.Created,
		&ticket.ExpiresAt,
		&ticket.BatchID,
		&leafIndex,
		&ticket.Sequence,
	)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, "tickets")
	}
	if leafIndex.Valid {
		ticket.LeafIndex = &leafIndex.Int64
	}
	return &ticket, nil
}

func (s *SQLCommon) getTicketEq(ctx context.Context, eq sq.Eq, textID string) (*tktypes.Ticket, error) {
	rows, err := s.query(ctx,
		sq.Select(append(ticketColumns, sequenceColumn)...).
			From("tickets").
			Where(eq),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		log.L(ctx).Debugf("Ticket '%s' not found", textID)
		return nil, nil
	}

	return s.ticketResult(ctx, rows)
}

func (s *SQLCommon) GetTicketByID(ctx context.Context, id *tktypes.UUID) (*tktypes.Ticket, error) {
	return s.getTicketEq(ctx, sq.Eq{"id": id}, id.String())
}

func (s *SQLCommon) GetTicketByBookingID(ctx context.Context, bookingID string) (*tktypes.Ticket, error) {
	return s.getTicketEq(ctx, sq.Eq{"booking_id": bookingID}, bookingID)
}

func (s *SQLCommon) GetTicketByHash(ctx context.Context, hash *tktypes.Bytes32) (*tktypes.Ticket, error) {
	return s.getTicketEq(ctx, sq.Eq{"hash": hash}, hash.String())
}

func (s *SQLCommon) GetTickets(ctx context.Context, filter database.Filter) ([]*tktypes.Ticket, *database.FilterResult, error) {

	query, fop, fi, err := s.filterSelect(ctx, sq.Select(append(ticketColumns, sequenceColumn)...).From("tickets"), filter, ticketFilterFieldMap, []string{"-sequence"})
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	tickets := []*tktypes.Ticket{}
	for rows.Next() {
		ticket, err := s.ticketResult(ctx, rows)
		if err != nil {
			return nil, nil, err
		}
		tickets = append(tickets, ticket)
	}
	rows.Close()

	res, err := s.queryRes(ctx, nil, "tickets", fop, fi)
	return tickets, res, err
}

func (s *SQLCommon) updateTicketWhere(ctx context.Context, q sq.UpdateBuilder) (int64, error) {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return -1, err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)

	affected, err := s.updateTx(ctx, tx, q, nil)
	if err != nil {
		return -1, err
	}
	return affected, s.commitTx(ctx, tx, autoCommit)
}

func (s *SQLCommon) UpdateTicketStatus(ctx context.Context, id *tktypes.UUID, from, to tktypes.TicketStatus) error {
	affected, err := s.updateTicketWhere(ctx,
		sq.Update("tickets").
			Set("status", string(to)).
			Where(sq.Eq{"id": id, "status": string(from)}),
	)
	if err == nil && affected < 1 {
		err = database.UpdateConflict
	}
	return err
}

func (s *SQLCommon) SetTicketBatch(ctx context.Context, id *tktypes.UUID, batchID *tktypes.UUID, leafIndex int64) error {
	affected, err := s.updateTicketWhere(ctx,
		sq.Update("tickets").
			Set("batch_id", batchID).
			Set("leaf_index", leafIndex).
			Where(sq.Eq{"id": id, "batch_id": nil}),
	)
	if err == nil && affected < 1 {
		err = database.UpdateConflict
	}
	return err
}

func (s *SQLCommon) ExpireTickets(ctx context.Context, before *tktypes.Timestamp) (int64, error) {
	return s.updateTicketWhere(ctx,
		sq.Update("tickets").
			Set("status", string(tktypes.TicketStatusExpired)).
			Where(sq.And{
				sq.Eq{"status": string(tktypes.TicketStatusValid)},
				sq.Lt{"expires_at": before},
			}),
	)
}
