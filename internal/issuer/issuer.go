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

package issuer

import (
	"context"
	"time"

	"github.com/akamensky/base58"
	"github.com/kaleido-io/ticketanchor/internal/batching"
	"github.com/kaleido-io/ticketanchor/internal/canonical"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/hashing"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/metrics"
	"github.com/kaleido-io/ticketanchor/internal/signer"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// ticketCodeBytes is the prefix of the hash rendered as the human-entry code
const ticketCodeBytes = 8

// canonicalFields are the ticket fields covered by the hash, and so by the signature
var canonicalFields = []string{
	"bookingId", "riderId", "driverId", "routeId", "tripDate", "seatNumber", "pickupId", "dropoffId", "fare",
}

type Issuer interface {
	IssueTicket(ctx context.Context, req *tktypes.TicketRequest) (ticket *tktypes.Ticket, created bool, err error)
	GetTicketByID(ctx context.Context, id string) (*tktypes.Ticket, error)
	GetTickets(ctx context.Context, filter database.Filter) ([]*tktypes.Ticket, *database.FilterResult, error)
	GetTicketProof(ctx context.Context, id string) (*tktypes.MerkleProof, error)
	MarkTicketUsed(ctx context.Context, id string, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error)
	RevokeTicket(ctx context.Context, id string, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error)
	ExpireTickets(ctx context.Context) (*tktypes.TickResult, error)
	PublicKey() tktypes.HexBytes
	HashAlgorithm() string
}

type issuer struct {
	database          database.Plugin
	signer            signer.Signer
	hasher            hashing.Hasher
	batching          batching.Manager
	metrics           metrics.Manager
	validator         *requestValidator
	qrCodec           QRCodec
	validityAfterTrip time.Duration
}

func NewIssuer(ctx context.Context, di database.Plugin, s signer.Signer, bm batching.Manager, mm metrics.Manager) (Issuer, error) {
	if di == nil || s == nil || bm == nil || mm == nil {
		return nil, i18n.NewError(ctx, i18n.MsgInitializationNilDepError)
	}
	hasher, err := hashing.New(ctx, config.GetString(config.HashingTicketAlgorithm))
	if err != nil {
		return nil, err
	}
	qrCodec, err := NewQRCodec(ctx, config.GetString(config.TicketsQREncoding))
	if err != nil {
		return nil, err
	}
	validator, err := newRequestValidator(ctx)
	if err != nil {
		return nil, err
	}
	return &issuer{
		database:          di,
		signer:            s,
		hasher:            hasher,
		batching:          bm,
		metrics:           mm,
		validator:         validator,
		qrCodec:           qrCodec,
		validityAfterTrip: config.GetDuration(config.TicketsValidityAfterTrip),
	}, nil
}

func (im *issuer) PublicKey() tktypes.HexBytes {
	return im.signer.PublicKey()
}

func (im *issuer) HashAlgorithm() string {
	return im.hasher.Name()
}

// TicketCode is the short base58 rendering of the leading hash bytes, for manual entry
func TicketCode(hash *tktypes.Bytes32) string {
	return base58.Encode(hash[0:ticketCodeBytes])
}

func (im *issuer) IssueTicket(ctx context.Context, req *tktypes.TicketRequest) (*tktypes.Ticket, bool, error) {
	if err := im.validator.Validate(ctx, req); err != nil {
		return nil, false, err
	}

	existing, err := im.database.GetTicketByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		log.L(ctx).Infof("Ticket %s already issued for booking %s", existing.ID, req.BookingID)
		im.metrics.TicketDeduplicated()
		return existing, false, nil
	}

	ticket, err := im.buildTicket(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if err := im.database.InsertTicket(ctx, ticket); err != nil {
		// The unique booking constraint means a concurrent request can win the insert
		winner, lookupErr := im.database.GetTicketByBookingID(ctx, req.BookingID)
		if lookupErr == nil && winner != nil {
			log.L(ctx).Infof("Concurrent issuance for booking %s resolved to ticket %s", req.BookingID, winner.ID)
			im.metrics.TicketDeduplicated()
			return winner, false, nil
		}
		return nil, false, err
	}
	im.metrics.TicketIssued()
	log.L(ctx).Infof("Issued ticket %s code=%s hash=%s for booking %s", ticket.ID, ticket.Code, ticket.Hash, ticket.BookingID)

	batchID, leafIndex, err := im.batching.AddTicket(ctx, ticket)
	if err != nil {
		// The ticket remains valid, and the next batch sweep picks it up
		log.L(ctx).Warnf("Ticket %s not yet batched: %s", ticket.ID, err)
	} else {
		ticket.BatchID = batchID
		ticket.LeafIndex = &leafIndex
	}
	return ticket, true, nil
}

// buildTicket runs canonicalize, hash, sign and QR assembly. Nothing is persisted,
// so a failure at any step leaves no trace of the ticket.
func (im *issuer) buildTicket(ctx context.Context, req *tktypes.TicketRequest) (*tktypes.Ticket, error) {
	fare, err := normalizeFare(ctx, req.Fare.String())
	if err != nil {
		return nil, err
	}
	tripDate := req.TripDate.Truncate(time.Second)
	fields := map[string]interface{}{
		"bookingId":  req.BookingID,
		"riderId":    req.RiderID,
		"driverId":   req.DriverID,
		"routeId":    req.RouteID,
		"tripDate":   tripDate,
		"seatNumber": req.SeatNumber,
		"pickupId":   req.PickupID,
		"dropoffId":  req.DropoffID,
		"fare":       fare,
	}
	payload, err := canonical.Canonicalize(ctx, fields, canonicalFields...)
	if err != nil {
		return nil, err
	}

	hash := im.hasher.Digest(payload)
	signature, err := im.signer.Sign(ctx, hash)
	if err != nil {
		return nil, err
	}

	ticket := &tktypes.Ticket{
		ID:               tktypes.NewUUID(),
		BookingID:        req.BookingID,
		RiderID:          req.RiderID,
		DriverID:         req.DriverID,
		RouteID:          req.RouteID,
		TripDate:         tripDate,
		SeatNumber:       req.SeatNumber,
		PickupID:         req.PickupID,
		DropoffID:        req.DropoffID,
		Fare:             fare,
		CanonicalPayload: string(payload),
		HashAlgorithm:    im.hasher.Name(),
		Hash:             hash,
		Code:             TicketCode(hash),
		Signature:        signature,
		PublicKey:        im.signer.PublicKey(),
		Status:           tktypes.TicketStatusPending,
		Created:          tktypes.Now(),
		ExpiresAt:        tktypes.FromTime(tripDate.Time().Add(im.validityAfterTrip)),
	}

	ticket.QRPayload, err = im.qrCodec.Encode(ctx, &tktypes.QRPayload{
		TicketID:   ticket.ID,
		BookingID:  ticket.BookingID,
		Hash:       ticket.Hash,
		Signature:  ticket.Signature,
		PublicKey:  ticket.PublicKey,
		TripDate:   ticket.TripDate,
		SeatNumber: ticket.SeatNumber,
	})
	if err != nil {
		return nil, err
	}

	ticket.Status = tktypes.TicketStatusValid
	return ticket, nil
}
