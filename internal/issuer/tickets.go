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

	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

func (im *issuer) GetTicketByID(ctx context.Context, id string) (*tktypes.Ticket, error) {
	u, err := tktypes.ParseUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket, err := im.database.GetTicketByID(ctx, u)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, i18n.NewError(ctx, i18n.MsgTicketNotFound, id)
	}
	return ticket, nil
}

func (im *issuer) GetTickets(ctx context.Context, filter database.Filter) ([]*tktypes.Ticket, *database.FilterResult, error) {
	return im.database.GetTickets(ctx, filter)
}

func (im *issuer) GetTicketProof(ctx context.Context, id string) (*tktypes.MerkleProof, error) {
	ticket, err := im.GetTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	proof, err := im.database.GetProofByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	if proof == nil {
		return nil, i18n.NewError(ctx, i18n.MsgProofNotFound, id)
	}
	return proof, nil
}

func (im *issuer) MarkTicketUsed(ctx context.Context, id string, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error) {
	return im.transition(ctx, id, tktypes.TicketStatusUsed, input)
}

func (im *issuer) RevokeTicket(ctx context.Context, id string, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error) {
	return im.transition(ctx, id, tktypes.TicketStatusRevoked, input)
}

// transition moves a valid ticket to a terminal status. The update is guarded on the
// valid status, so a concurrent use and revoke cannot both succeed.
func (im *issuer) transition(ctx context.Context, id string, to tktypes.TicketStatus, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error) {
	ticket, err := im.GetTicketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status != tktypes.TicketStatusValid {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidTicketTransition, id, ticket.Status, to)
	}
	err = im.database.UpdateTicketStatus(ctx, ticket.ID, tktypes.TicketStatusValid, to)
	if err == database.UpdateConflict {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidTicketTransition, id, tktypes.TicketStatusValid, to)
	}
	if err != nil {
		return nil, err
	}
	reason := ""
	if input != nil {
		reason = input.Reason
	}
	log.L(ctx).Infof("Ticket %s moved to %s reason='%s'", ticket.ID, to, reason)
	ticket.Status = to
	return ticket, nil
}

func (im *issuer) ExpireTickets(ctx context.Context) (*tktypes.TickResult, error) {
	count, err := im.database.ExpireTickets(ctx, tktypes.Now())
	if err != nil {
		return nil, err
	}
	if count > 0 {
		log.L(ctx).Infof("Expired %d tickets", count)
	}
	return &tktypes.TickResult{Processed: int(count)}, nil
}
