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

package orchestrator

import (
	"context"

	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

func (or *orchestrator) IssueTicket(ctx context.Context, req *tktypes.TicketRequest) (*tktypes.Ticket, bool, error) {
	return or.issuer.IssueTicket(ctx, req)
}

func (or *orchestrator) GetTicketByID(ctx context.Context, id string) (*tktypes.Ticket, error) {
	return or.issuer.GetTicketByID(ctx, id)
}

func (or *orchestrator) GetTickets(ctx context.Context, filter database.Filter) ([]*tktypes.Ticket, *database.FilterResult, error) {
	return or.issuer.GetTickets(ctx, filter)
}

func (or *orchestrator) GetTicketProof(ctx context.Context, id string) (*tktypes.MerkleProof, error) {
	return or.issuer.GetTicketProof(ctx, id)
}

func (or *orchestrator) MarkTicketUsed(ctx context.Context, id string, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error) {
	return or.issuer.MarkTicketUsed(ctx, id, input)
}

func (or *orchestrator) RevokeTicket(ctx context.Context, id string, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error) {
	return or.issuer.RevokeTicket(ctx, id, input)
}

func (or *orchestrator) VerifyTicket(ctx context.Context, req *tktypes.VerifyRequest) (*tktypes.VerificationResult, error) {
	return or.verifier.VerifyTicket(ctx, req)
}

func (or *orchestrator) GetBatches(ctx context.Context, filter database.Filter) ([]*tktypes.MerkleBatch, *database.FilterResult, error) {
	return or.batching.GetBatches(ctx, filter)
}

func (or *orchestrator) GetBatchByID(ctx context.Context, id string) (*tktypes.MerkleBatch, error) {
	return or.batching.GetBatchByID(ctx, id)
}

func (or *orchestrator) GetBatchTickets(ctx context.Context, id string, filter database.Filter) ([]*tktypes.BatchTicket, *database.FilterResult, error) {
	return or.batching.GetBatchTickets(ctx, id, filter)
}

func (or *orchestrator) GetAnchors(ctx context.Context, filter database.Filter) ([]*tktypes.BlockchainAnchor, *database.FilterResult, error) {
	return or.anchoring.GetAnchors(ctx, filter)
}

func (or *orchestrator) GetAnchorByID(ctx context.Context, id string) (*tktypes.BlockchainAnchor, error) {
	return or.anchoring.GetAnchorByID(ctx, id)
}

func (or *orchestrator) ProcessReadyBatches(ctx context.Context) (*tktypes.TickResult, error) {
	return or.batching.ProcessReadyBatches(ctx)
}

func (or *orchestrator) AdvancePendingAnchors(ctx context.Context) (*tktypes.TickResult, error) {
	return or.anchoring.AdvancePendingAnchors(ctx)
}

func (or *orchestrator) ExpireTickets(ctx context.Context) (*tktypes.TickResult, error) {
	return or.issuer.ExpireTickets(ctx)
}
