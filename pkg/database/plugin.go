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

package database

import (
	"context"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

var (
	// UpdateConflict is returned by status-guarded updates that matched no row, because
	// another worker moved the record first
	UpdateConflict = i18n.NewError(context.Background(), i18n.MsgDBUpdateConflict)
)

// Plugin is the interface implemented by each database plugin
type Plugin interface {
	PersistenceInterface

	// Name is the name used in the database.type configuration
	Name() string

	// InitPrefix registers the configuration keys of the plugin, with defaults
	InitPrefix(prefix config.Prefix)

	// Init opens the database and applies migrations if configured to
	Init(ctx context.Context, prefix config.Prefix) error

	// Capabilities returns capabilities - not called until after Init
	Capabilities() *Capabilities

	// Close releases the connection pool
	Close()
}

// PersistenceInterface is split from Plugin so the SQL layer can be shared by providers
type PersistenceInterface interface {
	// RunAsGroup runs fn inside one transaction. Calls made with the supplied context join it,
	// and nested RunAsGroup calls join the outer transaction.
	RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error

	iTicketCollection
	iBatchCollection
	iBatchTicketCollection
	iProofCollection
	iAnchorCollection
}

type iTicketCollection interface {
	// InsertTicket - insert a new ticket, failing on a duplicate id, booking or hash
	InsertTicket(ctx context.Context, ticket *tktypes.Ticket) error

	// GetTicketByID - returns nil when not found
	GetTicketByID(ctx context.Context, id *tktypes.UUID) (*tktypes.Ticket, error)

	// GetTicketByBookingID - returns nil when not found
	GetTicketByBookingID(ctx context.Context, bookingID string) (*tktypes.Ticket, error)

	// GetTicketByHash - returns nil when not found
	GetTicketByHash(ctx context.Context, hash *tktypes.Bytes32) (*tktypes.Ticket, error)

	// GetTickets - list tickets, newest first by default
	GetTickets(ctx context.Context, filter Filter) ([]*tktypes.Ticket, *FilterResult, error)

	// UpdateTicketStatus - moves a ticket from one status to another, returning UpdateConflict
	// when the ticket is not in the from status
	UpdateTicketStatus(ctx context.Context, id *tktypes.UUID, from, to tktypes.TicketStatus) error

	// SetTicketBatch - records batch membership, returning UpdateConflict if the ticket is already batched
	SetTicketBatch(ctx context.Context, id *tktypes.UUID, batchID *tktypes.UUID, leafIndex int64) error

	// ExpireTickets - moves every valid ticket with expiresAt before the supplied time to expired
	ExpireTickets(ctx context.Context, before *tktypes.Timestamp) (int64, error)
}

type iBatchCollection interface {
	// InsertBatch - insert a new batch
	InsertBatch(ctx context.Context, batch *tktypes.MerkleBatch) error

	// GetBatchByID - returns nil when not found
	GetBatchByID(ctx context.Context, id *tktypes.UUID) (*tktypes.MerkleBatch, error)

	// GetBatches - list batches, newest first by default
	GetBatches(ctx context.Context, filter Filter) ([]*tktypes.MerkleBatch, *FilterResult, error)

	// UpdateBatch - applies update to a batch that is currently in the expected status.
	// An empty expected status updates unconditionally. Returns UpdateConflict when no row matched.
	UpdateBatch(ctx context.Context, id *tktypes.UUID, expected tktypes.BatchStatus, update Update) error

	// LockBatches - takes the cross-process exclusive lock used to serialize appends and seals.
	// Must be called inside RunAsGroup, and is a no-op on providers without table locks.
	LockBatches(ctx context.Context) error
}

type iBatchTicketCollection interface {
	// InsertBatchTicket - append a leaf reference, failing if the leaf index or ticket is already used
	InsertBatchTicket(ctx context.Context, bt *tktypes.BatchTicket) error

	// GetBatchTickets - the leaves of a batch in leaf index order
	GetBatchTickets(ctx context.Context, batchID *tktypes.UUID, filter Filter) ([]*tktypes.BatchTicket, *FilterResult, error)
}

type iProofCollection interface {
	// InsertProof - store the inclusion proof of one ticket
	InsertProof(ctx context.Context, proof *tktypes.MerkleProof) error

	// GetProof - returns nil when not found
	GetProof(ctx context.Context, batchID, ticketID *tktypes.UUID) (*tktypes.MerkleProof, error)

	// GetProofByTicket - a ticket belongs to at most one batch, so this returns nil or a single proof
	GetProofByTicket(ctx context.Context, ticketID *tktypes.UUID) (*tktypes.MerkleProof, error)
}

type iAnchorCollection interface {
	// InsertAnchor - insert a new anchor, failing if the batch already has one
	InsertAnchor(ctx context.Context, anchor *tktypes.BlockchainAnchor) error

	// GetAnchorByID - returns nil when not found
	GetAnchorByID(ctx context.Context, id *tktypes.UUID) (*tktypes.BlockchainAnchor, error)

	// GetAnchorByBatchID - returns nil when not found
	GetAnchorByBatchID(ctx context.Context, batchID *tktypes.UUID) (*tktypes.BlockchainAnchor, error)

	// GetAnchors - list anchors, newest first by default
	GetAnchors(ctx context.Context, filter Filter) ([]*tktypes.BlockchainAnchor, *FilterResult, error)

	// UpdateAnchor - applies update to an anchor that is currently in the expected status.
	// An empty expected status updates unconditionally. Returns UpdateConflict when no row matched.
	UpdateAnchor(ctx context.Context, id *tktypes.UUID, expected tktypes.AnchorStatus, update Update) error

	// ClaimAnchor - takes a lease on a pending anchor whose next attempt is due, by moving its next attempt
	// to leaseUntil. Returns UpdateConflict if the anchor is not pending, or another worker holds the lease.
	ClaimAnchor(ctx context.Context, id *tktypes.UUID, due, leaseUntil *tktypes.Timestamp) error
}

// Capabilities defines the capabilities a plugin can report as implementing or not
type Capabilities struct {
	ExclusiveLocks bool
}
