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

package anchoring

import (
	"context"
	"sync"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/metrics"
	"github.com/kaleido-io/ticketanchor/internal/retry"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/ledger"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// Submitter moves sealed batches onto the ledger, and tracks each submission to a final state
type Submitter interface {
	// AdvancePendingAnchors creates anchors for ready batches, submits due anchors, and polls submitted ones
	AdvancePendingAnchors(ctx context.Context) (*tktypes.TickResult, error)
	// RootConfirmed reports the local anchor for a root, and whether the root is both confirmed locally and present on the ledger
	RootConfirmed(ctx context.Context, root *tktypes.Bytes32) (*tktypes.BlockchainAnchor, bool, error)
	// LedgerStatus is a point-in-time view of the ledger, for the status route
	LedgerStatus(ctx context.Context) *tktypes.LedgerStatus

	GetAnchors(ctx context.Context, filter database.Filter) ([]*tktypes.BlockchainAnchor, *database.FilterResult, error)
	GetAnchorByID(ctx context.Context, id string) (*tktypes.BlockchainAnchor, error)
}

type anchorSubmitter struct {
	database            database.Plugin
	ledger              ledger.Plugin
	metrics             metrics.Manager
	retry               *retry.Retry
	confirmations       int64
	maxAttempts         int
	confirmationTimeout time.Duration
	submitLease         time.Duration
	requestTimeout      time.Duration
	workers             int
	inflightMux         sync.Mutex
	inflight            map[tktypes.UUID]bool
}

func NewAnchorSubmitter(ctx context.Context, di database.Plugin, li ledger.Plugin, mm metrics.Manager) (Submitter, error) {
	if di == nil || li == nil || mm == nil {
		return nil, i18n.NewError(ctx, i18n.MsgInitializationNilDepError)
	}
	as := &anchorSubmitter{
		database:            di,
		ledger:              li,
		metrics:             mm,
		retry:               retry.NewFromConfig(config.AnchoringRetryInitialDelay, config.AnchoringRetryMaxDelay, config.AnchoringRetryFactor),
		confirmations:       config.GetInt64(config.AnchoringConfirmations),
		maxAttempts:         config.GetInt(config.AnchoringMaxAttempts),
		confirmationTimeout: config.GetDuration(config.AnchoringConfirmationTimeout),
		submitLease:         config.GetDuration(config.AnchoringSubmitLease),
		requestTimeout:      config.GetDuration(config.LedgerRequestTimeout),
		workers:             config.GetInt(config.AnchoringWorkers),
		inflight:            make(map[tktypes.UUID]bool),
	}
	if as.workers < 1 {
		as.workers = 1
	}
	if as.maxAttempts < 1 {
		as.maxAttempts = 1
	}
	return as, nil
}

func (as *anchorSubmitter) AdvancePendingAnchors(ctx context.Context) (*tktypes.TickResult, error) {
	if err := as.createMissingAnchors(ctx); err != nil {
		return nil, err
	}

	now := tktypes.Now()
	fb := database.AnchorQueryFactory.NewFilter(ctx)
	pending, _, err := as.database.GetAnchors(ctx, fb.And(
		fb.Eq("status", tktypes.AnchorStatusPending),
		fb.Lte("nextattempt", now),
	).Sort("sequence"))
	if err != nil {
		return nil, err
	}
	fb = database.AnchorQueryFactory.NewFilter(ctx)
	submitted, _, err := as.database.GetAnchors(ctx, fb.And(
		fb.Eq("status", tktypes.AnchorStatusSubmitted),
	).Sort("sequence"))
	if err != nil {
		return nil, err
	}

	return as.runWorkers(ctx, append(pending, submitted...)), nil
}

// createMissingAnchors gives every ready batch a pending anchor. The unique index on the
// batch column means a concurrent creator fails its insert, and the batch is left to it.
func (as *anchorSubmitter) createMissingAnchors(ctx context.Context) error {
	fb := database.BatchQueryFactory.NewFilter(ctx)
	batches, _, err := as.database.GetBatches(ctx, fb.And(
		fb.Eq("status", tktypes.BatchStatusReady),
		fb.IsNull("anchor"),
	).Sort("sequence"))
	if err != nil {
		return err
	}
	for _, batch := range batches {
		anchor := &tktypes.BlockchainAnchor{
			ID:          tktypes.NewUUID(),
			BatchID:     batch.ID,
			MerkleRoot:  batch.MerkleRoot,
			Ledger:      as.ledger.Name(),
			Status:      tktypes.AnchorStatusPending,
			Created:     tktypes.Now(),
			NextAttempt: tktypes.Now(),
		}
		err := as.database.RunAsGroup(ctx, func(ctx context.Context) error {
			if err := as.database.InsertAnchor(ctx, anchor); err != nil {
				return err
			}
			update := database.BatchQueryFactory.NewUpdate(ctx).Set("anchor", anchor.ID)
			return as.database.UpdateBatch(ctx, batch.ID, tktypes.BatchStatusReady, update)
		})
		if err != nil {
			log.L(ctx).Warnf("Unable to create anchor for batch %s: %s", batch.ID, err)
			continue
		}
		log.L(ctx).Infof("Created anchor %s for batch %s root=%s", anchor.ID, batch.ID, batch.MerkleRoot)
	}
	return nil
}

func (as *anchorSubmitter) GetAnchors(ctx context.Context, filter database.Filter) ([]*tktypes.BlockchainAnchor, *database.FilterResult, error) {
	return as.database.GetAnchors(ctx, filter)
}

func (as *anchorSubmitter) GetAnchorByID(ctx context.Context, id string) (*tktypes.BlockchainAnchor, error) {
	u, err := tktypes.ParseUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	anchor, err := as.database.GetAnchorByID(ctx, u)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		return nil, i18n.NewError(ctx, i18n.MsgAnchorNotFound, id)
	}
	return anchor, nil
}

func (as *anchorSubmitter) RootConfirmed(ctx context.Context, root *tktypes.Bytes32) (*tktypes.BlockchainAnchor, bool, error) {
	fb := database.AnchorQueryFactory.NewFilter(ctx)
	anchors, _, err := as.database.GetAnchors(ctx, fb.And(
		fb.Eq("merkleroot", root),
	).Sort("-sequence").Limit(1))
	if err != nil {
		return nil, false, err
	}
	if len(anchors) == 0 {
		return nil, false, nil
	}
	anchor := anchors[0]
	if anchor.Status != tktypes.AnchorStatusConfirmed {
		return anchor, false, nil
	}

	lctx, cancel := context.WithTimeout(ctx, as.requestTimeout)
	defer cancel()
	exists, err := as.ledger.RootExists(lctx, root)
	if err != nil {
		return anchor, false, err
	}
	return anchor, exists, nil
}

func (as *anchorSubmitter) LedgerStatus(ctx context.Context) *tktypes.LedgerStatus {
	lctx, cancel := context.WithTimeout(ctx, as.requestTimeout)
	defer cancel()

	status := &tktypes.LedgerStatus{
		Name:          as.ledger.Name(),
		Reachable:     as.ledger.IsReachable(lctx),
		Confirmations: as.confirmations,
	}
	as.metrics.LedgerReachable(status.Name, status.Reachable)
	if status.Reachable {
		cost, err := as.ledger.EstimateSubmissionCost(lctx)
		if err != nil {
			log.L(ctx).Warnf("Unable to estimate submission cost on ledger %s: %s", status.Name, err)
		} else {
			status.EstimatedCost = cost.String()
		}
	}
	return status
}
