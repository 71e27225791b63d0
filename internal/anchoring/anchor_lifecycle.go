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
	"time"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/ledger"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

func (as *anchorSubmitter) ledgerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, as.requestTimeout)
}

func (as *anchorSubmitter) submitAnchor(ctx context.Context, anchor *tktypes.BlockchainAnchor) (outcome, error) {
	now := tktypes.Now()
	err := as.database.ClaimAnchor(ctx, anchor.ID, now, tktypes.FromTime(now.Time().Add(as.submitLease)))
	if err == database.UpdateConflict {
		return outcomeSkipped, nil
	}
	if err != nil {
		return outcomeFailed, err
	}

	// The existence check makes submission idempotent across crashes between SubmitRoot and
	// recording its result
	lctx, cancel := as.ledgerContext(ctx)
	exists, err := as.ledger.RootExists(lctx, anchor.MerkleRoot)
	cancel()
	if err != nil {
		return as.submitFailed(ctx, anchor, err)
	}
	if exists {
		return as.adoptExisting(ctx, anchor)
	}

	lctx, cancel = as.ledgerContext(ctx)
	txHandle, err := as.ledger.SubmitRoot(lctx, anchor.MerkleRoot)
	cancel()
	if err != nil {
		return as.submitFailed(ctx, anchor, err)
	}
	return as.markSubmitted(ctx, anchor, txHandle)
}

// adoptExisting tracks the transaction that already recorded the root, typically an earlier
// submission whose result was lost. It still has to reach the confirmation threshold.
func (as *anchorSubmitter) adoptExisting(ctx context.Context, anchor *tktypes.BlockchainAnchor) (outcome, error) {
	txHandle := anchor.TransactionHash
	if txHandle == "" {
		lctx, cancel := as.ledgerContext(ctx)
		found, err := as.ledger.FindRootTransaction(lctx, anchor.MerkleRoot)
		cancel()
		if err == nil && found == "" {
			// Not yet visible to the lookup, which may lag the existence check
			err = ledger.NewNetworkError(ctx, anchor.Ledger, i18n.NewError(ctx, i18n.MsgRootTxNotFound, anchor.MerkleRoot, anchor.Ledger))
		}
		if err != nil {
			return as.submitFailed(ctx, anchor, err)
		}
		txHandle = found
	}
	log.L(ctx).Infof("Root %s of batch %s is already on ledger %s tx=%s", anchor.MerkleRoot, anchor.BatchID, anchor.Ledger, txHandle)
	return as.markSubmitted(ctx, anchor, txHandle)
}

func (as *anchorSubmitter) markSubmitted(ctx context.Context, anchor *tktypes.BlockchainAnchor, txHandle string) (outcome, error) {
	submitted := tktypes.Now()
	update := database.AnchorQueryFactory.NewUpdate(ctx).
		Set("status", tktypes.AnchorStatusSubmitted).
		Set("txhash", txHandle).
		Set("submitted", submitted).
		Set("nextattempt", nil).
		Set("error", "")
	if err := as.database.UpdateAnchor(ctx, anchor.ID, tktypes.AnchorStatusPending, update); err != nil {
		return outcomeFailed, err
	}
	as.metrics.AnchorSubmitted(anchor.ID)
	log.L(ctx).Infof("Submitted root %s of batch %s to ledger %s tx=%s", anchor.MerkleRoot, anchor.BatchID, anchor.Ledger, txHandle)
	anchor.Status = tktypes.AnchorStatusSubmitted
	anchor.TransactionHash = txHandle
	anchor.Submitted = submitted
	return outcomeProcessed, nil
}

// submitFailed schedules a retry with backoff for network errors, until the attempts are exhausted.
// A rejection fails the anchor immediately.
func (as *anchorSubmitter) submitFailed(ctx context.Context, anchor *tktypes.BlockchainAnchor, submitErr error) (outcome, error) {
	retries := anchor.Retries + 1
	if ledger.IsRejectionError(submitErr) {
		return as.fail(ctx, anchor, tktypes.AnchorStatusPending, tktypes.AnchorStatusFailed, retries, submitErr.Error())
	}
	if retries >= as.maxAttempts {
		reason := i18n.NewError(ctx, i18n.MsgRetriesExhausted, retries, submitErr).Error()
		return as.fail(ctx, anchor, tktypes.AnchorStatusPending, tktypes.AnchorStatusFailed, retries, reason)
	}

	delay := as.retry.Delay(retries)
	update := database.AnchorQueryFactory.NewUpdate(ctx).
		Set("retries", retries).
		Set("nextattempt", tktypes.FromTime(time.Now().Add(delay))).
		Set("error", submitErr.Error())
	if err := as.database.UpdateAnchor(ctx, anchor.ID, tktypes.AnchorStatusPending, update); err != nil {
		return outcomeFailed, err
	}
	log.L(ctx).Warnf("Submission of anchor %s failed (attempt %d/%d), retrying in %s: %s", anchor.ID, retries, as.maxAttempts, delay, submitErr)
	return outcomeFailed, nil
}

func (as *anchorSubmitter) pollAnchor(ctx context.Context, anchor *tktypes.BlockchainAnchor) (outcome, error) {
	lctx, cancel := as.ledgerContext(ctx)
	count, err := as.ledger.GetConfirmationCount(lctx, anchor.TransactionHash)
	cancel()
	if err != nil {
		if ledger.IsRejectionError(err) {
			return as.fail(ctx, anchor, tktypes.AnchorStatusSubmitted, tktypes.AnchorStatusFailed, anchor.Retries, err.Error())
		}
		if as.timedOut(anchor) {
			return as.expire(ctx, anchor)
		}
		log.L(ctx).Warnf("Unable to query confirmations for anchor %s tx=%s: %s", anchor.ID, anchor.TransactionHash, err)
		return outcomeSkipped, nil
	}

	if count >= as.confirmations {
		return as.confirm(ctx, anchor, tktypes.AnchorStatusSubmitted, count)
	}
	if as.timedOut(anchor) {
		return as.expire(ctx, anchor)
	}
	if count != anchor.Confirmations {
		update := database.AnchorQueryFactory.NewUpdate(ctx).Set("confirmations", count)
		if err := as.database.UpdateAnchor(ctx, anchor.ID, tktypes.AnchorStatusSubmitted, update); err != nil {
			return outcomeFailed, err
		}
		log.L(ctx).Debugf("Anchor %s has %d/%d confirmations", anchor.ID, count, as.confirmations)
	}
	return outcomeSkipped, nil
}

func (as *anchorSubmitter) timedOut(anchor *tktypes.BlockchainAnchor) bool {
	since := anchor.Submitted
	if since == nil {
		since = anchor.Created
	}
	return time.Since(since.Time()) > as.confirmationTimeout
}

func (as *anchorSubmitter) expire(ctx context.Context, anchor *tktypes.BlockchainAnchor) (outcome, error) {
	reason := i18n.NewError(ctx, i18n.MsgConfirmationTimeout, anchor.ID, as.confirmationTimeout).Error()
	return as.fail(ctx, anchor, tktypes.AnchorStatusSubmitted, tktypes.AnchorStatusExpired, anchor.Retries, reason)
}

func (as *anchorSubmitter) confirm(ctx context.Context, anchor *tktypes.BlockchainAnchor, from tktypes.AnchorStatus, count int64) (outcome, error) {
	confirmed := tktypes.Now()
	update := database.AnchorQueryFactory.NewUpdate(ctx).
		Set("status", tktypes.AnchorStatusConfirmed).
		Set("confirmations", count).
		Set("confirmed", confirmed).
		Set("nextattempt", nil)
	if err := as.finish(ctx, anchor, from, update, tktypes.BatchStatusAnchored); err != nil {
		return outcomeFailed, err
	}
	as.metrics.AnchorFinished(anchor.ID, tktypes.AnchorStatusConfirmed)
	log.L(ctx).Infof("Anchor %s confirmed with %d confirmations, batch %s anchored", anchor.ID, count, anchor.BatchID)
	anchor.Status = tktypes.AnchorStatusConfirmed
	anchor.Confirmations = count
	anchor.Confirmed = confirmed
	return outcomeProcessed, nil
}

// fail moves the anchor to a final error status, and its batch to failed. The tickets
// of the batch are untouched, and remain valid and signature verifiable.
func (as *anchorSubmitter) fail(ctx context.Context, anchor *tktypes.BlockchainAnchor, from, to tktypes.AnchorStatus, retries int, reason string) (outcome, error) {
	update := database.AnchorQueryFactory.NewUpdate(ctx).
		Set("status", to).
		Set("retries", retries).
		Set("error", reason).
		Set("nextattempt", nil)
	if err := as.finish(ctx, anchor, from, update, tktypes.BatchStatusFailed); err != nil {
		return outcomeFailed, err
	}
	as.metrics.AnchorFinished(anchor.ID, to)
	log.L(ctx).Errorf("Anchor %s is %s, batch %s failed: %s", anchor.ID, to, anchor.BatchID, reason)
	anchor.Status = to
	anchor.Retries = retries
	anchor.Error = reason
	return outcomeFailed, nil
}

func (as *anchorSubmitter) finish(ctx context.Context, anchor *tktypes.BlockchainAnchor, from tktypes.AnchorStatus, update database.Update, batchStatus tktypes.BatchStatus) error {
	return as.database.RunAsGroup(ctx, func(ctx context.Context) error {
		if err := as.database.UpdateAnchor(ctx, anchor.ID, from, update); err != nil {
			return err
		}
		batchUpdate := database.BatchQueryFactory.NewUpdate(ctx).Set("status", batchStatus)
		return as.database.UpdateBatch(ctx, anchor.BatchID, tktypes.BatchStatusReady, batchUpdate)
	})
}
