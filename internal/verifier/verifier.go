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

package verifier

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/anchoring"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/hashing"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/issuer"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/merkle"
	"github.com/kaleido-io/ticketanchor/internal/metrics"
	"github.com/kaleido-io/ticketanchor/internal/signer"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/karlseguin/ccache"
)

type Verifier interface {
	// VerifyTicket checks a QR payload up to the requested level, reporting the level actually achieved
	VerifyTicket(ctx context.Context, req *tktypes.VerifyRequest) (*tktypes.VerificationResult, error)
	// VerifyPayloadSignature is the offline check: the embedded signature against the embedded key
	VerifyPayloadSignature(ctx context.Context, payload string) (*tktypes.QRPayload, bool)
}

type verifier struct {
	database  database.Plugin
	anchoring anchoring.Submitter
	metrics   metrics.Manager
	issuerKey tktypes.HexBytes
	rootCache *ccache.Cache
	rootTTL   time.Duration
}

func NewVerifier(ctx context.Context, di database.Plugin, as anchoring.Submitter, issuerKey tktypes.HexBytes, mm metrics.Manager) (Verifier, error) {
	if di == nil || as == nil || mm == nil || len(issuerKey) == 0 {
		return nil, i18n.NewError(ctx, i18n.MsgInitializationNilDepError)
	}
	return &verifier{
		database:  di,
		anchoring: as,
		metrics:   mm,
		issuerKey: issuerKey,
		rootCache: ccache.New(ccache.Configure().MaxSize(config.GetInt64(config.VerifierCacheSize))),
		rootTTL:   config.GetDuration(config.VerifierCacheTTL),
	}, nil
}

func (v *verifier) VerifyPayloadSignature(ctx context.Context, payload string) (*tktypes.QRPayload, bool) {
	qr, err := issuer.DecodeQRPayload(ctx, payload)
	if err != nil {
		log.L(ctx).Debugf("Undecodable QR payload: %s", err)
		return nil, false
	}
	return qr, signer.Verify(qr.Hash, qr.Signature, qr.PublicKey)
}

func parseLevel(ctx context.Context, level tktypes.VerificationLevel) (tktypes.VerificationLevel, error) {
	if level == "" {
		return tktypes.VerificationLevelSignature, nil
	}
	level = tktypes.VerificationLevel(strings.ToLower(string(level)))
	if level.Rank() == 0 {
		return "", i18n.NewError(ctx, i18n.MsgInvalidVerifyLevel, level)
	}
	return level, nil
}

func (v *verifier) VerifyTicket(ctx context.Context, req *tktypes.VerifyRequest) (*tktypes.VerificationResult, error) {
	if req == nil || strings.TrimSpace(req.Payload) == "" {
		return nil, i18n.NewError(ctx, i18n.MsgVerifyPayloadRequired)
	}
	requested, err := parseLevel(ctx, req.Level)
	if err != nil {
		return nil, err
	}

	result, err := v.verify(ctx, req, requested)
	if err != nil {
		return nil, err
	}
	result.RequestedLevel = requested
	result.Checked = tktypes.Now()
	v.metrics.VerificationCompleted(result)
	log.L(ctx).Infof("Verification result=%s level=%s requested=%s ticket=%s", result.Result, result.Level, requested, result.TicketID)
	return result, nil
}

func invalid(ctx context.Context, result *tktypes.VerificationResult, msg i18n.MessageKey, inserts ...interface{}) *tktypes.VerificationResult {
	result.Result = tktypes.VerificationInvalid
	result.Level = ""
	result.Reason = i18n.ExpandWithCode(ctx, msg, inserts...)
	return result
}

func (v *verifier) verify(ctx context.Context, req *tktypes.VerifyRequest, requested tktypes.VerificationLevel) (*tktypes.VerificationResult, error) {
	result := &tktypes.VerificationResult{}

	qr, err := issuer.DecodeQRPayload(ctx, req.Payload)
	if err != nil {
		result.Result = tktypes.VerificationInvalid
		result.Reason = err.Error()
		return result, nil
	}
	result.TicketID = qr.TicketID
	result.BookingID = qr.BookingID
	result.Hash = qr.Hash

	// Signature level
	if !signer.Verify(qr.Hash, qr.Signature, qr.PublicKey) {
		return invalid(ctx, result, i18n.MsgSignatureInvalid), nil
	}
	if !bytes.Equal(qr.PublicKey, v.issuerKey) {
		return invalid(ctx, result, i18n.MsgSigningKeyMismatch), nil
	}

	// Lifecycle of the issued ticket
	ticket, err := v.database.GetTicketByHash(ctx, qr.Hash)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		result.Result = tktypes.VerificationNotFound
		result.Reason = i18n.ExpandWithCode(ctx, i18n.MsgTicketUnknownHash, qr.Hash)
		return result, nil
	}
	if *ticket.ID != *qr.TicketID || ticket.BookingID != qr.BookingID {
		return invalid(ctx, result, i18n.MsgPayloadTicketMismatch), nil
	}
	result.BatchID = ticket.BatchID
	switch {
	case ticket.Status == tktypes.TicketStatusRevoked:
		result.Result = tktypes.VerificationRevoked
		result.Reason = i18n.ExpandWithCode(ctx, i18n.MsgTicketRevoked, ticket.ID)
		return result, nil
	case ticket.Status == tktypes.TicketStatusUsed:
		return invalid(ctx, result, i18n.MsgTicketUsed, ticket.ID), nil
	case ticket.Status == tktypes.TicketStatusExpired || (ticket.ExpiresAt != nil && time.Now().After(ticket.ExpiresAt.Time())):
		result.Result = tktypes.VerificationExpired
		result.Reason = i18n.ExpandWithCode(ctx, i18n.MsgTicketExpired, ticket.ID, ticket.ExpiresAt)
		return result, nil
	}
	result.Result = tktypes.VerificationValid
	result.Level = tktypes.VerificationLevelSignature
	if requested.Rank() < tktypes.VerificationLevelProof.Rank() {
		return result, nil
	}

	// Proof level
	root, ok, err := v.verifyProof(ctx, req, ticket, result)
	if err != nil || !ok {
		return result, err
	}
	result.Level = tktypes.VerificationLevelProof
	if requested.Rank() < tktypes.VerificationLevelChain.Rank() {
		return result, nil
	}

	// Chain level
	v.verifyChain(ctx, root, result)
	return result, nil
}

// verifyProof recombines the ticket hash to a root. A supplied proof and root take precedence
// over the stored ones, but a claimed root must still be the root the batch was sealed with.
// Returns false without an error when the proof level is unavailable or failed, having set the result.
func (v *verifier) verifyProof(ctx context.Context, req *tktypes.VerifyRequest, ticket *tktypes.Ticket, result *tktypes.VerificationResult) (*tktypes.Bytes32, bool, error) {
	stored, err := v.database.GetProofByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		result.Reason = i18n.ExpandWithCode(ctx, i18n.MsgProofNotFound, ticket.ID)
		return nil, false, nil
	}
	result.BatchID = stored.BatchID
	result.MerkleRoot = stored.MerkleRoot

	path := stored.Path
	if req.Proof != nil {
		path = req.Proof
	}
	root := stored.MerkleRoot
	if req.Root != nil {
		if *req.Root != *stored.MerkleRoot {
			invalid(ctx, result, i18n.MsgProofMismatch, req.Root)
			return nil, false, nil
		}
		root = req.Root
	}

	hasher, err := hashing.New(ctx, stored.HashAlgorithm)
	if err != nil {
		return nil, false, err
	}
	if !merkle.VerifyProof(ctx, hasher, ticket.Hash, path, root) {
		invalid(ctx, result, i18n.MsgProofMismatch, root)
		return nil, false, nil
	}
	return root, true, nil
}

// verifyChain upgrades the result to chain level when the root is confirmed. An unconfirmed anchor
// or an unreachable ledger leave the ticket valid at proof level. A locally confirmed root that the
// ledger does not hold is a tamper signal, and makes the ticket invalid.
func (v *verifier) verifyChain(ctx context.Context, root *tktypes.Bytes32, result *tktypes.VerificationResult) {
	cacheKey := root.String()
	if cached := v.rootCache.Get(cacheKey); cached != nil && !cached.Expired() {
		anchor := cached.Value().(*tktypes.BlockchainAnchor)
		log.L(ctx).Debugf("Cache hit for confirmed root %s", root)
		chainVerified(result, anchor)
		return
	}

	anchor, confirmed, err := v.anchoring.RootConfirmed(ctx, root)
	if anchor != nil {
		result.AnchorStatus = anchor.Status
		result.TransactionHash = anchor.TransactionHash
	}
	switch {
	case err != nil:
		log.L(ctx).Warnf("Chain verification of root %s unavailable: %s", root, err)
		result.Reason = i18n.ExpandWithCode(ctx, i18n.MsgChainCheckUnavailable, err)
	case anchor == nil:
		result.Reason = i18n.ExpandWithCode(ctx, i18n.MsgRootNotConfirmed, root, "none")
	case !confirmed && anchor.Status == tktypes.AnchorStatusConfirmed:
		invalid(ctx, result, i18n.MsgRootNotOnLedger, root)
	case !confirmed:
		result.Reason = i18n.ExpandWithCode(ctx, i18n.MsgRootNotConfirmed, root, anchor.Status)
	default:
		v.rootCache.Set(cacheKey, anchor, v.rootTTL)
		chainVerified(result, anchor)
	}
}

func chainVerified(result *tktypes.VerificationResult, anchor *tktypes.BlockchainAnchor) {
	result.Level = tktypes.VerificationLevelChain
	result.AnchorStatus = anchor.Status
	result.TransactionHash = anchor.TransactionHash
	result.Reason = ""
}
