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

package ledger

import (
	"context"
	"math/big"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// Plugin is the interface implemented by each ledger plugin.
//
// Every call may block on the network, so the caller bounds each one with a context deadline.
// Failures are classified as network errors (safe to retry, the ledger state is unknown) or
// rejection errors (the ledger refused the request and retrying will not help).
type Plugin interface {
	Name() string

	// InitPrefix initializes the set of configuration options that are valid, with defaults. Called on all plugins.
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, with configuration
	Init(ctx context.Context, prefix config.Prefix) error

	// SubmitRoot records a Merkle root on the ledger, returning a handle to the pending transaction
	SubmitRoot(ctx context.Context, root *tktypes.Bytes32) (txHandle string, err error)

	// GetConfirmationCount returns how many blocks deep the transaction is, or zero while it is pending
	GetConfirmationCount(ctx context.Context, txHandle string) (int64, error)

	// RootExists checks whether a root has already been recorded, by any earlier submission
	RootExists(ctx context.Context, root *tktypes.Bytes32) (bool, error)

	// FindRootTransaction returns the handle of the transaction that recorded a root, or an empty string if it is not recorded
	FindRootTransaction(ctx context.Context, root *tktypes.Bytes32) (txHandle string, err error)

	// EstimateSubmissionCost returns the expected cost of one SubmitRoot, in the smallest unit of the ledger currency
	EstimateSubmissionCost(ctx context.Context) (*big.Int, error)

	// IsReachable is a cheap liveness check
	IsReachable(ctx context.Context) bool
}

// NewNetworkError wraps a transport failure, where the request may or may not have reached the ledger
func NewNetworkError(ctx context.Context, ledgerName string, err error) error {
	return i18n.WrapError(ctx, err, i18n.MsgLedgerNetworkError, ledgerName, err)
}

// NewRejectionError reports a definitive refusal by the ledger
func NewRejectionError(ctx context.Context, ledgerName string, reason string) error {
	return i18n.NewError(ctx, i18n.MsgLedgerRejectionError, ledgerName, reason)
}

// IsNetworkError is true for transient failures, including an unreachable ledger
func IsNetworkError(err error) bool {
	return i18n.IsCode(err, i18n.MsgLedgerNetworkError) || i18n.IsCode(err, i18n.MsgLedgerUnreachable)
}

// IsRejectionError is true when the ledger refused the request
func IsRejectionError(err error) bool {
	return i18n.IsCode(err, i18n.MsgLedgerRejectionError)
}
