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

	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

func (or *orchestrator) Status(ctx context.Context) (*tktypes.ServiceStatus, error) {
	ledgerStatus := or.anchoring.LedgerStatus(ctx)
	status := &tktypes.ServiceStatus{
		PublicKey:           or.issuer.PublicKey(),
		TicketHashAlgorithm: or.issuer.HashAlgorithm(),
		BatchHashAlgorithm:  or.batching.HashAlgorithm(),
		Ledger:              *ledgerStatus,
		Batch:               *or.batching.Config(),
	}
	return status, nil
}
