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

package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

type Manager interface {
	TicketIssued()
	TicketDeduplicated()
	BatchSealed(ticketCount int64)
	AnchorSubmitted(anchorID *tktypes.UUID)
	AnchorFinished(anchorID *tktypes.UUID, status tktypes.AnchorStatus)
	VerificationCompleted(result *tktypes.VerificationResult)
	LedgerReachable(ledger string, reachable bool)
	IsMetricsEnabled() bool
}

type metricsManager struct {
	ctx            context.Context
	metricsEnabled bool
	mux            sync.Mutex
	timeMap        map[string]time.Time
}

func NewMetricsManager(ctx context.Context) Manager {
	mm := &metricsManager{
		ctx:            ctx,
		metricsEnabled: config.GetBool(config.MetricsEnabled),
		timeMap:        make(map[string]time.Time),
	}
	if mm.metricsEnabled {
		// Collectors are created on first use of the registry
		Registry()
	}
	return mm
}

func (mm *metricsManager) TicketIssued() {
	if mm.metricsEnabled {
		TicketsIssuedCounter.Inc()
	}
}

func (mm *metricsManager) TicketDeduplicated() {
	if mm.metricsEnabled {
		TicketsDeduplicatedCounter.Inc()
	}
}

func (mm *metricsManager) BatchSealed(ticketCount int64) {
	if mm.metricsEnabled {
		BatchesSealedCounter.Inc()
		BatchSizeHistogram.Observe(float64(ticketCount))
	}
}

func (mm *metricsManager) AnchorSubmitted(anchorID *tktypes.UUID) {
	if !mm.metricsEnabled {
		return
	}
	AnchorsCounter.WithLabelValues(string(tktypes.AnchorStatusSubmitted)).Inc()
	mm.mux.Lock()
	mm.timeMap[anchorID.String()] = time.Now()
	mm.mux.Unlock()
}

func (mm *metricsManager) AnchorFinished(anchorID *tktypes.UUID, status tktypes.AnchorStatus) {
	if !mm.metricsEnabled {
		return
	}
	AnchorsCounter.WithLabelValues(string(status)).Inc()
	mm.mux.Lock()
	submitted, ok := mm.timeMap[anchorID.String()]
	delete(mm.timeMap, anchorID.String())
	mm.mux.Unlock()
	// Anchors submitted by a previous process have no start time
	if ok && status == tktypes.AnchorStatusConfirmed {
		AnchorConfirmationHistogram.Observe(time.Since(submitted).Seconds())
	}
}

func (mm *metricsManager) VerificationCompleted(result *tktypes.VerificationResult) {
	if mm.metricsEnabled {
		VerificationsCounter.WithLabelValues(string(result.Result), string(result.Level)).Inc()
	}
}

func (mm *metricsManager) LedgerReachable(ledger string, reachable bool) {
	if !mm.metricsEnabled {
		return
	}
	v := 0.0
	if reachable {
		v = 1.0
	}
	LedgerReachableGauge.WithLabelValues(ledger).Set(v)
}

func (mm *metricsManager) IsMetricsEnabled() bool {
	return mm.metricsEnabled
}
