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
	"github.com/prometheus/client_golang/prometheus"
)

var BatchesSealedCounter prometheus.Counter
var BatchSizeHistogram prometheus.Histogram
var AnchorsCounter *prometheus.CounterVec
var AnchorConfirmationHistogram prometheus.Histogram
var LedgerReachableGauge *prometheus.GaugeVec

var MetricsBatchesSealed = "ta_batches_sealed_total"
var MetricsBatchSize = "ta_batch_size_tickets"
var MetricsAnchors = "ta_anchors_total"
var MetricsAnchorConfirmation = "ta_anchor_confirmation_seconds"
var MetricsLedgerReachable = "ta_ledger_reachable"

func newAnchoringMetrics() []prometheus.Collector {
	BatchesSealedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricsBatchesSealed,
		Help: "Number of Merkle batches sealed",
	})
	BatchSizeHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    MetricsBatchSize,
		Help:    "Number of tickets in each sealed batch",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
	AnchorsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: MetricsAnchors,
		Help: "Number of anchors reaching each status",
	}, []string{"status"})
	AnchorConfirmationHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    MetricsAnchorConfirmation,
		Help:    "Time from root submission to the required confirmation depth",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})
	LedgerReachableGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: MetricsLedgerReachable,
		Help: "1 if the ledger answered the last reachability check",
	}, []string{"ledger"})
	return []prometheus.Collector{BatchesSealedCounter, BatchSizeHistogram, AnchorsCounter, AnchorConfirmationHistogram, LedgerReachableGauge}
}
