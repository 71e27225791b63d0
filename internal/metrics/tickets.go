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

var TicketsIssuedCounter prometheus.Counter
var TicketsDeduplicatedCounter prometheus.Counter

// MetricsTicketsIssued is the prometheus metric for the number of newly issued tickets
var MetricsTicketsIssued = "ta_tickets_issued_total"

// MetricsTicketsDeduplicated is the prometheus metric for issuance requests answered with an existing ticket
var MetricsTicketsDeduplicated = "ta_tickets_deduplicated_total"

func newTicketMetrics() []prometheus.Collector {
	TicketsIssuedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricsTicketsIssued,
		Help: "Number of tickets issued",
	})
	TicketsDeduplicatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricsTicketsDeduplicated,
		Help: "Number of issuance requests resolved to an existing ticket for the booking",
	})
	return []prometheus.Collector{TicketsIssuedCounter, TicketsDeduplicatedCounter}
}
