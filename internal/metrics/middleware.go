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
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var requestLabels = []string{"code", "method", "route"}

// Instrumentation is a mux middleware recording request counts, latencies and response sizes per route template
type Instrumentation struct {
	reqTotal        *prometheus.CounterVec
	reqDurationSecs *prometheus.HistogramVec
	resSizeBytes    *prometheus.SummaryVec
}

func newInstrumentation(namespace, subsystem string, buckets []float64, registerer prometheus.Registerer) *Instrumentation {
	i := &Instrumentation{
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of requests received",
		}, requestLabels),
		reqDurationSecs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of the request duration",
			Buckets:   buckets,
		}, requestLabels),
		resSizeBytes: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "response_size_bytes",
			Help:      "Summary of response bytes sent",
		}, requestLabels),
	}
	registerer.MustRegister(i.reqTotal, i.reqDurationSecs, i.resSizeBytes)
	return i
}

func (i *Instrumentation) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		sw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		labels := []string{strconv.Itoa(sw.Status()), r.Method, routeTemplate(r)}
		i.reqTotal.WithLabelValues(labels...).Inc()
		i.reqDurationSecs.WithLabelValues(labels...).Observe(time.Since(startTime).Seconds())
		i.resSizeBytes.WithLabelValues(labels...).Observe(float64(sw.size))
	})
}

// routeTemplate keeps the label cardinality bounded by the route table, rather than by the IDs in the URLs
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unknown"
}

type statusResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func (w *statusResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
