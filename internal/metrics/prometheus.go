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
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const apiNamespace = "ta_apiserver"

var (
	registryMux sync.Mutex
	registry    *prometheus.Registry
	servers     = map[string]*Instrumentation{}
)

// Registry holds the runtime collectors plus every ticketanchor metric. It is
// built on first use, and rebuilt after Clear.
func Registry() *prometheus.Registry {
	registryMux.Lock()
	defer registryMux.Unlock()
	return registryLocked()
}

func registryLocked() *prometheus.Registry {
	if registry != nil {
		return registry
	}
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, group := range [][]prometheus.Collector{
		newTicketMetrics(),
		newAnchoringMetrics(),
		newVerificationMetrics(),
	} {
		registry.MustRegister(group...)
	}
	return registry
}

// instrumentationFor returns one middleware per server, as the HTTP collectors can only register once
func instrumentationFor(server string) *Instrumentation {
	registryMux.Lock()
	defer registryMux.Unlock()
	if i, ok := servers[server]; ok {
		return i
	}
	i := newInstrumentation(apiNamespace, server, prometheus.DefBuckets, registryLocked())
	servers[server] = i
	return i
}

func GetAdminServerInstrumentation() *Instrumentation { return instrumentationFor("admin") }

func GetRestServerInstrumentation() *Instrumentation { return instrumentationFor("rest") }

// Clear drops the registry and the server middleware, so tests start from zero
func Clear() {
	registryMux.Lock()
	defer registryMux.Unlock()
	registry = nil
	servers = map[string]*Instrumentation{}
}
