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

package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gorilla/mux"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/metrics"
	"github.com/kaleido-io/ticketanchor/internal/oapispec"
	"github.com/kaleido-io/ticketanchor/internal/orchestrator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiConfigPrefix     = config.NewPluginConfig("http")
	adminConfigPrefix   = config.NewPluginConfig("admin")
	metricsConfigPrefix = config.NewPluginConfig("metrics")
)

// Server serves the public API, plus the admin and metrics listeners when enabled
type Server interface {
	Serve(ctx context.Context, o orchestrator.Orchestrator) error
}

type apiServer struct {
	defaultFilterLimit uint64
	maxFilterLimit     uint64
	maxFilterSkip      uint64
	maxRequestBodySize int64
	apiTimeout         time.Duration
	metricsEnabled     bool
	adminEnabled       bool
}

// site is a versioned set of routes under a path prefix, with its own swagger
type site struct {
	title           string
	pathPrefix      string
	publicPath      string
	routes          []*oapispec.Route
	conf            config.Prefix
	instrumentation func() *metrics.Instrumentation
}

var (
	publicSite = &site{
		title:           "ticketanchor",
		pathPrefix:      "/api",
		routes:          routes,
		conf:            apiConfigPrefix,
		instrumentation: metrics.GetRestServerInstrumentation,
	}
	adminSite = &site{
		title:           "ticketanchor admin",
		pathPrefix:      "/admin/api",
		publicPath:      "admin",
		routes:          adminRoutes,
		conf:            adminConfigPrefix,
		instrumentation: metrics.GetAdminServerInstrumentation,
	}
)

func InitConfig() {
	initHTTPConfPrefix(apiConfigPrefix, 5000)
	initHTTPConfPrefix(adminConfigPrefix, 5001)
	initHTTPConfPrefix(metricsConfigPrefix, 6000)
	initMetricsConfPrefix(metricsConfigPrefix)
}

func NewAPIServer() Server {
	return &apiServer{
		defaultFilterLimit: uint64(config.GetUint(config.APIDefaultFilterLimit)),
		maxFilterLimit:     uint64(config.GetUint(config.APIMaxFilterLimit)),
		maxFilterSkip:      uint64(config.GetUint(config.APIMaxFilterSkip)),
		maxRequestBodySize: config.GetByteSize(config.APIMaxRequestBodySize),
		apiTimeout:         config.GetDuration(config.APIRequestTimeout),
		metricsEnabled:     config.GetBool(config.MetricsEnabled),
		adminEnabled:       config.GetBool(config.AdminEnabled),
	}
}

// Serve blocks until the first listener exits, which happens for all of them when ctx is cancelled
func (as *apiServer) Serve(ctx context.Context, o orchestrator.Orchestrator) error {
	type listener struct {
		name   string
		router *mux.Router
		conf   config.Prefix
	}
	listeners := []listener{{"api", as.createMuxRouter(o), apiConfigPrefix}}
	if as.adminEnabled {
		listeners = append(listeners, listener{"admin", as.createAdminMuxRouter(o), adminConfigPrefix})
	}
	if as.metricsEnabled {
		listeners = append(listeners, listener{"metrics", as.createMetricsMuxRouter(), metricsConfigPrefix})
	}

	done := make(chan error, len(listeners))
	for _, l := range listeners {
		hs, err := newHTTPServer(ctx, l.name, l.router, done, l.conf)
		if err != nil {
			return err
		}
		go hs.serveHTTP(ctx)
	}
	return <-done
}

func (as *apiServer) getPublicURL(conf config.Prefix, publicPath string) string {
	publicURL := strings.TrimSuffix(conf.GetString(HTTPConfPublicURL), "/")
	if publicURL == "" {
		scheme := "http"
		if conf.GetBool(HTTPConfTLSEnabled) {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s:%s", scheme, conf.GetString(HTTPConfAddress), conf.GetString(HTTPConfPort))
	}
	if publicPath != "" {
		publicURL += "/" + publicPath
	}
	return publicURL
}

func (as *apiServer) swaggerHandler(s *site, baseURL string) apiHandler {
	return func(res http.ResponseWriter, req *http.Request) (int, error) {
		doc := oapispec.SwaggerGen(req.Context(), s.routes, &oapispec.SwaggerGenConfig{
			BaseURL: baseURL,
			Title:   s.title,
			Version: "1.0",
		})
		var b []byte
		var err error
		if mux.Vars(req)["ext"] == ".json" {
			res.Header().Set("Content-Type", "application/json")
			b, err = json.Marshal(doc)
		} else {
			res.Header().Set("Content-Type", "application/x-yaml")
			b, err = yaml.Marshal(doc)
		}
		if err != nil {
			return http.StatusInternalServerError, i18n.WrapError(req.Context(), err, i18n.MsgResponseMarshalError)
		}
		_, _ = res.Write(b)
		return http.StatusOK, nil
	}
}

func (as *apiServer) swaggerUIHandler(docURL string) apiHandler {
	return func(res http.ResponseWriter, req *http.Request) (int, error) {
		res.Header().Set("Content-Type", "text/html")
		_, _ = res.Write(oapispec.SwaggerUIHTML(req.Context(), docURL))
		return http.StatusOK, nil
	}
}

func (as *apiServer) notFoundHandler(res http.ResponseWriter, req *http.Request) (int, error) {
	return http.StatusNotFound, i18n.NewError(req.Context(), i18n.Msg404NotFound)
}

func (as *apiServer) siteRouter(o orchestrator.Orchestrator, s *site) *mux.Router {
	r := mux.NewRouter()
	if as.metricsEnabled {
		r.Use(s.instrumentation().Middleware)
	}
	for _, route := range s.routes {
		if route.JSONHandler == nil {
			continue
		}
		r.HandleFunc(fmt.Sprintf("%s/v1/%s", s.pathPrefix, route.Path), as.routeHandler(o, route)).
			Methods(route.Method)
	}

	publicURL := as.getPublicURL(s.conf, s.publicPath)
	r.HandleFunc(s.pathPrefix+`/swagger{ext:\.yaml|\.json|}`, as.wrap(as.swaggerHandler(s, publicURL+"/api/v1")))
	r.HandleFunc(s.pathPrefix, as.wrap(as.swaggerUIHandler(publicURL+"/api/swagger.yaml")))
	r.NotFoundHandler = as.wrap(as.notFoundHandler)
	return r
}

func (as *apiServer) createMuxRouter(o orchestrator.Orchestrator) *mux.Router {
	return as.siteRouter(o, publicSite)
}

func (as *apiServer) createAdminMuxRouter(o orchestrator.Orchestrator) *mux.Router {
	return as.siteRouter(o, adminSite)
}

func (as *apiServer) createMetricsMuxRouter() *mux.Router {
	r := mux.NewRouter()
	handler := promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})
	r.Path(metricsConfigPrefix.GetString(MetricsConfPath)).Handler(promhttp.InstrumentMetricHandler(metrics.Registry(), handler))
	return r
}
