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
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/oapispec"
	"github.com/kaleido-io/ticketanchor/internal/orchestrator"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

var codeExtractor = regexp.MustCompile(`^(TA\d+):`)

type restError struct {
	Error string `json:"error"`
}

// apiHandler writes its own success response, and returns the error for wrap to render
type apiHandler func(res http.ResponseWriter, req *http.Request) (status int, err error)

// getTimeout is the API default, unless overridden by a Request-Timeout header (ms or duration)
func (as *apiServer) getTimeout(req *http.Request) time.Duration {
	h := req.Header.Get("Request-Timeout")
	if h == "" {
		return as.apiTimeout
	}
	if d := config.ParseDurationValue(h); d > 0 {
		return d
	}
	log.L(req.Context()).Warnf("Ignoring invalid Request-Timeout '%s'", h)
	return as.apiTimeout
}

// errorStatus picks the HTTP status for a failed request, from the code of the outermost error
func errorStatus(err error, status int) int {
	if m := codeExtractor.FindStringSubmatch(err.Error()); m != nil {
		if hint, ok := i18n.GetStatusHint(m[1]); ok {
			status = hint
		}
	}
	if status < 300 {
		status = http.StatusInternalServerError
	}
	return status
}

func (as *apiServer) wrap(handler apiHandler) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		reqID := tktypes.ShortID()
		ctx, cancel := context.WithTimeout(log.WithLogField(req.Context(), "req", reqID), as.getTimeout(req))
		defer cancel()
		req = req.WithContext(ctx)

		l := log.L(ctx)
		l.Infof("--> %s %s", req.Method, req.URL.Path)
		start := time.Now()
		status, err := handler(res, req)
		elapsed := log.Since(start)
		if err == nil {
			l.Infof("<-- %s %s [%d] (%.2fms)", req.Method, req.URL.Path, status, elapsed)
			return
		}

		status = errorStatus(err, status)
		if ctx.Err() != nil && status != http.StatusRequestTimeout {
			l.Errorf("Request context closed with status %d: %s", status, err)
			status = http.StatusRequestTimeout
			err = i18n.WrapError(ctx, err, i18n.MsgRequestTimeout, reqID, elapsed)
		}
		l.Infof("<-- %s %s [%d] (%.2fms): %s", req.Method, req.URL.Path, status, elapsed, err)
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(status)
		_ = json.NewEncoder(res).Encode(&restError{Error: err.Error()})
	}
}

func pathParams(req *http.Request, route *oapispec.Route) map[string]string {
	vars := mux.Vars(req)
	pp := make(map[string]string, len(route.PathParams))
	for _, p := range route.PathParams {
		pp[p.Name] = vars[p.Name]
	}
	return pp
}

// queryParams resolves the declared query params, with a bare boolean flag meaning true
func queryParams(req *http.Request, route *oapispec.Route) map[string]string {
	q := req.URL.Query()
	qp := make(map[string]string, len(route.QueryParams))
	for _, p := range route.QueryParams {
		vals, present := q[p.Name]
		switch {
		case p.IsBool:
			qp[p.Name] = "false"
			if present && (len(vals) == 0 || vals[0] == "" || strings.EqualFold(vals[0], "true")) {
				qp[p.Name] = "true"
			}
		case len(vals) > 0:
			qp[p.Name] = vals[0]
		case p.Default != "":
			qp[p.Name] = p.Default
		}
	}
	return qp
}

// decodeInput returns a nil input when the route takes no body, or the body is empty
func (as *apiServer) decodeInput(res http.ResponseWriter, req *http.Request, route *oapispec.Route) (interface{}, int, error) {
	if route.JSONInputValue == nil || req.Method == http.MethodGet || req.Method == http.MethodDelete {
		return nil, 0, nil
	}
	input := route.JSONInputValue()
	if req.ContentLength == 0 {
		return input, 0, nil
	}
	if !strings.HasPrefix(strings.ToLower(req.Header.Get("Content-Type")), "application/json") {
		return nil, http.StatusUnsupportedMediaType, i18n.NewError(req.Context(), i18n.MsgInvalidContentType)
	}
	if err := json.NewDecoder(http.MaxBytesReader(res, req.Body, as.maxRequestBodySize)).Decode(input); err != nil {
		return nil, http.StatusBadRequest, i18n.WrapError(req.Context(), err, i18n.MsgJSONDecodeFailed)
	}
	return input, 0, nil
}

func (as *apiServer) routeHandler(o orchestrator.Orchestrator, route *oapispec.Route) http.HandlerFunc {
	return as.wrap(func(res http.ResponseWriter, req *http.Request) (int, error) {
		input, status, err := as.decodeInput(res, req, route)
		if err != nil {
			return status, err
		}
		r := &oapispec.APIRequest{
			Ctx:           req.Context(),
			Or:            o,
			Req:           req,
			PP:            pathParams(req, route),
			QP:            queryParams(req, route),
			Input:         input,
			SuccessStatus: http.StatusOK,
		}
		if route.FilterFactory != nil {
			if r.Filter, err = as.buildFilter(req, route.FilterFactory); err != nil {
				return http.StatusBadRequest, err
			}
		}
		if len(route.JSONOutputCodes) > 0 {
			r.SuccessStatus = route.JSONOutputCodes[0]
		}
		output, err := route.JSONHandler(r)
		if err != nil {
			return r.SuccessStatus, err
		}
		return as.handleOutput(req.Context(), res, r.SuccessStatus, output)
	})
}

func isNilOutput(output interface{}) bool {
	if output == nil {
		return true
	}
	v := reflect.ValueOf(output)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func (as *apiServer) handleOutput(ctx context.Context, res http.ResponseWriter, status int, output interface{}) (int, error) {
	if isNilOutput(output) {
		if status != http.StatusNoContent {
			return http.StatusNotFound, i18n.NewError(ctx, i18n.Msg404NoResult)
		}
		res.WriteHeader(http.StatusNoContent)
		return status, nil
	}
	b, err := json.Marshal(output)
	if err != nil {
		return http.StatusInternalServerError, i18n.WrapError(ctx, err, i18n.MsgResponseMarshalError)
	}
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	_, _ = res.Write(b)
	return status, nil
}
