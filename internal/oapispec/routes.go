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

package oapispec

import (
	"context"
	"net/http"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/orchestrator"
	"github.com/kaleido-io/ticketanchor/pkg/database"
)

// Route is one REST operation. The same definition drives the mux registration
// and the generated OpenAPI document, so the two cannot drift.
type Route struct {
	Name        string
	Path        string // gorilla/mux template, relative to /api/v1
	Method      string
	Description i18n.MessageKey
	PathParams  []*PathParam
	QueryParams []*QueryParam

	// FilterFactory makes the route a filtered collection query
	FilterFactory database.QueryFactory

	JSONInputValue  func() interface{}
	JSONOutputValue func() interface{}
	JSONOutputCodes []int // first entry is the default success status
	JSONHandler     func(r *APIRequest) (output interface{}, err error)
}

type PathParam struct {
	Name        string
	Example     string
	Description i18n.MessageKey
}

type QueryParam struct {
	Name            string
	IsBool          bool
	Default         string
	ExampleFromConf config.RootKey
	Description     i18n.MessageKey
}

// APIRequest is what a route handler receives once params, filter and body are resolved
type APIRequest struct {
	Ctx    context.Context
	Or     orchestrator.Orchestrator
	Req    *http.Request
	QP     map[string]string
	PP     map[string]string
	Filter database.Filter
	Input  interface{}

	// SuccessStatus can be changed by the handler, such as an idempotent create returning 200
	SuccessStatus int
}
