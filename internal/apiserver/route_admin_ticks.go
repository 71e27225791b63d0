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
	"net/http"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/oapispec"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// The admin tick routes let an external cron drive the same idempotent work as the in-process scheduler

var postAdminProcessBatches = &oapispec.Route{
	Name:            "postAdminProcessBatches",
	Path:            "batches/process",
	Method:          http.MethodPost,
	Description:     i18n.MsgAdminProcessBatches,
	JSONInputValue:  nil,
	JSONOutputValue: func() interface{} { return &tktypes.TickResult{} },
	JSONOutputCodes: []int{http.StatusOK},
	JSONHandler: func(r *oapispec.APIRequest) (output interface{}, err error) {
		return r.Or.ProcessReadyBatches(r.Ctx)
	},
}

var postAdminAdvanceAnchors = &oapispec.Route{
	Name:            "postAdminAdvanceAnchors",
	Path:            "anchors/advance",
	Method:          http.MethodPost,
	Description:     i18n.MsgAdminAdvanceAnchors,
	JSONInputValue:  nil,
	JSONOutputValue: func() interface{} { return &tktypes.TickResult{} },
	JSONOutputCodes: []int{http.StatusOK},
	JSONHandler: func(r *oapispec.APIRequest) (output interface{}, err error) {
		return r.Or.AdvancePendingAnchors(r.Ctx)
	},
}

var postAdminExpireTickets = &oapispec.Route{
	Name:            "postAdminExpireTickets",
	Path:            "tickets/expire",
	Method:          http.MethodPost,
	Description:     i18n.MsgAdminExpireTickets,
	JSONInputValue:  nil,
	JSONOutputValue: func() interface{} { return &tktypes.TickResult{} },
	JSONOutputCodes: []int{http.StatusOK},
	JSONHandler: func(r *oapispec.APIRequest) (output interface{}, err error) {
		return r.Or.ExpireTickets(r.Ctx)
	},
}
