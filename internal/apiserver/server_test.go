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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/metrics"
	"github.com/kaleido-io/ticketanchor/mocks/orchestratormocks"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestServer() *apiServer {
	config.Reset()
	metrics.Clear()
	InitConfig()
	return NewAPIServer().(*apiServer)
}

func newTestAPIServer() (*orchestratormocks.Orchestrator, *mux.Router) {
	mor := &orchestratormocks.Orchestrator{}
	as := newTestServer()
	return mor, as.createMuxRouter(mor)
}

func newTestAdminServer() (*orchestratormocks.Orchestrator, *mux.Router) {
	mor := &orchestratormocks.Orchestrator{}
	as := newTestServer()
	return mor, as.createAdminMuxRouter(mor)
}

func decodeError(t *testing.T, res *httptest.ResponseRecorder) string {
	var resBody restError
	err := json.NewDecoder(res.Body).Decode(&resBody)
	assert.NoError(t, err)
	return resBody.Error
}

func TestStartStopServer(t *testing.T) {
	config.Reset()
	metrics.Clear()
	InitConfig()
	apiConfigPrefix.Set(HTTPConfPort, 0)
	adminConfigPrefix.Set(HTTPConfPort, 0)
	metricsConfigPrefix.Set(HTTPConfPort, 0)
	config.Set(config.AdminEnabled, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // server will immediately shut down
	as := NewAPIServer()
	err := as.Serve(ctx, &orchestratormocks.Orchestrator{})
	assert.NoError(t, err)
}

func TestStartAPIFail(t *testing.T) {
	as := newTestServer()
	apiConfigPrefix.Set(HTTPConfAddress, "...://")
	err := as.Serve(context.Background(), &orchestratormocks.Orchestrator{})
	assert.Regexp(t, "TA10102", err)
}

func TestStartAdminFail(t *testing.T) {
	as := newTestServer()
	as.adminEnabled = true
	apiConfigPrefix.Set(HTTPConfPort, 0)
	adminConfigPrefix.Set(HTTPConfAddress, "...://")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := as.Serve(ctx, &orchestratormocks.Orchestrator{})
	assert.Regexp(t, "TA10102", err)
}

func TestStartMetricsFail(t *testing.T) {
	as := newTestServer()
	apiConfigPrefix.Set(HTTPConfPort, 0)
	metricsConfigPrefix.Set(HTTPConfAddress, "...://")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := as.Serve(ctx, &orchestratormocks.Orchestrator{})
	assert.Regexp(t, "TA10102", err)
}

func TestPostTicketCreated(t *testing.T) {
	o, r := newTestAPIServer()
	input := `{"bookingId":"B1","riderId":"R1","driverId":"D1","routeId":"RT1","tripDate":"2026-11-01T09:00:00Z","seatNumber":3,"pickupId":"P1","dropoffId":"P2","fare":"12.50"}`
	req := httptest.NewRequest("POST", "/api/v1/tickets", bytes.NewReader([]byte(input)))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	res := httptest.NewRecorder()

	o.On("IssueTicket", mock.Anything, mock.MatchedBy(func(tr *tktypes.TicketRequest) bool {
		return tr.BookingID == "B1" && tr.SeatNumber == 3 && tr.Fare.String() == "12.50"
	})).Return(&tktypes.Ticket{BookingID: "B1"}, true, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 201, res.Result().StatusCode)
	var ticket tktypes.Ticket
	err := json.NewDecoder(res.Body).Decode(&ticket)
	assert.NoError(t, err)
	assert.Equal(t, "B1", ticket.BookingID)
}

func TestPostTicketExisting(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("POST", "/api/v1/tickets", bytes.NewReader([]byte(`{"bookingId":"B1"}`)))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()

	o.On("IssueTicket", mock.Anything, mock.Anything).Return(&tktypes.Ticket{BookingID: "B1"}, false, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
}

func TestPostTicketValidationError(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("POST", "/api/v1/tickets", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()

	o.On("IssueTicket", mock.Anything, mock.Anything).
		Return(nil, false, i18n.NewError(context.Background(), i18n.MsgValidationError, "bookingId is required"))
	r.ServeHTTP(res, req)

	assert.Equal(t, 400, res.Result().StatusCode)
	assert.Regexp(t, "TA10140.*bookingId", decodeError(t, res))
}

func TestPostTicketDuplicateConflict(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("POST", "/api/v1/tickets", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()

	o.On("IssueTicket", mock.Anything, mock.Anything).
		Return(nil, false, i18n.NewError(context.Background(), i18n.MsgDuplicateTicket, "B1"))
	r.ServeHTTP(res, req)

	assert.Equal(t, 409, res.Result().StatusCode)
}

func TestPostTicketBadJSON(t *testing.T) {
	_, r := newTestAPIServer()
	req := httptest.NewRequest("POST", "/api/v1/tickets", bytes.NewReader([]byte(`{!json`)))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	assert.Equal(t, 400, res.Result().StatusCode)
	assert.Regexp(t, "TA10101", decodeError(t, res))
}

func TestPostTicketBodyTooLarge(t *testing.T) {
	config.Reset()
	metrics.Clear()
	InitConfig()
	config.Set(config.APIMaxRequestBodySize, "16B")
	as := NewAPIServer().(*apiServer)
	o := &orchestratormocks.Orchestrator{}
	r := as.createMuxRouter(o)
	req := httptest.NewRequest("POST", "/api/v1/tickets", bytes.NewReader([]byte(`{"bookingId":"a-booking-id-that-is-too-long"}`)))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	assert.Equal(t, 400, res.Result().StatusCode)
	assert.Regexp(t, "TA10101", decodeError(t, res))
	o.AssertNotCalled(t, "IssueTicket", mock.Anything, mock.Anything)
}

func TestPostTicketBadContentType(t *testing.T) {
	_, r := newTestAPIServer()
	req := httptest.NewRequest("POST", "/api/v1/tickets", bytes.NewReader([]byte(`bookingId=B1`)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	assert.Equal(t, 415, res.Result().StatusCode)
	assert.Regexp(t, "TA10197", decodeError(t, res))
}

func TestPostTicketUseEmptyBody(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("POST", "/api/v1/tickets/abc/use", nil)
	res := httptest.NewRecorder()

	o.On("MarkTicketUsed", mock.Anything, "abc", &tktypes.TicketUpdateInput{}).
		Return(&tktypes.Ticket{Status: tktypes.TicketStatusUsed}, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
}

func TestPostTicketRevokeWithReason(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("POST", "/api/v1/tickets/abc/revoke", bytes.NewReader([]byte(`{"reason":"trip cancelled"}`)))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()

	o.On("RevokeTicket", mock.Anything, "abc", &tktypes.TicketUpdateInput{Reason: "trip cancelled"}).
		Return(nil, i18n.NewError(context.Background(), i18n.MsgInvalidTicketTransition, "abc", "used", "revoked"))
	r.ServeHTTP(res, req)

	assert.Equal(t, 409, res.Result().StatusCode)
}

func TestGetTicketByIDNotFound(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/tickets/abc", nil)
	res := httptest.NewRecorder()

	o.On("GetTicketByID", mock.Anything, "abc").Return(nil, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 404, res.Result().StatusCode)
	assert.Regexp(t, "TA10198", decodeError(t, res))
}

func TestGetTicketProof(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/tickets/abc/proof", nil)
	res := httptest.NewRecorder()

	o.On("GetTicketProof", mock.Anything, "abc").Return(&tktypes.MerkleProof{LeafIndex: 2}, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
}

func TestGetTicketProofNotSealed(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/tickets/abc/proof", nil)
	res := httptest.NewRecorder()

	o.On("GetTicketProof", mock.Anything, "abc").Return(nil, i18n.NewError(context.Background(), i18n.MsgProofNotFound, "abc"))
	r.ServeHTTP(res, req)

	assert.Equal(t, 404, res.Result().StatusCode)
}

func TestPostVerify(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("POST", "/api/v1/verify", bytes.NewReader([]byte(`{"payload":"abcd","level":"chain"}`)))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()

	o.On("VerifyTicket", mock.Anything, &tktypes.VerifyRequest{Payload: "abcd", Level: tktypes.VerificationLevelChain}).
		Return(&tktypes.VerificationResult{Result: tktypes.VerificationValid, Level: tktypes.VerificationLevelChain}, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
	var result tktypes.VerificationResult
	err := json.NewDecoder(res.Body).Decode(&result)
	assert.NoError(t, err)
	assert.Equal(t, tktypes.VerificationValid, result.Result)
}

func TestGetTicketsFilter(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/tickets?status=valid&sort=-created&skip=5", nil)
	res := httptest.NewRecorder()

	o.On("GetTickets", mock.Anything, mock.MatchedBy(func(f database.Filter) bool {
		fi, err := f.Finalize()
		return err == nil && fi.String() == "( status == 'valid' ) sort=-created skip=5 limit=25"
	})).Return([]*tktypes.Ticket{{BookingID: "B1"}}, nil, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
	var tickets []*tktypes.Ticket
	err := json.NewDecoder(res.Body).Decode(&tickets)
	assert.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestGetTicketsWithCount(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/tickets?count", nil)
	res := httptest.NewRecorder()

	var ten int64 = 10
	o.On("GetTickets", mock.Anything, mock.Anything).
		Return([]*tktypes.Ticket{{}, {}}, &database.FilterResult{TotalCount: &ten}, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
	var resWithCount filterResultsWithCount
	err := json.NewDecoder(res.Body).Decode(&resWithCount)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), resWithCount.Count)
	assert.Equal(t, int64(10), resWithCount.Total)
}

func TestGetTicketsBadFilter(t *testing.T) {
	_, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/tickets?seatnumber=>abc", nil)
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	assert.Equal(t, 400, res.Result().StatusCode)
	assert.Regexp(t, "TA10124", decodeError(t, res))
}

func TestGetBatchesAndLeaves(t *testing.T) {
	o, r := newTestAPIServer()

	o.On("GetBatches", mock.Anything, mock.Anything).Return([]*tktypes.MerkleBatch{}, nil, nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/api/v1/batches?status=sealed", nil))
	assert.Equal(t, 200, res.Result().StatusCode)

	o.On("GetBatchByID", mock.Anything, "b1").Return(&tktypes.MerkleBatch{}, nil)
	res = httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/api/v1/batches/b1", nil))
	assert.Equal(t, 200, res.Result().StatusCode)

	o.On("GetBatchTickets", mock.Anything, "b1", mock.Anything).Return([]*tktypes.BatchTicket{}, nil, nil)
	res = httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/api/v1/batches/b1/tickets?sort=leafindex", nil))
	assert.Equal(t, 200, res.Result().StatusCode)

	o.AssertExpectations(t)
}

func TestGetAnchors(t *testing.T) {
	o, r := newTestAPIServer()

	o.On("GetAnchors", mock.Anything, mock.Anything).Return([]*tktypes.BlockchainAnchor{}, nil, nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/api/v1/anchors?status=submitted&status=pending", nil))
	assert.Equal(t, 200, res.Result().StatusCode)

	o.On("GetAnchorByID", mock.Anything, "a1").Return(nil, i18n.NewError(context.Background(), i18n.MsgAnchorNotFound, "a1"))
	res = httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/api/v1/anchors/a1", nil))
	assert.Equal(t, 404, res.Result().StatusCode)

	o.AssertExpectations(t)
}

func TestGetStatus(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	res := httptest.NewRecorder()

	o.On("Status", mock.Anything).Return(&tktypes.ServiceStatus{
		TicketHashAlgorithm: "sha256",
		Ledger:              tktypes.LedgerStatus{Name: "localledger", Reachable: true},
	}, nil)
	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
	var status tktypes.ServiceStatus
	err := json.NewDecoder(res.Body).Decode(&status)
	assert.NoError(t, err)
	assert.True(t, status.Ledger.Reachable)
}

func TestUnhintedErrorIs500(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	res := httptest.NewRecorder()

	o.On("Status", mock.Anything).Return(nil, fmt.Errorf("pop"))
	r.ServeHTTP(res, req)

	assert.Equal(t, 500, res.Result().StatusCode)
	assert.Equal(t, "pop", decodeError(t, res))
}

func TestRequestTimeout(t *testing.T) {
	o, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	req.Header.Set("Request-Timeout", "1ms")
	res := httptest.NewRecorder()

	o.On("Status", mock.Anything).Run(func(args mock.Arguments) {
		<-args[0].(context.Context).Done()
	}).Return(nil, fmt.Errorf("pop"))
	r.ServeHTTP(res, req)

	assert.Equal(t, 408, res.Result().StatusCode)
	assert.Regexp(t, "TA10196.*pop", decodeError(t, res))
}

func TestGetTimeout(t *testing.T) {
	as := newTestServer()
	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	assert.Equal(t, as.apiTimeout, as.getTimeout(req))

	req.Header.Set("Request-Timeout", "250")
	assert.Equal(t, "250ms", as.getTimeout(req).String())

	req.Header.Set("Request-Timeout", "bad")
	assert.Equal(t, as.apiTimeout, as.getTimeout(req))
}

func TestNotFound(t *testing.T) {
	_, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/v1/nope", nil)
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	assert.Equal(t, 404, res.Result().StatusCode)
	assert.Regexp(t, "TA10106", decodeError(t, res))
}

func TestSwaggerYAML(t *testing.T) {
	_, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/swagger.yaml", nil)
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
	assert.Equal(t, "application/x-yaml", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Body.String(), "operationId: postTicket")
	assert.Contains(t, res.Body.String(), "http://127.0.0.1:5000/api/v1")
}

func TestSwaggerJSON(t *testing.T) {
	_, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api/swagger.json", nil)
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
	var doc map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&doc)
	assert.NoError(t, err)
	assert.Contains(t, doc["paths"], "/tickets/{id}/proof")
}

func TestSwaggerUI(t *testing.T) {
	_, r := newTestAPIServer()
	req := httptest.NewRequest("GET", "/api", nil)
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	assert.Equal(t, 200, res.Result().StatusCode)
	assert.True(t, strings.Contains(res.Body.String(), "http://127.0.0.1:5000/api/swagger.yaml"))
}

func TestPublicURLOverride(t *testing.T) {
	as := newTestServer()
	apiConfigPrefix.Set(HTTPConfPublicURL, "https://tickets.example.com")
	assert.Equal(t, "https://tickets.example.com/admin", as.getPublicURL(apiConfigPrefix, "admin"))

	adminConfigPrefix.Set(HTTPConfTLSEnabled, true)
	assert.Equal(t, "https://127.0.0.1:5001", as.getPublicURL(adminConfigPrefix, ""))
}

func TestAdminTicks(t *testing.T) {
	o, r := newTestAdminServer()

	o.On("ProcessReadyBatches", mock.Anything).Return(&tktypes.TickResult{Processed: 2}, nil)
	o.On("AdvancePendingAnchors", mock.Anything).Return(&tktypes.TickResult{Processed: 1, Failed: 1}, nil)
	o.On("ExpireTickets", mock.Anything).Return(&tktypes.TickResult{}, nil)

	for _, path := range []string{"batches/process", "anchors/advance", "tickets/expire"} {
		res := httptest.NewRecorder()
		r.ServeHTTP(res, httptest.NewRequest("POST", "/admin/api/v1/"+path, nil))
		assert.Equal(t, 200, res.Result().StatusCode, path)
	}

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/admin/api/swagger.json", nil))
	assert.Equal(t, 200, res.Result().StatusCode)
	assert.Contains(t, res.Body.String(), "postAdminExpireTickets")

	o.AssertExpectations(t)
}

func TestAdminTickFails(t *testing.T) {
	o, r := newTestAdminServer()

	o.On("AdvancePendingAnchors", mock.Anything).Return(nil, i18n.NewError(context.Background(), i18n.MsgLedgerUnreachable, "ethereum"))
	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("POST", "/admin/api/v1/anchors/advance", nil))
	assert.Equal(t, 503, res.Result().StatusCode)
}

func TestMetricsRouter(t *testing.T) {
	as := newTestServer()
	r := as.createMetricsMuxRouter()
	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, res.Result().StatusCode)
}

func TestInstrumentedRoutesRecordMetrics(t *testing.T) {
	o, r := newTestAPIServer()
	o.On("Status", mock.Anything).Return(&tktypes.ServiceStatus{}, nil)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/status", nil))

	mfs, err := metrics.Registry().Gather()
	assert.NoError(t, err)
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "ta_apiserver_rest_requests_total" {
			found = true
			assert.Equal(t, "/api/v1/status", mf.GetMetric()[0].GetLabel()[2].GetValue())
		}
	}
	assert.True(t, found)
}

func TestHandleOutputNoContent(t *testing.T) {
	as := newTestServer()
	res := httptest.NewRecorder()
	status, err := as.handleOutput(context.Background(), res, http.StatusNoContent, nil)
	assert.NoError(t, err)
	assert.Equal(t, 204, status)
}

func TestHandleOutputMarshalFail(t *testing.T) {
	as := newTestServer()
	res := httptest.NewRecorder()
	status, err := as.handleOutput(context.Background(), res, http.StatusOK, map[bool]interface{}{true: make(chan int)})
	assert.Regexp(t, "TA10105", err)
	assert.Equal(t, 500, status)
}
