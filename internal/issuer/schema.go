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

package issuer

import (
	"context"
	"strings"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/xeipuuv/gojsonschema"
)

const ticketRequestSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["bookingId", "riderId", "driverId", "routeId", "tripDate", "seatNumber", "pickupId", "dropoffId", "fare"],
	"properties": {
		"bookingId":  { "type": "string", "minLength": 1, "maxLength": 64 },
		"riderId":    { "type": "string", "minLength": 1, "maxLength": 64 },
		"driverId":   { "type": "string", "minLength": 1, "maxLength": 64 },
		"routeId":    { "type": "string", "minLength": 1, "maxLength": 64 },
		"pickupId":   { "type": "string", "minLength": 1, "maxLength": 64 },
		"dropoffId":  { "type": "string", "minLength": 1, "maxLength": 64 },
		"tripDate":   { "type": "string", "format": "date-time" },
		"seatNumber": { "type": "integer", "minimum": 1 },
		"fare":       { "type": "string", "pattern": "^\\d+(\\.\\d{1,2})?$" }
	}
}`

type requestValidator struct {
	schema *gojsonschema.Schema
}

func newRequestValidator(ctx context.Context) (*requestValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(ticketRequestSchema))
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgSchemaLoadFailed)
	}
	return &requestValidator{schema: schema}, nil
}

// requestDocument maps the typed request onto the JSON document the schema describes.
// Absent values are left out, so they are reported as missing rather than as empty.
func requestDocument(req *tktypes.TicketRequest) map[string]interface{} {
	doc := map[string]interface{}{
		"seatNumber": req.SeatNumber,
	}
	for k, v := range map[string]string{
		"bookingId": req.BookingID,
		"riderId":   req.RiderID,
		"driverId":  req.DriverID,
		"routeId":   req.RouteID,
		"pickupId":  req.PickupID,
		"dropoffId": req.DropoffID,
		"fare":      req.Fare.String(),
	} {
		if v != "" {
			doc[k] = v
		}
	}
	if !req.TripDate.IsZero() {
		doc["tripDate"] = req.TripDate.String()
	}
	return doc
}

func (rv *requestValidator) Validate(ctx context.Context, req *tktypes.TicketRequest) error {
	if req == nil {
		return i18n.NewError(ctx, i18n.MsgValidationError, "no request")
	}
	res, err := rv.schema.Validate(gojsonschema.NewGoLoader(requestDocument(req)))
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgValidationError, err)
	}
	if !res.Valid() {
		errStrings := make([]string, len(res.Errors()))
		for i, e := range res.Errors() {
			errStrings[i] = e.String()
		}
		return i18n.NewError(ctx, i18n.MsgValidationError, strings.Join(errStrings, ", "))
	}
	return nil
}

// normalizeFare renders a validated fare with exactly two fraction digits
func normalizeFare(ctx context.Context, fare string) (string, error) {
	whole, frac := fare, ""
	if dot := strings.IndexByte(fare, '.'); dot >= 0 {
		whole, frac = fare[:dot], fare[dot+1:]
	}
	if whole == "" || len(frac) > 2 {
		return "", i18n.NewError(ctx, i18n.MsgInvalidFare, fare)
	}
	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	return whole + "." + frac + strings.Repeat("0", 2-len(frac)), nil
}
