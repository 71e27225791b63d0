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
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

const (
	QREncodingJSON = "json"
	QREncodingCBOR = "cbor"
)

var cborEncMode cbor.EncMode

func init() {
	var err error
	if cborEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
}

// cborQRPayload is the compact binary layout, with integer keys and raw bytes,
// to keep QR codes at a scannable density
type cborQRPayload struct {
	TicketID   []byte `cbor:"1,keyasint"`
	BookingID  string `cbor:"2,keyasint"`
	Hash       []byte `cbor:"3,keyasint"`
	Signature  []byte `cbor:"4,keyasint"`
	PublicKey  []byte `cbor:"5,keyasint"`
	TripDate   int64  `cbor:"6,keyasint"`
	SeatNumber int64  `cbor:"7,keyasint"`
}

// QRCodec renders the QR payload of a ticket in the configured encoding
type QRCodec interface {
	Encoding() string
	Encode(ctx context.Context, payload *tktypes.QRPayload) (string, error)
}

func NewQRCodec(ctx context.Context, encoding string) (QRCodec, error) {
	switch strings.ToLower(encoding) {
	case QREncodingJSON, "":
		return &jsonCodec{}, nil
	case QREncodingCBOR:
		return &cborCodec{}, nil
	default:
		return nil, i18n.NewError(ctx, i18n.MsgUnknownQREncoding, encoding)
	}
}

type jsonCodec struct{}

func (c *jsonCodec) Encoding() string { return QREncodingJSON }

func (c *jsonCodec) Encode(ctx context.Context, payload *tktypes.QRPayload) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", i18n.WrapError(ctx, err, i18n.MsgQREncodeFailed, payload.TicketID)
	}
	return string(b), nil
}

type cborCodec struct{}

func (c *cborCodec) Encoding() string { return QREncodingCBOR }

func (c *cborCodec) Encode(ctx context.Context, payload *tktypes.QRPayload) (string, error) {
	if payload.TicketID == nil || payload.Hash == nil || payload.TripDate == nil {
		return "", i18n.NewError(ctx, i18n.MsgQREncodeFailed, payload.TicketID)
	}
	wire := &cborQRPayload{
		TicketID:   payload.TicketID[:],
		BookingID:  payload.BookingID,
		Hash:       payload.Hash[:],
		Signature:  payload.Signature,
		PublicKey:  payload.PublicKey,
		TripDate:   payload.TripDate.Time().Unix(),
		SeatNumber: payload.SeatNumber,
	}
	b, err := cborEncMode.Marshal(wire)
	if err != nil {
		return "", i18n.WrapError(ctx, err, i18n.MsgQREncodeFailed, payload.TicketID)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeQRPayload accepts either encoding. A JSON payload is always an object, so the
// leading brace tells the two apart without configuration.
func DecodeQRPayload(ctx context.Context, payload string) (*tktypes.QRPayload, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, i18n.NewError(ctx, i18n.MsgVerifyPayloadRequired)
	}
	var qr tktypes.QRPayload
	if strings.HasPrefix(payload, "{") {
		if err := json.Unmarshal([]byte(payload), &qr); err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgInvalidQRPayload, err)
		}
	} else {
		b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgInvalidQRPayload, err)
		}
		var wire cborQRPayload
		if err := cbor.Unmarshal(b, &wire); err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgInvalidQRPayload, err)
		}
		if len(wire.TicketID) != 16 || len(wire.Hash) != 32 {
			return nil, i18n.NewError(ctx, i18n.MsgInvalidQRPayload, "bad identifier lengths")
		}
		var ticketID tktypes.UUID
		var hash tktypes.Bytes32
		copy(ticketID[:], wire.TicketID)
		copy(hash[:], wire.Hash)
		qr = tktypes.QRPayload{
			TicketID:   &ticketID,
			BookingID:  wire.BookingID,
			Hash:       &hash,
			Signature:  wire.Signature,
			PublicKey:  wire.PublicKey,
			TripDate:   tktypes.FromTime(time.Unix(wire.TripDate, 0)),
			SeatNumber: wire.SeatNumber,
		}
	}
	if qr.Hash == nil || qr.TicketID == nil || len(qr.Signature) == 0 || len(qr.PublicKey) == 0 {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidQRPayload, "missing hash, ticketId, signature or publicKey")
	}
	return &qr, nil
}
