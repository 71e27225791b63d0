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

package tktypes

import "encoding/json"

// TicketStatus is the lifecycle state of an issued ticket
type TicketStatus string

const (
	// TicketStatusPending is the transient state while issuance is in progress, and is never persisted
	TicketStatusPending TicketStatus = "pending"
	// TicketStatusValid is a signed, boardable ticket
	TicketStatusValid TicketStatus = "valid"
	// TicketStatusUsed is set by trip completion / boarding
	TicketStatusUsed TicketStatus = "used"
	// TicketStatusExpired is set by the cleanup tick once expiresAt has passed
	TicketStatusExpired TicketStatus = "expired"
	// TicketStatusRevoked is set on trip cancellation
	TicketStatusRevoked TicketStatus = "revoked"
)

// TicketRequest is the ticket generation request from the booking collaborator
type TicketRequest struct {
	BookingID  string      `json:"bookingId"`
	RiderID    string      `json:"riderId"`
	DriverID   string      `json:"driverId"`
	RouteID    string      `json:"routeId"`
	TripDate   *Timestamp  `json:"tripDate"`
	SeatNumber int64       `json:"seatNumber"`
	PickupID   string      `json:"pickupId"`
	DropoffID  string      `json:"dropoffId"`
	Fare       json.Number `json:"fare"`
}

// Ticket is the signed, offline-verifiable travel ticket for exactly one booking
type Ticket struct {
	ID               *UUID        `json:"id"`
	BookingID        string       `json:"bookingId"`
	RiderID          string       `json:"riderId"`
	DriverID         string       `json:"driverId"`
	RouteID          string       `json:"routeId"`
	TripDate         *Timestamp   `json:"tripDate"`
	SeatNumber       int64        `json:"seatNumber"`
	PickupID         string       `json:"pickupId"`
	DropoffID        string       `json:"dropoffId"`
	Fare             string       `json:"fare"`
	CanonicalPayload string       `json:"canonicalPayload"`
	HashAlgorithm    string       `json:"hashAlgorithm"`
	Hash             *Bytes32     `json:"hash"`
	Code             string       `json:"code"`
	Signature        HexBytes     `json:"signature"`
	PublicKey        HexBytes     `json:"publicKey"`
	QRPayload        string       `json:"qrPayload"`
	Status           TicketStatus `json:"status"`
	Created          *Timestamp   `json:"created"`
	ExpiresAt        *Timestamp   `json:"expiresAt"`
	BatchID          *UUID        `json:"batchId,omitempty"`
	LeafIndex        *int64       `json:"leafIndex,omitempty"`
	Sequence         int64        `json:"sequence"`
}

// QRPayload is the field-stable content encoded into the ticket QR code.
// It carries everything needed to verify the issuer signature offline.
type QRPayload struct {
	TicketID   *UUID      `json:"ticketId"`
	BookingID  string     `json:"bookingId"`
	Hash       *Bytes32   `json:"hash"`
	Signature  HexBytes   `json:"signature"`
	PublicKey  HexBytes   `json:"publicKey"`
	TripDate   *Timestamp `json:"tripDate"`
	SeatNumber int64      `json:"seatNumber"`
}

// TicketUpdateInput is the optional body on use/revoke transitions
type TicketUpdateInput struct {
	Reason string `json:"reason,omitempty"`
}
