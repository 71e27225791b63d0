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

// BatchStatus is the lifecycle state of a Merkle batch
type BatchStatus string

const (
	// BatchStatusPending is the open batch, which is the only state that accepts appends
	BatchStatusPending BatchStatus = "pending"
	// BatchStatusBuilding is held only inside the sealing transaction
	BatchStatusBuilding BatchStatus = "building"
	// BatchStatusReady has a root and proofs, and is waiting for anchoring
	BatchStatusReady BatchStatus = "ready"
	// BatchStatusAnchored has a confirmed anchor on the ledger
	BatchStatusAnchored BatchStatus = "anchored"
	// BatchStatusFailed could not be anchored, and requires operator attention
	BatchStatusFailed BatchStatus = "failed"
)

// MerkleBatch is a frozen or in-progress group of tickets
type MerkleBatch struct {
	ID            *UUID       `json:"id"`
	Status        BatchStatus `json:"status"`
	HashAlgorithm string      `json:"hashAlgorithm"`
	MerkleRoot    *Bytes32    `json:"merkleRoot,omitempty"`
	TicketCount   int64       `json:"ticketCount"`
	AnchorID      *UUID       `json:"anchorId,omitempty"`
	Created       *Timestamp  `json:"created"`
	Sealed        *Timestamp  `json:"sealed,omitempty"`
	Sequence      int64       `json:"sequence"`
}

// BatchTicket is a reference from a batch to one member ticket hash, in leaf order
type BatchTicket struct {
	BatchID    *UUID    `json:"batchId"`
	TicketID   *UUID    `json:"ticketId"`
	TicketHash *Bytes32 `json:"ticketHash"`
	LeafIndex  int64    `json:"leafIndex"`
}
