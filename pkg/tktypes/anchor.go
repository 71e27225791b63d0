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

// AnchorStatus is the lifecycle state of a Merkle root submission to the ledger
type AnchorStatus string

const (
	AnchorStatusPending   AnchorStatus = "pending"
	AnchorStatusSubmitted AnchorStatus = "submitted"
	AnchorStatusConfirmed AnchorStatus = "confirmed"
	AnchorStatusFailed    AnchorStatus = "failed"
	AnchorStatusExpired   AnchorStatus = "expired"
)

// BlockchainAnchor tracks the publication of one batch root to the ledger
type BlockchainAnchor struct {
	ID              *UUID        `json:"id"`
	BatchID         *UUID        `json:"batchId"`
	MerkleRoot      *Bytes32     `json:"merkleRoot"`
	Ledger          string       `json:"ledger"`
	TransactionHash string       `json:"transactionHash,omitempty"`
	Status          AnchorStatus `json:"status"`
	Confirmations   int64        `json:"confirmations"`
	Retries         int          `json:"retries"`
	Error           string       `json:"error,omitempty"`
	Created         *Timestamp   `json:"created"`
	Submitted       *Timestamp   `json:"submitted,omitempty"`
	Confirmed       *Timestamp   `json:"confirmed,omitempty"`
	NextAttempt     *Timestamp   `json:"nextAttempt,omitempty"`
	Sequence        int64        `json:"sequence"`
}

// IsFinal is true for the states the submitter never moves out of
func (s AnchorStatus) IsFinal() bool {
	return s == AnchorStatusConfirmed || s == AnchorStatusFailed || s == AnchorStatusExpired
}
