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

// VerificationLevel is the strength of a verification, weakest first
type VerificationLevel string

const (
	// VerificationLevelSignature trusts the embedded hash, and checks the embedded signature
	VerificationLevelSignature VerificationLevel = "signature"
	// VerificationLevelProof additionally recombines the hash with a Merkle proof to a root
	VerificationLevelProof VerificationLevel = "proof"
	// VerificationLevelChain additionally confirms the root is anchored on the ledger
	VerificationLevelChain VerificationLevel = "chain"
)

// Rank orders the levels, with zero for unknown values
func (l VerificationLevel) Rank() int {
	switch l {
	case VerificationLevelSignature:
		return 1
	case VerificationLevelProof:
		return 2
	case VerificationLevelChain:
		return 3
	default:
		return 0
	}
}

// VerificationOutcome distinguishes a bad signature from a bad lifecycle state
type VerificationOutcome string

const (
	VerificationValid    VerificationOutcome = "valid"
	VerificationInvalid  VerificationOutcome = "invalid"
	VerificationExpired  VerificationOutcome = "expired"
	VerificationRevoked  VerificationOutcome = "revoked"
	VerificationNotFound VerificationOutcome = "notfound"
)

// VerifyRequest is a QR payload, optionally with a proof and a claimed root
type VerifyRequest struct {
	Payload string            `json:"payload"`
	Level   VerificationLevel `json:"level,omitempty"`
	Proof   ProofPath         `json:"proof,omitempty"`
	Root    *Bytes32          `json:"root,omitempty"`
}

// VerificationResult reports the outcome and the strongest level that was achieved
type VerificationResult struct {
	Result          VerificationOutcome `json:"result"`
	Level           VerificationLevel   `json:"level,omitempty"`
	RequestedLevel  VerificationLevel   `json:"requestedLevel"`
	Reason          string              `json:"reason,omitempty"`
	TicketID        *UUID               `json:"ticketId,omitempty"`
	BookingID       string              `json:"bookingId,omitempty"`
	Hash            *Bytes32            `json:"hash,omitempty"`
	BatchID         *UUID               `json:"batchId,omitempty"`
	MerkleRoot      *Bytes32            `json:"merkleRoot,omitempty"`
	AnchorStatus    AnchorStatus        `json:"anchorStatus,omitempty"`
	TransactionHash string              `json:"transactionHash,omitempty"`
	Checked         *Timestamp          `json:"checked"`
}

// ServiceStatus is returned on the status API
type ServiceStatus struct {
	PublicKey           HexBytes     `json:"publicKey"`
	TicketHashAlgorithm string       `json:"ticketHashAlgorithm"`
	BatchHashAlgorithm  string       `json:"batchHashAlgorithm"`
	Ledger              LedgerStatus `json:"ledger"`
	Batch               BatchConfig  `json:"batch"`
}

type LedgerStatus struct {
	Name          string `json:"name"`
	Reachable     bool   `json:"reachable"`
	EstimatedCost string `json:"estimatedCost,omitempty"`
	Confirmations int64  `json:"confirmations"`
}

type BatchConfig struct {
	MinSize int64  `json:"minSize"`
	MaxAge  string `json:"maxAge"`
}

// TickResult summarizes the work done by one invocation of a scheduler tick
type TickResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped,omitempty"`
	Failed    int `json:"failed,omitempty"`
}
