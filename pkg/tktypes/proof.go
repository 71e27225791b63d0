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

import (
	"context"
	"database/sql/driver"
	"encoding/json"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
)

// ProofSide records which side of the combine the sibling digest sits on
type ProofSide string

const (
	ProofSideLeft  ProofSide = "left"
	ProofSideRight ProofSide = "right"
)

// ProofStep is one sibling digest on the path from a leaf to the root
type ProofStep struct {
	Hash *Bytes32  `json:"hash"`
	Side ProofSide `json:"side"`
}

// ProofPath is the ordered list of siblings, leaf level first
type ProofPath []*ProofStep

// MerkleProof is the inclusion proof of one ticket in one batch, keyed by (batchId, ticketId)
type MerkleProof struct {
	BatchID       *UUID     `json:"batchId"`
	TicketID      *UUID     `json:"ticketId"`
	TicketHash    *Bytes32  `json:"ticketHash"`
	LeafIndex     int64     `json:"leafIndex"`
	MerkleRoot    *Bytes32  `json:"merkleRoot"`
	HashAlgorithm string    `json:"hashAlgorithm"`
	Path          ProofPath `json:"path"`
}

// Scan implements sql.Scanner
func (pp *ProofPath) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		*pp = nil
		return nil
	case string:
		return json.Unmarshal([]byte(src), pp)
	case []byte:
		return json.Unmarshal(src, pp)
	default:
		return i18n.NewError(context.Background(), i18n.MsgScanFailed, src, pp)
	}
}

// Value implements sql.Valuer
func (pp ProofPath) Value() (driver.Value, error) {
	if pp == nil {
		return nil, nil
	}
	b, err := json.Marshal(pp)
	return string(b), err
}
