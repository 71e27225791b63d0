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

package merkle

import (
	"context"

	"github.com/kaleido-io/ticketanchor/internal/hashing"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// Tree is a binary Merkle tree, built bottom-up over leaves in the order supplied.
//
// Adjacent nodes are paired left-to-right at every level. A lone node at the end of a level
// is paired with itself. At least one combining round always runs, so a single leaf tree
// has the root combine(leaf, leaf) and every leaf has a non-empty proof.
type Tree struct {
	hasher hashing.Hasher
	levels [][]*tktypes.Bytes32
}

// Build constructs the tree. An empty leaf set is an error.
func Build(ctx context.Context, hasher hashing.Hasher, leaves []*tktypes.Bytes32) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, i18n.NewError(ctx, i18n.MsgTreeConstructionEmpty)
	}
	t := &Tree{
		hasher: hasher,
		levels: [][]*tktypes.Bytes32{append([]*tktypes.Bytes32{}, leaves...)},
	}
	level := t.levels[0]
	for {
		next := make([]*tktypes.Bytes32, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hasher.Combine(level[i], right))
		}
		t.levels = append(t.levels, next)
		if len(next) == 1 {
			break
		}
		level = next
	}
	return t, nil
}

// Root is the single digest summarizing every leaf
func (t *Tree) Root() *tktypes.Bytes32 {
	return t.levels[len(t.levels)-1][0]
}

// LeafCount is the number of leaves the tree was built from
func (t *Tree) LeafCount() int {
	return len(t.levels[0])
}

// Proof returns the sibling path from the leaf at index up to the root
func (t *Tree) Proof(ctx context.Context, index int) (tktypes.ProofPath, error) {
	if index < 0 || index >= t.LeafCount() {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidLeafIndex, index, t.LeafCount())
	}
	path := make(tktypes.ProofPath, 0, len(t.levels)-1)
	for _, level := range t.levels[0 : len(t.levels)-1] {
		var step *tktypes.ProofStep
		if index%2 == 0 {
			sibling := index + 1
			if sibling >= len(level) {
				sibling = index
			}
			step = &tktypes.ProofStep{Hash: level[sibling], Side: tktypes.ProofSideRight}
		} else {
			step = &tktypes.ProofStep{Hash: level[index-1], Side: tktypes.ProofSideLeft}
		}
		path = append(path, step)
		index /= 2
	}
	return path, nil
}

// ComputeRoot folds a leaf up through a proof path, honoring the recorded sides
func ComputeRoot(ctx context.Context, hasher hashing.Hasher, leaf *tktypes.Bytes32, path tktypes.ProofPath) (*tktypes.Bytes32, error) {
	current := leaf
	for _, step := range path {
		if step == nil || step.Hash == nil {
			return nil, i18n.NewError(ctx, i18n.MsgInvalidProofSide, "")
		}
		switch step.Side {
		case tktypes.ProofSideLeft:
			current = hasher.Combine(step.Hash, current)
		case tktypes.ProofSideRight:
			current = hasher.Combine(current, step.Hash)
		default:
			return nil, i18n.NewError(ctx, i18n.MsgInvalidProofSide, step.Side)
		}
	}
	return current, nil
}

// VerifyProof checks that a leaf and its proof path reproduce the expected root exactly
func VerifyProof(ctx context.Context, hasher hashing.Hasher, leaf *tktypes.Bytes32, path tktypes.ProofPath, root *tktypes.Bytes32) bool {
	if leaf == nil || root == nil || len(path) == 0 {
		return false
	}
	computed, err := ComputeRoot(ctx, hasher, leaf, path)
	return err == nil && computed.Equals(root)
}
