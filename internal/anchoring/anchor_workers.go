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

package anchoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeFailed
)

// runWorkers hands each anchor to exactly one of a bounded set of goroutines, and
// returns once all of them have finished
func (as *anchorSubmitter) runWorkers(ctx context.Context, anchors []*tktypes.BlockchainAnchor) *tktypes.TickResult {
	result := &tktypes.TickResult{}
	if len(anchors) == 0 {
		return result
	}

	workers := as.workers
	if workers > len(anchors) {
		workers = len(anchors)
	}
	workQueue := make(chan *tktypes.BlockchainAnchor)
	var resultMux sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerIndex int) {
			defer wg.Done()
			wctx := log.WithLogField(ctx, "job", fmt.Sprintf("anchor_%.3d", workerIndex))
			for anchor := range workQueue {
				o := as.processAnchor(wctx, anchor)
				resultMux.Lock()
				switch o {
				case outcomeProcessed:
					result.Processed++
				case outcomeSkipped:
					result.Skipped++
				default:
					result.Failed++
				}
				resultMux.Unlock()
			}
		}(i)
	}
	for _, anchor := range anchors {
		workQueue <- anchor
	}
	close(workQueue)
	wg.Wait()
	return result
}

// processAnchor skips an anchor that another tick in this process is already handling.
// Across processes, pending anchors are protected by the claim, and submitted anchors
// by the status guard on every update.
func (as *anchorSubmitter) processAnchor(ctx context.Context, anchor *tktypes.BlockchainAnchor) outcome {
	if !as.markInflight(anchor.ID) {
		log.L(ctx).Debugf("Anchor %s is already being processed", anchor.ID)
		return outcomeSkipped
	}
	defer as.clearInflight(anchor.ID)

	ctx = log.WithLogField(ctx, "anchor", anchor.ID.String())
	var err error
	var o outcome
	switch anchor.Status {
	case tktypes.AnchorStatusPending:
		o, err = as.submitAnchor(ctx, anchor)
	case tktypes.AnchorStatusSubmitted:
		o, err = as.pollAnchor(ctx, anchor)
	default:
		return outcomeSkipped
	}
	if err != nil {
		log.L(ctx).Errorf("Failed to advance anchor %s: %s", anchor.ID, err)
		return outcomeFailed
	}
	return o
}

func (as *anchorSubmitter) markInflight(id *tktypes.UUID) bool {
	as.inflightMux.Lock()
	defer as.inflightMux.Unlock()
	if as.inflight[*id] {
		return false
	}
	as.inflight[*id] = true
	return true
}

func (as *anchorSubmitter) clearInflight(id *tktypes.UUID) {
	as.inflightMux.Lock()
	defer as.inflightMux.Unlock()
	delete(as.inflight, *id)
}
