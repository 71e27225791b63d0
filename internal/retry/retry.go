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

package retry

import (
	"context"
	"math"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
)

const (
	DefaultFactor = 2.0
)

// Retry is a concurrency safe structure that configures a simple backoff retry mechanism
type Retry struct {
	InitialDelay time.Duration
	MaximumDelay time.Duration
	Factor       float64
}

// NewFromConfig builds a retry from an initialDelay/maxDelay/factor triple of root keys
func NewFromConfig(initialDelay, maxDelay, factor config.RootKey) *Retry {
	return &Retry{
		InitialDelay: config.GetDuration(initialDelay),
		MaximumDelay: config.GetDuration(maxDelay),
		Factor:       config.GetFloat64(factor),
	}
}

func (r *Retry) factor() float64 {
	if r.Factor < 1 { // Can't reduce
		return DefaultFactor
	}
	return r.Factor
}

// Delay returns the delay to wait after the given (1-based) failed attempt, growing
// exponentially from the initial delay and capped at the maximum delay
func (r *Retry) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(r.InitialDelay) * math.Pow(r.factor(), float64(attempt-1))
	if r.MaximumDelay > 0 && (delay > float64(r.MaximumDelay) || math.IsInf(delay, 1)) {
		return r.MaximumDelay
	}
	return time.Duration(delay)
}

// Do invokes the function until the function returns false, or the retry pops.
// This simple interface doesn't pass through errors or return values, on the basis
// you'll be using a closure for that.
func (r *Retry) Do(ctx context.Context, f func(attempt int) (retry bool, err error)) error {
	attempt := 0
	for {
		attempt++
		retry, err := f(attempt)
		if !retry {
			return err
		}
		if err != nil {
			log.L(ctx).Debugf("Retrying after attempt %d: %s", attempt, err)
		}

		// Limit the delay based on the context deadline
		delay := r.Delay(attempt)
		if deadline, dok := ctx.Deadline(); dok {
			timeleft := time.Until(deadline)
			if timeleft < delay {
				delay = timeleft
			}
		}

		select {
		case <-ctx.Done():
			return i18n.NewError(ctx, i18n.MsgContextCanceled)
		case <-time.After(delay):
		}
	}
}
