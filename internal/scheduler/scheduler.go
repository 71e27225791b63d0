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

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// TickFunc is one idempotent unit of background work
type TickFunc func(ctx context.Context) (*tktypes.TickResult, error)

// Tick names a TickFunc and the interval it runs on
type Tick struct {
	Name     string
	Interval time.Duration
	Run      TickFunc
}

type Scheduler interface {
	Start() error
	WaitStop()
	// RunOnce runs the named tick immediately, unless a run of it is already in progress
	RunOnce(ctx context.Context, name string) (result *tktypes.TickResult, ran bool, err error)
}

type scheduler struct {
	ctx         context.Context
	tickTimeout time.Duration
	ticks       map[string]*tickRunner
	order       []string
	started     bool
	wg          sync.WaitGroup
}

type tickRunner struct {
	Tick
	running int32
}

func NewScheduler(ctx context.Context, ticks ...*Tick) (Scheduler, error) {
	s := &scheduler{
		ctx:         ctx,
		tickTimeout: config.GetDuration(config.SchedulerTickTimeout),
		ticks:       make(map[string]*tickRunner),
	}
	for _, t := range ticks {
		if t == nil || t.Run == nil || t.Interval <= 0 {
			return nil, i18n.NewError(ctx, i18n.MsgInitializationNilDepError)
		}
		s.ticks[t.Name] = &tickRunner{Tick: *t}
		s.order = append(s.order, t.Name)
	}
	return s, nil
}

func (s *scheduler) Start() error {
	s.started = true
	for _, name := range s.order {
		tr := s.ticks[name]
		s.wg.Add(1)
		go s.tickLoop(tr)
	}
	return nil
}

// WaitStop returns once every tick loop has seen the context close
func (s *scheduler) WaitStop() {
	if s.started {
		s.wg.Wait()
	}
}

func (s *scheduler) RunOnce(ctx context.Context, name string) (*tktypes.TickResult, bool, error) {
	tr, ok := s.ticks[name]
	if !ok {
		return nil, false, i18n.NewError(ctx, i18n.MsgUnknownTick, name)
	}
	return s.runTick(ctx, tr)
}

func (s *scheduler) tickLoop(tr *tickRunner) {
	defer s.wg.Done()
	ctx := log.WithLogField(s.ctx, "role", fmt.Sprintf("scheduler:%s", tr.Name))
	l := log.L(ctx)
	l.Infof("Started %s tick every %s", tr.Name, tr.Interval)
	ticker := time.NewTicker(tr.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// Each firing runs in its own goroutine, so a long tick is skipped rather than queued
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				_, _, _ = s.runTick(ctx, tr)
			}()
		case <-s.ctx.Done():
			l.Debugf("Exiting %s tick loop", tr.Name)
			return
		}
	}
}

func (s *scheduler) runTick(ctx context.Context, tr *tickRunner) (*tktypes.TickResult, bool, error) {
	ctx = log.WithLogField(ctx, "tick", tktypes.ShortID())
	l := log.L(ctx)
	if !atomic.CompareAndSwapInt32(&tr.running, 0, 1) {
		l.Debugf("Skipping %s tick, previous run still in progress", tr.Name)
		return nil, false, nil
	}
	defer atomic.StoreInt32(&tr.running, 0)

	ctx, cancel := context.WithTimeout(ctx, s.tickTimeout)
	defer cancel()
	start := time.Now()
	result, err := tr.Run(ctx)
	if err != nil {
		l.Errorf("Tick %s failed after %s: %s", tr.Name, time.Since(start), err)
		return nil, true, err
	}
	if result == nil {
		result = &tktypes.TickResult{}
	}
	if result.Processed > 0 || result.Failed > 0 {
		l.Infof("Tick %s processed=%d skipped=%d failed=%d in %s", tr.Name, result.Processed, result.Skipped, result.Failed, time.Since(start))
	} else {
		l.Debugf("Tick %s idle in %s", tr.Name, time.Since(start))
	}
	return result, true, nil
}
