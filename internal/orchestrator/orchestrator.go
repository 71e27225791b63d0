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

package orchestrator

import (
	"context"

	"github.com/kaleido-io/ticketanchor/internal/anchoring"
	"github.com/kaleido-io/ticketanchor/internal/batching"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/database/difactory"
	"github.com/kaleido-io/ticketanchor/internal/events/bookingamqp"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/issuer"
	"github.com/kaleido-io/ticketanchor/internal/ledger/lfactory"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/metrics"
	"github.com/kaleido-io/ticketanchor/internal/retry"
	"github.com/kaleido-io/ticketanchor/internal/scheduler"
	"github.com/kaleido-io/ticketanchor/internal/signer"
	"github.com/kaleido-io/ticketanchor/internal/verifier"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/ledger"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

var (
	databaseConfig = config.NewPluginConfig("database")
	ledgerConfig   = config.NewPluginConfig("ledger")
)

const (
	TickBatches = "batches"
	TickAnchors = "anchors"
	TickExpiry  = "expiry"
)

// Orchestrator is the main interface behind the API, implementing the actions
type Orchestrator interface {
	Init(ctx context.Context, cancelCtx context.CancelFunc) error
	Start() error
	WaitStop() // The close itself is performed by canceling the context

	// Tickets
	IssueTicket(ctx context.Context, req *tktypes.TicketRequest) (*tktypes.Ticket, bool, error)
	GetTicketByID(ctx context.Context, id string) (*tktypes.Ticket, error)
	GetTickets(ctx context.Context, filter database.Filter) ([]*tktypes.Ticket, *database.FilterResult, error)
	GetTicketProof(ctx context.Context, id string) (*tktypes.MerkleProof, error)
	MarkTicketUsed(ctx context.Context, id string, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error)
	RevokeTicket(ctx context.Context, id string, input *tktypes.TicketUpdateInput) (*tktypes.Ticket, error)
	VerifyTicket(ctx context.Context, req *tktypes.VerifyRequest) (*tktypes.VerificationResult, error)

	// Batches and anchors
	GetBatches(ctx context.Context, filter database.Filter) ([]*tktypes.MerkleBatch, *database.FilterResult, error)
	GetBatchByID(ctx context.Context, id string) (*tktypes.MerkleBatch, error)
	GetBatchTickets(ctx context.Context, id string, filter database.Filter) ([]*tktypes.BatchTicket, *database.FilterResult, error)
	GetAnchors(ctx context.Context, filter database.Filter) ([]*tktypes.BlockchainAnchor, *database.FilterResult, error)
	GetAnchorByID(ctx context.Context, id string) (*tktypes.BlockchainAnchor, error)

	// Background ticks, also triggered from the admin API
	ProcessReadyBatches(ctx context.Context) (*tktypes.TickResult, error)
	AdvancePendingAnchors(ctx context.Context) (*tktypes.TickResult, error)
	ExpireTickets(ctx context.Context) (*tktypes.TickResult, error)

	Status(ctx context.Context) (*tktypes.ServiceStatus, error)
}

type orchestrator struct {
	ctx       context.Context
	cancelCtx context.CancelFunc
	started   bool
	database  database.Plugin
	ledger    ledger.Plugin
	signer    signer.Signer
	metrics   metrics.Manager
	batching  batching.Manager
	issuer    issuer.Issuer
	anchoring anchoring.Submitter
	verifier  verifier.Verifier
	scheduler scheduler.Scheduler
	bookings  bookingamqp.Consumer
}

func NewOrchestrator() Orchestrator {
	or := &orchestrator{}

	// Initialize the config on all the factories
	difactory.InitPrefix(databaseConfig)
	lfactory.InitPrefix(ledgerConfig)

	return or
}

func (or *orchestrator) Init(ctx context.Context, cancelCtx context.CancelFunc) (err error) {
	or.ctx = ctx
	or.cancelCtx = cancelCtx
	err = or.initPlugins(ctx)
	if err == nil {
		err = or.initComponents(ctx)
	}
	return err
}

func (or *orchestrator) Start() (err error) {
	if config.GetBool(config.StartupWaitForLedger) {
		err = or.waitForLedger()
	}
	if err == nil && or.scheduler != nil {
		err = or.scheduler.Start()
	}
	if err == nil && or.bookings != nil {
		err = or.bookings.Start()
	}
	or.started = err == nil
	return err
}

func (or *orchestrator) WaitStop() {
	if !or.started {
		return
	}
	<-or.ctx.Done()
	if or.scheduler != nil {
		or.scheduler.WaitStop()
	}
	if or.bookings != nil {
		or.bookings.WaitStop()
	}
	or.database.Close()
	or.started = false
}

func (or *orchestrator) waitForLedger() error {
	r := retry.NewFromConfig(config.StartupRetryInitialDelay, config.StartupRetryMaxDelay, config.StartupRetryFactor)
	return r.Do(or.ctx, func(attempt int) (bool, error) {
		if or.ledger.IsReachable(or.ctx) {
			return false, nil
		}
		log.L(or.ctx).Warnf("Waiting for ledger '%s' (attempt %d)", or.ledger.Name(), attempt)
		return true, i18n.NewError(or.ctx, i18n.MsgLedgerUnreachable, or.ledger.Name())
	})
}

func (or *orchestrator) initPlugins(ctx context.Context) (err error) {
	if or.database == nil {
		if or.database, err = or.initDatabasePlugin(ctx); err != nil {
			return err
		}
	}

	if or.ledger == nil {
		if or.ledger, err = or.initLedgerPlugin(ctx); err != nil {
			return err
		}
	}

	if or.signer == nil {
		if or.signer, err = signer.NewFromConfig(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (or *orchestrator) initComponents(ctx context.Context) (err error) {
	if or.metrics == nil {
		or.metrics = metrics.NewMetricsManager(ctx)
	}

	if or.batching == nil {
		if or.batching, err = batching.NewBatchManager(ctx, or.database, or.metrics); err != nil {
			return err
		}
	}

	if or.issuer == nil {
		if or.issuer, err = issuer.NewIssuer(ctx, or.database, or.signer, or.batching, or.metrics); err != nil {
			return err
		}
	}

	if or.anchoring == nil {
		if or.anchoring, err = anchoring.NewAnchorSubmitter(ctx, or.database, or.ledger, or.metrics); err != nil {
			return err
		}
	}

	if or.verifier == nil {
		if or.verifier, err = verifier.NewVerifier(ctx, or.database, or.anchoring, or.signer.PublicKey(), or.metrics); err != nil {
			return err
		}
	}

	if or.scheduler == nil && config.GetBool(config.SchedulerEnabled) {
		if or.scheduler, err = scheduler.NewScheduler(ctx,
			&scheduler.Tick{Name: TickBatches, Interval: config.GetDuration(config.SchedulerBatchInterval), Run: or.ProcessReadyBatches},
			&scheduler.Tick{Name: TickAnchors, Interval: config.GetDuration(config.SchedulerAnchorInterval), Run: or.AdvancePendingAnchors},
			&scheduler.Tick{Name: TickExpiry, Interval: config.GetDuration(config.SchedulerExpiryInterval), Run: or.ExpireTickets},
		); err != nil {
			return err
		}
	}

	if or.bookings == nil && config.GetBool(config.EventsAMQPEnabled) {
		if or.bookings, err = bookingamqp.NewConsumer(ctx, or.issuer); err != nil {
			return err
		}
	}
	return nil
}

func (or *orchestrator) initDatabasePlugin(ctx context.Context) (database.Plugin, error) {
	pluginType := config.GetString(config.DatabaseType)
	plugin, err := difactory.GetPlugin(ctx, pluginType)
	if err != nil {
		return nil, err
	}
	err = plugin.Init(ctx, databaseConfig.SubPrefix(pluginType))
	return plugin, err
}

func (or *orchestrator) initLedgerPlugin(ctx context.Context) (ledger.Plugin, error) {
	pluginType := config.GetString(config.LedgerType)
	plugin, err := lfactory.GetPlugin(ctx, pluginType)
	if err != nil {
		return nil, err
	}
	err = plugin.Init(ctx, ledgerConfig.SubPrefix(pluginType))
	return plugin, err
}
