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

package bookingamqp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/issuer"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/retry"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer issues tickets for booking confirmations delivered over AMQP
type Consumer interface {
	Start() error
	WaitStop()
}

type consumer struct {
	ctx              context.Context
	issuer           issuer.Issuer
	dial             dialer
	retry            *retry.Retry
	url              string
	exchange         string
	exchangeKind     string
	queue            string
	routingKey       string
	consumerTag      string
	prefetch         int
	requeueOnFailure bool
	closed           chan struct{}
}

func NewConsumer(ctx context.Context, is issuer.Issuer) (Consumer, error) {
	if is == nil {
		return nil, i18n.NewError(ctx, i18n.MsgInitializationNilDepError)
	}
	return &consumer{
		ctx:              log.WithLogField(ctx, "role", "booking-consumer"),
		issuer:           is,
		dial:             dialAMQP,
		retry:            retry.NewFromConfig(config.EventsAMQPReconnectDelay, config.EventsAMQPReconnectMaxDelay, config.StartupRetryFactor),
		url:              config.GetString(config.EventsAMQPURL),
		exchange:         config.GetString(config.EventsAMQPExchange),
		exchangeKind:     config.GetString(config.EventsAMQPDeclareExchangeKind),
		queue:            config.GetString(config.EventsAMQPQueue),
		routingKey:       config.GetString(config.EventsAMQPRoutingKey),
		consumerTag:      config.GetString(config.EventsAMQPConsumerTag),
		prefetch:         config.GetInt(config.EventsAMQPPrefetch),
		requeueOnFailure: config.GetBool(config.EventsAMQPRequeueOnFailure),
		closed:           make(chan struct{}),
	}, nil
}

func (c *consumer) Start() error {
	go c.consumeLoop()
	return nil
}

func (c *consumer) WaitStop() {
	<-c.closed
}

func (c *consumer) consumeLoop() {
	defer close(c.closed)
	l := log.L(c.ctx)
	for {
		var conn connection
		var ch channel
		var deliveries <-chan amqp.Delivery
		err := c.retry.Do(c.ctx, func(attempt int) (bool, error) {
			var err error
			conn, ch, deliveries, err = c.connect()
			if err != nil {
				l.Warnf("AMQP connect attempt %d failed: %s", attempt, err)
				return true, err
			}
			return false, nil
		})
		if err != nil {
			l.Debugf("Exiting: %s", err)
			return
		}
		l.Infof("Consuming bookings from queue '%s'", c.queue)
		stopped := c.consume(ch, deliveries)
		_ = ch.Close()
		_ = conn.Close()
		if stopped {
			l.Infof("Booking consumer stopped")
			return
		}
		l.Warnf("AMQP channel closed, reconnecting")
	}
}

func (c *consumer) connect() (conn connection, ch channel, deliveries <-chan amqp.Delivery, err error) {
	if conn, err = c.dial(c.url); err != nil {
		return nil, nil, nil, i18n.WrapError(c.ctx, err, i18n.MsgAMQPConnectFailed, c.url)
	}
	if ch, err = conn.Channel(); err == nil {
		err = c.declare(ch)
	}
	if err == nil {
		deliveries, err = ch.Consume(c.queue, c.consumerTag, false, false, false, false, nil)
	}
	if err != nil {
		if ch != nil {
			_ = ch.Close()
		}
		_ = conn.Close()
		return nil, nil, nil, i18n.WrapError(c.ctx, err, i18n.MsgAMQPSetupFailed, c.queue)
	}
	return conn, ch, deliveries, nil
}

func (c *consumer) declare(ch channel) error {
	if err := ch.ExchangeDeclare(c.exchange, c.exchangeKind, true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(c.queue, c.routingKey, c.exchange, false, nil); err != nil {
		return err
	}
	return ch.Qos(c.prefetch, 0, false)
}

// consume returns true when the context closed, and false when the broker dropped the channel
func (c *consumer) consume(ch channel, deliveries <-chan amqp.Delivery) bool {
	closeNotify := ch.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-c.ctx.Done():
			return true
		case amqpErr := <-closeNotify:
			log.L(c.ctx).Warnf("AMQP channel closed: %v", amqpErr)
			return false
		case d, ok := <-deliveries:
			if !ok {
				return false
			}
			c.handleDelivery(d)
		}
	}
}

type disposition int

const (
	dispositionAck disposition = iota
	dispositionReject
	dispositionRequeue
)

func (c *consumer) handleDelivery(d amqp.Delivery) {
	ctx := log.WithLogField(c.ctx, "msg", fmt.Sprintf("%d", d.DeliveryTag))
	l := log.L(ctx)

	var err error
	switch c.process(ctx, d.Body) {
	case dispositionAck:
		err = d.Ack(false)
	case dispositionReject:
		err = d.Reject(false)
	default:
		err = d.Nack(false, c.requeueOnFailure)
	}
	if err != nil {
		l.Errorf("Failed to settle delivery: %s", err)
	}
}

func (c *consumer) process(ctx context.Context, body []byte) disposition {
	l := log.L(ctx)
	var req tktypes.TicketRequest
	if err := json.Unmarshal(body, &req); err != nil {
		l.Errorf("Rejecting undecodable booking message: %s", err)
		return dispositionReject
	}

	ticket, created, err := c.issuer.IssueTicket(ctx, &req)
	if err == nil {
		if created {
			l.Infof("Issued ticket %s for booking %s", ticket.ID, req.BookingID)
		} else {
			l.Infof("Booking %s already has ticket %s", req.BookingID, ticket.ID)
		}
		return dispositionAck
	}

	status := http.StatusInternalServerError
	if tae, ok := err.(i18n.TicketAnchorError); ok {
		status = tae.HTTPStatus()
	}
	switch status {
	case http.StatusBadRequest:
		l.Errorf("Rejecting invalid booking %s: %s", req.BookingID, err)
		return dispositionReject
	case http.StatusConflict:
		l.Infof("Booking %s was issued concurrently: %s", req.BookingID, err)
		return dispositionAck
	default:
		l.Errorf("Failed to issue ticket for booking %s: %s", req.BookingID, err)
		return dispositionRequeue
	}
}
