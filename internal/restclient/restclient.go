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

package restclient

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/pkg/errors"
)

const maxErrorBody = 256

type callKey struct{}

// call spans every attempt resty makes for one logical request
type call struct {
	id      string
	started time.Time
	retries int
}

func callFrom(ctx context.Context) *call {
	c, _ := ctx.Value(callKey{}).(*call)
	return c
}

type clientConf struct {
	url          string
	headers      map[string]string
	username     string
	password     string
	timeout      time.Duration
	retry        bool
	retryCount   int
	retryWait    time.Duration
	retryMaxWait time.Duration
}

func readClientConf(prefix config.Prefix) *clientConf {
	cc := &clientConf{
		url:          strings.TrimSuffix(prefix.GetString(HTTPConfigURL), "/"),
		headers:      map[string]string{},
		username:     prefix.GetString(HTTPConfigAuthUsername),
		password:     prefix.GetString(HTTPConfigAuthPassword),
		timeout:      prefix.GetDuration(HTTPConfigRequestTimeout),
		retry:        prefix.GetBool(HTTPConfigRetryEnabled),
		retryCount:   prefix.GetInt(HTTPConfigRetryCount),
		retryWait:    prefix.GetDuration(HTTPConfigRetryWaitTime),
		retryMaxWait: prefix.GetDuration(HTTPConfigRetryMaxWaitTime),
	}
	for k, v := range prefix.GetStringMap(HTTPConfigHeaders) {
		if s, ok := v.(string); ok {
			cc.headers[k] = s
		}
	}
	return cc
}

// New builds a resty client from the keys registered by InitPrefix. Callers can
// continue to customize the returned client with the resty builder methods.
func New(ctx context.Context, prefix config.Prefix) *resty.Client {
	cc := readClientConf(prefix)

	client := resty.New()
	if hc, ok := prefix.Get(HTTPCustomClient).(*http.Client); ok && hc != nil {
		client = resty.NewWithClient(hc)
	}
	if cc.url != "" {
		client.SetHostURL(cc.url)
		log.L(ctx).Debugf("REST client for %s", cc.url)
	}
	if cc.timeout > 0 {
		client.SetTimeout(cc.timeout)
	}
	client.SetHeaders(cc.headers)
	if cc.username != "" && cc.password != "" {
		client.SetBasicAuth(cc.username, cc.password)
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		rctx := req.Context()
		if callFrom(rctx) == nil {
			c := &call{id: tktypes.ShortID(), started: time.Now()}
			rctx = log.WithLogField(context.WithValue(rctx, callKey{}, c), "breq", c.id)
			req.SetContext(rctx)
		}
		log.L(rctx).Infof("--> %s %s%s", req.Method, cc.url, req.URL)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logResponse(res)
		return nil
	})

	if cc.retry {
		client.SetRetryCount(cc.retryCount).
			SetRetryWaitTime(cc.retryWait).
			SetRetryMaxWaitTime(cc.retryMaxWait).
			AddRetryCondition(func(res *resty.Response, err error) bool {
				if res == nil || res.IsSuccess() {
					return false
				}
				rctx := res.Request.Context()
				if c := callFrom(rctx); c != nil {
					c.retries++
					log.L(rctx).Infof("Retrying %d/%d after status %d", c.retries, cc.retryCount, res.StatusCode())
				}
				return true
			})
	}
	return client
}

func logResponse(res *resty.Response) {
	if res == nil || res.Request == nil {
		return
	}
	rctx := res.Request.Context()
	if c := callFrom(rctx); c != nil {
		log.L(rctx).Infof("<-- %s %s [%d] (%.2fms)", res.Request.Method, res.Request.URL, res.StatusCode(), log.Since(c.started))
	}
}

// IsConnectionError is true when no HTTP response came back, for example
// a refused connection or a timeout
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host")
}

// IsRetryable is false only for a definitive answer from the server. Server side
// statuses, throttling and timeouts leave the outcome of the request unknown.
func IsRetryable(res *resty.Response, err error) bool {
	if err != nil || res == nil {
		return true
	}
	switch status := res.StatusCode(); {
	case status >= http.StatusInternalServerError:
		return true
	case status == http.StatusTooManyRequests, status == http.StatusRequestTimeout:
		return true
	default:
		return false
	}
}

func responseText(res *resty.Response) string {
	var text string
	if body := res.RawBody(); body != nil {
		defer body.Close()
		if b, err := io.ReadAll(body); err == nil {
			text = string(b)
		}
	}
	if text == "" {
		text = res.String()
	}
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return text
}

// WrapRestErr appends the transport error, or the start of the response body, to the inserts of key
func WrapRestErr(ctx context.Context, res *resty.Response, err error, key i18n.MessageKey, inserts ...interface{}) error {
	detail := ""
	switch {
	case err != nil:
		detail = err.Error()
	case res != nil:
		detail = responseText(res)
	}
	return i18n.NewError(ctx, key, append(inserts, detail)...)
}
