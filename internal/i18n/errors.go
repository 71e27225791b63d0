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

package i18n

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// TicketAnchorError is implemented by every error created through this package, so that
// callers can branch on the message code rather than on the translated text
type TicketAnchorError interface {
	error
	MessageKey() MessageKey
	HTTPStatus() int
}

type taError struct {
	error
	msgKey MessageKey
}

func (e *taError) MessageKey() MessageKey {
	return e.msgKey
}

func (e *taError) HTTPStatus() int {
	return statusFor(e.msgKey)
}

func (e *taError) Cause() error {
	return errors.Cause(e.error)
}

func (e *taError) Unwrap() error {
	return errors.Unwrap(e.error)
}

// NewError creates a new error
func NewError(ctx context.Context, msg MessageKey, inserts ...interface{}) error {
	return &taError{
		error:  errors.New(ExpandWithCode(ctx, msg, inserts...)),
		msgKey: msg,
	}
}

// WrapError wraps an error
func WrapError(ctx context.Context, err error, msg MessageKey, inserts ...interface{}) error {
	return &taError{
		error:  errors.Wrap(err, ExpandWithCode(ctx, msg, inserts...)),
		msgKey: msg,
	}
}

// IsCode checks whether any error in the chain was raised with the supplied message key
func IsCode(err error, msg MessageKey) bool {
	for err != nil {
		if tae, ok := err.(TicketAnchorError); ok && tae.MessageKey() == msg {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// HasCodePrefix is a looser check on the rendered text, for errors that crossed a process boundary
func HasCodePrefix(err error, msg MessageKey) bool {
	return err != nil && strings.HasPrefix(err.Error(), string(msg))
}
