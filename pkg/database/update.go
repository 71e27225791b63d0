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

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
)

// UpdateBuilder starts an update over the fields of one collection
type UpdateBuilder interface {
	Set(field string, value interface{}) Update
	S() Update
}

// Update is a set of field assignments
type Update interface {
	Set(field string, value interface{}) Update
	IsEmpty() bool
	Finalize() (*UpdateInfo, error)
}

// SetOperation is one validated field assignment
type SetOperation struct {
	Field string
	Value FieldSerialization
}

// UpdateInfo is the validated form of an update
type UpdateInfo struct {
	SetOperations []*SetOperation
}

func (ui *UpdateInfo) String() string {
	parts := make([]string, len(ui.SetOperations))
	for i, so := range ui.SetOperations {
		parts[i] = fmt.Sprintf("%s=%s", so.Field, renderValue(so.Value))
	}
	return strings.Join(parts, ", ")
}

type updateBuilder struct {
	ctx    context.Context
	fields queryFields
}

type assignment struct {
	field string
	value interface{}
}

type update struct {
	ub          *updateBuilder
	assignments []assignment
}

func (ub *updateBuilder) S() Update {
	return &update{ub: ub}
}

func (ub *updateBuilder) Set(field string, value interface{}) Update {
	return ub.S().Set(field, value)
}

func (u *update) Set(field string, value interface{}) Update {
	u.assignments = append(u.assignments, assignment{field: field, value: value})
	return u
}

func (u *update) IsEmpty() bool {
	return len(u.assignments) == 0
}

func (u *update) Finalize() (*UpdateInfo, error) {
	ui := &UpdateInfo{SetOperations: make([]*SetOperation, len(u.assignments))}
	for i, a := range u.assignments {
		name := strings.ToLower(a.field)
		field, ok := u.ub.fields[name]
		if !ok {
			return nil, i18n.NewError(u.ub.ctx, i18n.MsgInvalidFilterField, name)
		}
		fs := field.serialization()
		if err := fs.Scan(a.value); err != nil {
			return nil, i18n.WrapError(u.ub.ctx, err, i18n.MsgInvalidValueForFilterField, name)
		}
		ui.SetOperations[i] = &SetOperation{Field: name, Value: fs}
	}
	return ui, nil
}
