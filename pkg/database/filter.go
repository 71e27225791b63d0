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
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
)

// FilterOp is a comparison or grouping operation in a filter tree
type FilterOp string

const (
	FilterOpAnd     FilterOp = "&&"
	FilterOpOr      FilterOp = "||"
	FilterOpEq      FilterOp = "=="
	FilterOpNe      FilterOp = "!="
	FilterOpIn      FilterOp = "IN"
	FilterOpNotIn   FilterOp = "NI"
	FilterOpGt      FilterOp = ">"
	FilterOpGte     FilterOp = ">="
	FilterOpLt      FilterOp = "<"
	FilterOpLte     FilterOp = "<="
	FilterOpCont    FilterOp = "%="
	FilterOpNotCont FilterOp = "%!"
	FilterOpIsNull  FilterOp = "NULL"
	FilterOpNotNull FilterOp = "!NULL"
)

// Filter is a finished condition, plus the paging and ordering of the query it belongs to
type Filter interface {
	Sort(fields ...string) Filter
	Ascending() Filter
	Descending() Filter
	Skip(uint64) Filter
	Limit(uint64) Filter
	Count(bool) Filter
	Finalize() (*FilterInfo, error)
	Builder() FilterBuilder
}

// MultiConditionFilter is an And or Or, that can have conditions added after construction
type MultiConditionFilter interface {
	Filter
	Condition(...Filter) MultiConditionFilter
}

// FilterBuilder constructs filters over the fields of one collection
type FilterBuilder interface {
	Fields() []string
	And(...Filter) MultiConditionFilter
	Or(...Filter) MultiConditionFilter
	Eq(name string, value driver.Value) Filter
	Neq(name string, value driver.Value) Filter
	In(name string, values []driver.Value) Filter
	NotIn(name string, values []driver.Value) Filter
	Gt(name string, value driver.Value) Filter
	Gte(name string, value driver.Value) Filter
	Lt(name string, value driver.Value) Filter
	Lte(name string, value driver.Value) Filter
	Contains(name string, value driver.Value) Filter
	NotContains(name string, value driver.Value) Filter
	IsNull(name string) Filter
	NotNull(name string) Filter
}

// SortField is one ordering column
type SortField struct {
	Field      string
	Descending bool
}

// FilterInfo is the validated, serialized form of a filter that a plugin turns into its own query language
type FilterInfo struct {
	Op       FilterOp
	Field    string
	Value    FieldSerialization
	Values   []FieldSerialization
	Children []*FilterInfo
	Sort     []*SortField
	Skip     uint64
	Limit    uint64
	Count    bool
}

// FilterResult carries the optional total count of a query
type FilterResult struct {
	TotalCount *int64 `json:"total,omitempty"`
}

func renderValue(fs FieldSerialization) string {
	if fs == nil {
		return "null"
	}
	v, _ := fs.Value()
	switch tv := v.(type) {
	case nil:
		return "null"
	case int64:
		return fmt.Sprintf("%d", tv)
	case bool:
		return fmt.Sprintf("%t", tv)
	default:
		return fmt.Sprintf("'%v'", tv)
	}
}

func (fi *FilterInfo) conditionString() string {
	switch fi.Op {
	case FilterOpAnd, FilterOpOr:
		parts := make([]string, len(fi.Children))
		for i, c := range fi.Children {
			parts[i] = "( " + c.conditionString() + " )"
		}
		return strings.Join(parts, " "+string(fi.Op)+" ")
	case FilterOpIn, FilterOpNotIn:
		parts := make([]string, len(fi.Values))
		for i, v := range fi.Values {
			parts[i] = renderValue(v)
		}
		return fmt.Sprintf("%s %s [%s]", fi.Field, fi.Op, strings.Join(parts, ","))
	case FilterOpIsNull, FilterOpNotNull:
		return fmt.Sprintf("%s %s", fi.Field, fi.Op)
	default:
		return fmt.Sprintf("%s %s %s", fi.Field, fi.Op, renderValue(fi.Value))
	}
}

// String is used in debug logging of queries
func (fi *FilterInfo) String() string {
	var buff strings.Builder
	buff.WriteString(fi.conditionString())
	if len(fi.Sort) > 0 {
		cols := make([]string, len(fi.Sort))
		for i, s := range fi.Sort {
			if s.Descending {
				cols[i] = "-" + s.Field
			} else {
				cols[i] = s.Field
			}
		}
		buff.WriteString(" sort=" + strings.Join(cols, ","))
	}
	if fi.Skip > 0 {
		buff.WriteString(fmt.Sprintf(" skip=%d", fi.Skip))
	}
	if fi.Limit > 0 {
		buff.WriteString(fmt.Sprintf(" limit=%d", fi.Limit))
	}
	if fi.Count {
		buff.WriteString(" count=true")
	}
	return buff.String()
}

type filterBuilder struct {
	ctx       context.Context
	fields    queryFields
	sort      []*SortField
	skip      uint64
	limit     uint64
	count     bool
	direction *bool
}

func (fb *filterBuilder) Fields() []string {
	names := make([]string, 0, len(fb.fields))
	for name := range fb.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type condition struct {
	fb       *filterBuilder
	op       FilterOp
	field    string
	value    interface{}
	children []Filter
}

func (c *condition) Builder() FilterBuilder { return c.fb }

func (c *condition) Sort(fields ...string) Filter {
	for _, f := range fields {
		desc := strings.HasPrefix(f, "-")
		f = strings.ToLower(strings.TrimPrefix(f, "-"))
		if _, ok := c.fb.fields[f]; ok {
			c.fb.sort = append(c.fb.sort, &SortField{Field: f, Descending: desc})
		}
	}
	return c
}

func (c *condition) Ascending() Filter {
	asc := false
	c.fb.direction = &asc
	return c
}

func (c *condition) Descending() Filter {
	desc := true
	c.fb.direction = &desc
	return c
}

func (c *condition) Skip(skip uint64) Filter {
	c.fb.skip = skip
	return c
}

func (c *condition) Limit(limit uint64) Filter {
	c.fb.limit = limit
	return c
}

func (c *condition) Count(count bool) Filter {
	c.fb.count = count
	return c
}

func (c *condition) Condition(children ...Filter) MultiConditionFilter {
	c.children = append(c.children, children...)
	return c
}

func (c *condition) serializer(name string) (Field, error) {
	field, ok := c.fb.fields[name]
	if !ok {
		return nil, i18n.NewError(c.fb.ctx, i18n.MsgInvalidFilterField, name)
	}
	return field, nil
}

func (c *condition) Finalize() (*FilterInfo, error) {
	fi := &FilterInfo{
		Op:    c.op,
		Field: strings.ToLower(c.field),
		Skip:  c.fb.skip,
		Limit: c.fb.limit,
		Count: c.fb.count,
		Sort:  c.fb.sort,
	}
	switch c.op {
	case FilterOpAnd, FilterOpOr:
		fi.Field = ""
		fi.Children = make([]*FilterInfo, len(c.children))
		for i, child := range c.children {
			cfi, err := child.Finalize()
			if err != nil {
				return nil, err
			}
			fi.Children[i] = cfi
		}
	case FilterOpIsNull, FilterOpNotNull:
		if _, err := c.serializer(fi.Field); err != nil {
			return nil, err
		}
	case FilterOpIn, FilterOpNotIn:
		field, err := c.serializer(fi.Field)
		if err != nil {
			return nil, err
		}
		values, _ := c.value.([]driver.Value)
		fi.Values = make([]FieldSerialization, len(values))
		for i, v := range values {
			fs := field.serialization()
			if err := fs.Scan(v); err != nil {
				return nil, i18n.WrapError(c.fb.ctx, err, i18n.MsgInvalidValueForFilterField, fi.Field)
			}
			fi.Values[i] = fs
		}
	default:
		field, err := c.serializer(fi.Field)
		if err != nil {
			return nil, err
		}
		fi.Value = field.serialization()
		if err := fi.Value.Scan(c.value); err != nil {
			return nil, i18n.WrapError(c.fb.ctx, err, i18n.MsgInvalidValueForFilterField, fi.Field)
		}
	}
	if c.fb.direction != nil {
		for _, s := range fi.Sort {
			s.Descending = *c.fb.direction
		}
	}
	return fi, nil
}

func (fb *filterBuilder) multi(op FilterOp, children []Filter) MultiConditionFilter {
	return &condition{fb: fb, op: op, children: children}
}

func (fb *filterBuilder) single(op FilterOp, name string, value interface{}) Filter {
	return &condition{fb: fb, op: op, field: name, value: value}
}

func (fb *filterBuilder) And(children ...Filter) MultiConditionFilter {
	return fb.multi(FilterOpAnd, children)
}

func (fb *filterBuilder) Or(children ...Filter) MultiConditionFilter {
	return fb.multi(FilterOpOr, children)
}

func (fb *filterBuilder) Eq(name string, value driver.Value) Filter {
	return fb.single(FilterOpEq, name, value)
}

func (fb *filterBuilder) Neq(name string, value driver.Value) Filter {
	return fb.single(FilterOpNe, name, value)
}

func (fb *filterBuilder) In(name string, values []driver.Value) Filter {
	return fb.single(FilterOpIn, name, values)
}

func (fb *filterBuilder) NotIn(name string, values []driver.Value) Filter {
	return fb.single(FilterOpNotIn, name, values)
}

func (fb *filterBuilder) Gt(name string, value driver.Value) Filter {
	return fb.single(FilterOpGt, name, value)
}

func (fb *filterBuilder) Gte(name string, value driver.Value) Filter {
	return fb.single(FilterOpGte, name, value)
}

func (fb *filterBuilder) Lt(name string, value driver.Value) Filter {
	return fb.single(FilterOpLt, name, value)
}

func (fb *filterBuilder) Lte(name string, value driver.Value) Filter {
	return fb.single(FilterOpLte, name, value)
}

func (fb *filterBuilder) Contains(name string, value driver.Value) Filter {
	return fb.single(FilterOpCont, name, value)
}

func (fb *filterBuilder) NotContains(name string, value driver.Value) Filter {
	return fb.single(FilterOpNotCont, name, value)
}

func (fb *filterBuilder) IsNull(name string) Filter {
	return fb.single(FilterOpIsNull, name, nil)
}

func (fb *filterBuilder) NotNull(name string) Filter {
	return fb.single(FilterOpNotNull, name, nil)
}
