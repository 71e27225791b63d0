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
	"database/sql"
	"database/sql/driver"
	"reflect"
	"strconv"

	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// QueryFactory knows the fields of one collection, and builds filters and updates over them
type QueryFactory interface {
	NewFilter(ctx context.Context) FilterBuilder
	NewFilterLimit(ctx context.Context, defLimit uint64) FilterBuilder
	NewUpdate(ctx context.Context) UpdateBuilder
}

// FieldSerialization uses the SQL Scanner/Valuer pair to define how a filter value is
// parsed and rendered, without tying the filter model to SQL
type FieldSerialization interface {
	driver.Valuer
	sql.Scanner
}

// Field is a queryable field type
type Field interface {
	serialization() FieldSerialization
}

type queryFields map[string]Field

func (qf queryFields) NewFilterLimit(ctx context.Context, defLimit uint64) FilterBuilder {
	return &filterBuilder{ctx: ctx, fields: qf, limit: defLimit}
}

func (qf queryFields) NewFilter(ctx context.Context) FilterBuilder {
	return qf.NewFilterLimit(ctx, 0)
}

func (qf queryFields) NewUpdate(ctx context.Context) UpdateBuilder {
	return &updateBuilder{ctx: ctx, fields: qf}
}

func scanFailed(src interface{}, target interface{}) error {
	return i18n.NewError(context.Background(), i18n.MsgScanFailed, src, target)
}

type StringField struct{}
type stringValue struct{ s string }

func (f *StringField) serialization() FieldSerialization { return &stringValue{} }

func (v *stringValue) Scan(src interface{}) error {
	switch tv := src.(type) {
	case nil:
		v.s = ""
	case string:
		v.s = tv
	case int:
		v.s = strconv.Itoa(tv)
	case int64:
		v.s = strconv.FormatInt(tv, 10)
	case *tktypes.UUID:
		v.s = tv.String()
	case *tktypes.Bytes32:
		v.s = tv.String()
	default:
		// Status enums are string kinds
		rv := reflect.ValueOf(src)
		if rv.Kind() != reflect.String {
			return scanFailed(src, v.s)
		}
		v.s = rv.String()
	}
	return nil
}

func (v *stringValue) Value() (driver.Value, error) { return v.s, nil }

type UUIDField struct{}
type uuidValue struct{ u *tktypes.UUID }

func (f *UUIDField) serialization() FieldSerialization { return &uuidValue{} }

func (v *uuidValue) Scan(src interface{}) (err error) {
	switch tv := src.(type) {
	case nil:
		v.u = nil
	case string:
		if tv == "" {
			v.u = nil
			return nil
		}
		v.u, err = tktypes.ParseUUID(context.Background(), tv)
	case *tktypes.UUID:
		v.u = tv
	case tktypes.UUID:
		v.u = &tv
	default:
		return scanFailed(src, v.u)
	}
	return err
}

func (v *uuidValue) Value() (driver.Value, error) { return v.u.Value() }

type Bytes32Field struct{}
type bytes32Value struct{ b32 *tktypes.Bytes32 }

func (f *Bytes32Field) serialization() FieldSerialization { return &bytes32Value{} }

func (v *bytes32Value) Scan(src interface{}) (err error) {
	switch tv := src.(type) {
	case nil:
		v.b32 = nil
	case string:
		if tv == "" {
			v.b32 = nil
			return nil
		}
		v.b32, err = tktypes.ParseBytes32(context.Background(), tv)
	case *tktypes.Bytes32:
		v.b32 = tv
	case tktypes.Bytes32:
		v.b32 = &tv
	default:
		return scanFailed(src, v.b32)
	}
	return err
}

func (v *bytes32Value) Value() (driver.Value, error) { return v.b32.Value() }

type Int64Field struct{}
type int64Value struct{ i int64 }

func (f *Int64Field) serialization() FieldSerialization { return &int64Value{} }

func (v *int64Value) Scan(src interface{}) (err error) {
	switch tv := src.(type) {
	case int:
		v.i = int64(tv)
	case int32:
		v.i = int64(tv)
	case int64:
		v.i = tv
	case uint64:
		v.i = int64(tv)
	case string:
		if v.i, err = strconv.ParseInt(tv, 10, 64); err != nil {
			return i18n.WrapError(context.Background(), err, i18n.MsgScanFailed, src, int64(0))
		}
	default:
		return scanFailed(src, v.i)
	}
	return nil
}

func (v *int64Value) Value() (driver.Value, error) { return v.i, nil }

type TimeField struct{}
type timeValue struct{ t *tktypes.Timestamp }

func (f *TimeField) serialization() FieldSerialization { return &timeValue{} }

func (v *timeValue) Scan(src interface{}) (err error) {
	switch tv := src.(type) {
	case nil:
		v.t = nil
	case int64:
		v.t = tktypes.UnixTime(tv)
	case int:
		v.t = tktypes.UnixTime(int64(tv))
	case string:
		v.t, err = tktypes.ParseTimestamp(tv)
	case *tktypes.Timestamp:
		v.t = tv
	case tktypes.Timestamp:
		v.t = &tv
	default:
		return scanFailed(src, v.t)
	}
	return err
}

func (v *timeValue) Value() (driver.Value, error) { return v.t.Value() }

// TicketQueryFactory filter fields for tickets
var TicketQueryFactory = queryFields{
	"id":         &UUIDField{},
	"bookingid":  &StringField{},
	"riderid":    &StringField{},
	"driverid":   &StringField{},
	"routeid":    &StringField{},
	"tripdate":   &TimeField{},
	"seatnumber": &Int64Field{},
	"hash":       &Bytes32Field{},
	"code":       &StringField{},
	"status":     &StringField{},
	"created":    &TimeField{},
	"expiresat":  &TimeField{},
	"batch":      &UUIDField{},
	"leafindex":  &Int64Field{},
	"sequence":   &Int64Field{},
}

// BatchQueryFactory filter fields for Merkle batches
var BatchQueryFactory = queryFields{
	"id":          &UUIDField{},
	"status":      &StringField{},
	"hashalg":     &StringField{},
	"merkleroot":  &Bytes32Field{},
	"ticketcount": &Int64Field{},
	"anchor":      &UUIDField{},
	"created":     &TimeField{},
	"sealed":      &TimeField{},
	"sequence":    &Int64Field{},
}

// AnchorQueryFactory filter fields for blockchain anchors
var AnchorQueryFactory = queryFields{
	"id":            &UUIDField{},
	"batch":         &UUIDField{},
	"merkleroot":    &Bytes32Field{},
	"ledger":        &StringField{},
	"txhash":        &StringField{},
	"status":        &StringField{},
	"confirmations": &Int64Field{},
	"retries":       &Int64Field{},
	"error":         &StringField{},
	"created":       &TimeField{},
	"submitted":     &TimeField{},
	"confirmed":     &TimeField{},
	"nextattempt":   &TimeField{},
	"sequence":      &Int64Field{},
}

// BatchTicketQueryFactory filter fields for the leaves of a batch
var BatchTicketQueryFactory = queryFields{
	"batch":     &UUIDField{},
	"ticket":    &UUIDField{},
	"hash":      &Bytes32Field{},
	"leafindex": &Int64Field{},
}
