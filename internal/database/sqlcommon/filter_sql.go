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

package sqlcommon

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/pkg/database"
)

// filterSelect applies the conditions, ordering and paging of a filter to a select. The finalized
// filter and the where clause are returned too, so the caller can run a matching count query.
func (s *SQLCommon) filterSelect(ctx context.Context, sel sq.SelectBuilder, filter database.Filter, typeMap map[string]string, defaultSort []string) (sq.SelectBuilder, sq.Sqlizer, *database.FilterInfo, error) {
	fi, err := filter.Finalize()
	if err != nil {
		return sel, nil, nil, err
	}
	if len(fi.Sort) == 0 {
		for _, field := range defaultSort {
			desc := strings.HasPrefix(field, "-")
			fi.Sort = append(fi.Sort, &database.SortField{Field: strings.TrimPrefix(field, "-"), Descending: desc})
		}
	}
	fop, err := s.filterOp(ctx, fi, typeMap)
	if err != nil {
		return sel, nil, nil, err
	}
	sel = sel.Where(fop)
	sort := make([]string, len(fi.Sort))
	for i, sf := range fi.Sort {
		if sf.Descending {
			sort[i] = fmt.Sprintf("%s DESC", s.mapField(sf.Field, typeMap))
		} else {
			sort[i] = s.mapField(sf.Field, typeMap)
		}
	}
	if len(sort) > 0 {
		sel = sel.OrderBy(sort...)
	}
	if fi.Skip > 0 {
		sel = sel.Offset(fi.Skip)
	}
	if fi.Limit > 0 {
		sel = sel.Limit(fi.Limit)
	}
	return sel, fop, fi, nil
}

func (s *SQLCommon) buildUpdate(sel sq.UpdateBuilder, update database.Update, typeMap map[string]string) (sq.UpdateBuilder, error) {
	ui, err := update.Finalize()
	if err != nil {
		return sel, err
	}
	for _, so := range ui.SetOperations {
		sel = sel.Set(s.mapField(so.Field, typeMap), so.Value)
	}
	return sel, nil
}

func (s *SQLCommon) escapeLike(value database.FieldSerialization) string {
	v, _ := value.Value()
	vs, _ := v.(string)
	vs = strings.ReplaceAll(vs, `\`, `\\`)
	vs = strings.ReplaceAll(vs, "%", `\%`)
	vs = strings.ReplaceAll(vs, "_", `\_`)
	return vs
}

func (s *SQLCommon) mapField(f string, tm map[string]string) string {
	if f == "sequence" {
		return sequenceColumn
	}
	if mf, ok := tm[f]; ok {
		return mf
	}
	return f
}

func (s *SQLCommon) filterOp(ctx context.Context, op *database.FilterInfo, tm map[string]string) (sq.Sqlizer, error) {
	field := s.mapField(op.Field, tm)
	switch op.Op {
	case database.FilterOpOr, database.FilterOpAnd:
		children := make([]sq.Sqlizer, len(op.Children))
		for i, c := range op.Children {
			child, err := s.filterOp(ctx, c, tm)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		if op.Op == database.FilterOpOr {
			return sq.Or(children), nil
		}
		return sq.And(children), nil
	case database.FilterOpEq:
		return sq.Eq{field: op.Value}, nil
	case database.FilterOpNe:
		return sq.NotEq{field: op.Value}, nil
	case database.FilterOpIn:
		return sq.Eq{field: op.Values}, nil
	case database.FilterOpNotIn:
		return sq.NotEq{field: op.Values}, nil
	case database.FilterOpIsNull:
		return sq.Eq{field: nil}, nil
	case database.FilterOpNotNull:
		return sq.NotEq{field: nil}, nil
	case database.FilterOpCont:
		return sq.Expr(field+` LIKE ? ESCAPE '\'`, fmt.Sprintf("%%%s%%", s.escapeLike(op.Value))), nil
	case database.FilterOpNotCont:
		return sq.Expr(field+` NOT LIKE ? ESCAPE '\'`, fmt.Sprintf("%%%s%%", s.escapeLike(op.Value))), nil
	case database.FilterOpGt:
		return sq.Gt{field: op.Value}, nil
	case database.FilterOpGte:
		return sq.GtOrEq{field: op.Value}, nil
	case database.FilterOpLt:
		return sq.Lt{field: op.Value}, nil
	case database.FilterOpLte:
		return sq.LtOrEq{field: op.Value}, nil
	default:
		return nil, i18n.NewError(ctx, i18n.MsgUnsupportedSQLOpInFilter, op.Op)
	}
}
