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

package apiserver

import (
	"database/sql/driver"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/kaleido-io/ticketanchor/pkg/database"
)

type filterResultsWithCount struct {
	Count int64       `json:"count"`
	Total int64       `json:"total"`
	Items interface{} `json:"items"`
}

// lowerKeys merges query parameters case insensitively, so bookingId and bookingid are the same filter
func lowerKeys(values url.Values) url.Values {
	merged := url.Values{}
	for k, vs := range values {
		lk := strings.ToLower(k)
		merged[lk] = append(merged[lk], vs...)
	}
	return merged
}

// cappedUint reads the first value of key, capped at max
func cappedUint(q url.Values, key string, max uint64) (uint64, bool) {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return 0, false
	}
	n, _ := strconv.ParseUint(vs[0], 10, 64)
	if n > max {
		n = max
	}
	return n, true
}

func (as *apiServer) buildFilter(req *http.Request, ff database.QueryFactory) (database.Filter, error) {
	fb := ff.NewFilterLimit(req.Context(), as.defaultFilterLimit)
	filter := fb.And()
	_ = req.ParseForm()
	q := lowerKeys(req.Form)

	for _, field := range fb.Fields() {
		values := q[field]
		switch len(values) {
		case 0:
		case 1:
			filter.Condition(getCondition(fb, field, values[0]))
		default:
			// repeated values for one field are alternatives
			sort.Strings(values)
			alternatives := make([]database.Filter, 0, len(values))
			for _, v := range values {
				alternatives = append(alternatives, getCondition(fb, field, v))
			}
			filter.Condition(fb.Or(alternatives...))
		}
	}

	if skip, ok := cappedUint(q, "skip", as.maxFilterSkip); ok {
		filter.Skip(skip)
	}
	if limit, ok := cappedUint(q, "limit", as.maxFilterLimit); ok {
		filter.Limit(limit)
	}
	for _, sv := range q["sort"] {
		for _, field := range strings.Split(sv, ",") {
			if field = strings.TrimSpace(field); field != "" {
				filter.Sort(field)
			}
		}
	}
	switch {
	case isBoolParam(q, "descending"):
		filter.Descending()
	case isBoolParam(q, "ascending"):
		filter.Ascending()
	}
	filter.Count(isBoolParam(q, "count"))

	// unknown fields and bad values become a 400 here, rather than a database error later
	if _, err := filter.Finalize(); err != nil {
		return nil, err
	}
	return filter, nil
}

func isBoolParam(values url.Values, key string) bool {
	vals, exists := values[key]
	return exists && (len(vals) == 0 || vals[0] == "" || strings.EqualFold(vals[0], "true"))
}

type conditionOp struct {
	prefix string
	build  func(fb database.FilterBuilder, field string, value driver.Value) database.Filter
}

// longest prefixes first
var conditionOps = []conditionOp{
	{">=", database.FilterBuilder.Gte},
	{"<=", database.FilterBuilder.Lte},
	{"!@", database.FilterBuilder.NotContains},
	{">", database.FilterBuilder.Gt},
	{"<", database.FilterBuilder.Lt},
	{"@", database.FilterBuilder.Contains},
	{"!", database.FilterBuilder.Neq},
}

func getCondition(fb database.FilterBuilder, field, value string) database.Filter {
	for _, op := range conditionOps {
		if strings.HasPrefix(value, op.prefix) {
			return op.build(fb, field, value[len(op.prefix):])
		}
	}
	return fb.Eq(field, value)
}

// filterResult wraps a collection with its total when a count was requested
func filterResult(items interface{}, res *database.FilterResult, count int, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	if res == nil || res.TotalCount == nil {
		return items, nil
	}
	return &filterResultsWithCount{
		Count: int64(count),
		Total: *res.TotalCount,
		Items: items,
	}, nil
}
