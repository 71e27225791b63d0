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

package oapispec

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
)

type SwaggerGenConfig struct {
	BaseURL     string
	Title       string
	Version     string
	Description string
}

// mux path variables can carry a regexp, which is not valid in an OpenAPI path
var muxVarPattern = regexp.MustCompile(`{(\w+)\:[^}]+}`)

type swaggerGen struct {
	ctx context.Context
	doc *openapi3.T
}

// SwaggerGen builds the OpenAPI 3 document for a route table. Route names become
// operation IDs, so an empty or repeated name is a programming error and panics.
func SwaggerGen(ctx context.Context, routes []*Route, conf *SwaggerGenConfig) *openapi3.T {
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		if route.Name == "" || seen[route.Name] {
			panic(fmt.Sprintf("Duplicate/invalid name (used as operation ID in swagger): %s", route.Name))
		}
		seen[route.Name] = true
	}

	g := &swaggerGen{
		ctx: ctx,
		doc: &openapi3.T{
			OpenAPI: "3.0.2",
			Info: &openapi3.Info{
				Title:       conf.Title,
				Version:     conf.Version,
				Description: conf.Description,
			},
			Servers:    openapi3.Servers{{URL: conf.BaseURL}},
			Paths:      openapi3.Paths{},
			Components: openapi3.Components{Schemas: openapi3.Schemas{}},
		},
	}
	for _, route := range routes {
		path := "/" + strings.TrimPrefix(muxVarPattern.ReplaceAllString(route.Path, `{$1}`), "/")
		g.doc.AddOperation(path, route.Method, g.operation(route))
	}
	return g.doc
}

// customizeSchema describes the wire encoding of types that marshal as strings
func customizeSchema(name string, t reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
	switch t.Name() {
	case "UUID":
		schema.Type, schema.Format, schema.Items = "string", "uuid", nil
	case "Timestamp":
		schema.Type, schema.Format, schema.Properties = "string", "date-time", nil
	case "Bytes32":
		schema.Type, schema.Format, schema.Items = "string", "byte", nil
	case "HexBytes":
		schema.Type, schema.Items = "string", nil
	case "Number":
		schema.Type, schema.Pattern = "string", `^\d+(\.\d{1,2})?$`
	}
	return nil
}

func (g *swaggerGen) schemaFor(valueFn func() interface{}) *openapi3.SchemaRef {
	if valueFn == nil {
		return nil
	}
	v := valueFn()
	if v == nil {
		return nil
	}
	ref, err := openapi3gen.NewSchemaRefForValue(v, g.doc.Components.Schemas, openapi3gen.SchemaCustomizer(customizeSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid schema for %T: %s", v, err))
	}
	return ref
}

func jsonContent(schema *openapi3.SchemaRef) openapi3.Content {
	return openapi3.Content{"application/json": &openapi3.MediaType{Schema: schema}}
}

func (g *swaggerGen) operation(route *Route) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: route.Name,
		Description: i18n.Expand(g.ctx, route.Description),
		Responses:   openapi3.NewResponses(),
	}
	if route.Method != http.MethodGet && route.Method != http.MethodDelete {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{Content: jsonContent(g.schemaFor(route.JSONInputValue))},
		}
	}
	output := g.schemaFor(route.JSONOutputValue)
	for _, code := range route.JSONOutputCodes {
		description := i18n.Expand(g.ctx, i18n.MsgSuccessResponse)
		if code == http.StatusCreated {
			description = i18n.Expand(g.ctx, i18n.MsgCreatedResponse)
		}
		op.Responses[strconv.Itoa(code)] = &openapi3.ResponseRef{
			Value: &openapi3.Response{Description: &description, Content: jsonContent(output)},
		}
	}

	for _, p := range route.PathParams {
		g.param(op, "path", p.Name, "string", "", p.Example, p.Description)
	}
	for _, q := range route.QueryParams {
		paramType, example := "string", ""
		if q.IsBool {
			paramType = "boolean"
		}
		if q.ExampleFromConf != "" {
			example = config.GetString(q.ExampleFromConf)
		}
		g.param(op, "query", q.Name, paramType, q.Default, example, q.Description)
	}
	g.param(op, "header", "Request-Timeout", "string", config.GetString(config.APIRequestTimeout), "", i18n.MsgRequestTimeoutDesc)
	if route.FilterFactory != nil {
		g.filterParams(op, route)
	}
	return op
}

func (g *swaggerGen) filterParams(op *openapi3.Operation, route *Route) {
	for _, field := range route.FilterFactory.NewFilter(g.ctx).Fields() {
		g.param(op, "query", field, "string", "", "", i18n.MsgFilterParamDesc)
	}
	g.param(op, "query", "sort", "string", "", "", i18n.MsgFilterSortDesc)
	g.param(op, "query", "ascending", "boolean", "", "", i18n.MsgFilterAscendingDesc)
	g.param(op, "query", "descending", "boolean", "", "", i18n.MsgFilterDescendingDesc)
	g.param(op, "query", "skip", "string", "", "", i18n.MsgFilterSkipDesc, config.GetUint(config.APIMaxFilterSkip))
	g.param(op, "query", "limit", "string", config.GetString(config.APIDefaultFilterLimit), "", i18n.MsgFilterLimitDesc, config.GetUint(config.APIMaxFilterLimit))
	g.param(op, "query", "count", "boolean", "", "", i18n.MsgFilterCountDesc)
}

func (g *swaggerGen) param(op *openapi3.Operation, in, name, paramType, def, example string, description i18n.MessageKey, descArgs ...interface{}) {
	schema := &openapi3.Schema{Type: paramType}
	if def != "" {
		schema.Default = def
	}
	if example != "" {
		schema.Example = example
	}
	op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			In:          in,
			Name:        name,
			Required:    in == openapi3.ParameterInPath,
			Description: i18n.Expand(g.ctx, description, descArgs...),
			Schema:      &openapi3.SchemaRef{Value: schema},
		},
	})
}
