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
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MessageKey is the code of a translated message, such as "TA10101". The
// code doubles as the catalog key.
type MessageKey string

type langKey struct{}

// English is the only catalog shipped today
var supported = language.NewMatcher([]language.Tag{language.AmericanEnglish})

var registry = struct {
	sync.Mutex
	keys    map[MessageKey]bool
	hints   map[MessageKey]int
	printer *message.Printer
}{
	keys:    map[MessageKey]bool{},
	hints:   map[MessageKey]int{},
	printer: message.NewPrinter(language.English),
}

// tam adds an English message to the catalog. The optional status is the
// HTTP code the API server answers with when an error of this key escapes.
func tam(key, english string, status ...int) MessageKey {
	k := MessageKey(key)
	registry.Lock()
	defer registry.Unlock()
	if registry.keys[k] {
		panic(fmt.Sprintf("duplicate message ID %s", key))
	}
	registry.keys[k] = true
	if len(status) > 0 {
		registry.hints[k] = status[0]
	}
	_ = message.SetString(language.English, key, english)
	return k
}

// WithLang overrides the process language for messages expanded against ctx
func WithLang(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// SetLang picks the closest supported language as the process default
func SetLang(lang string) {
	tag, _, _ := supported.Match(language.Make(lang))
	base, _ := tag.Base()
	registry.Lock()
	registry.printer = message.NewPrinter(language.Make(base.String()))
	registry.Unlock()
}

func printer(ctx context.Context) *message.Printer {
	if tag, ok := ctx.Value(langKey{}).(language.Tag); ok {
		return message.NewPrinter(tag)
	}
	registry.Lock()
	defer registry.Unlock()
	return registry.printer
}

// Expand translates key with its inserts
func Expand(ctx context.Context, key MessageKey, inserts ...interface{}) string {
	return printer(ctx).Sprintf(string(key), inserts...)
}

// ExpandWithCode is Expand prefixed with "<code>: ", the form errors carry
func ExpandWithCode(ctx context.Context, key MessageKey, inserts ...interface{}) string {
	return fmt.Sprintf("%s: %s", key, Expand(ctx, key, inserts...))
}

// GetStatusHint returns the HTTP status registered with a code
func GetStatusHint(code string) (int, bool) {
	registry.Lock()
	defer registry.Unlock()
	status, ok := registry.hints[MessageKey(code)]
	return status, ok
}

func statusFor(key MessageKey) int {
	if status, ok := GetStatusHint(string(key)); ok && status != 0 {
		return status
	}
	return http.StatusInternalServerError
}
