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

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/spf13/viper"
)

// Prefix is a branch of the global configuration tree, under which a plugin
// declares and reads its own keys. Values are process wide, so a Prefix
// configures a plugin type rather than one instance of it.
type Prefix interface {
	AddKnownKey(key string, defValue ...interface{})
	SubPrefix(suffix string) Prefix
	Set(key string, value interface{})
	Resolve(key string) string

	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int
	GetInt64(key string) int64
	GetUint(key string) uint
	GetFloat64(key string) float64
	GetDuration(key string) time.Duration
	GetByteSize(key string) int64
	GetStringSlice(key string) []string
	GetStringMap(key string) map[string]interface{}
	UnmarshalKey(ctx context.Context, key string, rawVal interface{}) error
	Get(key string) interface{}
}

var keysMutex sync.Mutex

// every declared key, whichever prefix declared it
var knownKeys = map[string]bool{}

type configPrefix struct {
	prefix string
}

var root = &configPrefix{}

// NewPluginConfig returns the Prefix rooted at prefix
func NewPluginConfig(prefix string) Prefix {
	return &configPrefix{prefix: strings.TrimSuffix(prefix, ".") + "."}
}

func (c *configPrefix) SubPrefix(suffix string) Prefix {
	return &configPrefix{prefix: c.prefix + suffix + "."}
}

func (c *configPrefix) AddKnownKey(k string, defValue ...interface{}) {
	key := c.prefix + k
	keysMutex.Lock()
	defer keysMutex.Unlock()
	knownKeys[key] = true
	switch len(defValue) {
	case 0:
	case 1:
		viper.SetDefault(key, defValue[0])
	default:
		viper.SetDefault(key, defValue)
	}
}

// Resolve returns the full key, and panics on a key nothing declared
func (c *configPrefix) Resolve(k string) string {
	key := c.prefix + k
	keysMutex.Lock()
	defer keysMutex.Unlock()
	if !knownKeys[key] {
		panic(fmt.Sprintf("Undefined configuration key '%s'", key))
	}
	return key
}

// GetKnownKeys lists every declared key in order, for showconfig
func GetKnownKeys() []string {
	keysMutex.Lock()
	defer keysMutex.Unlock()
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *configPrefix) Get(key string) interface{} { return viper.Get(c.Resolve(key)) }

func (c *configPrefix) Set(key string, value interface{}) { viper.Set(c.Resolve(key), value) }

func (c *configPrefix) GetString(key string) string { return viper.GetString(c.Resolve(key)) }

func (c *configPrefix) GetStringSlice(key string) []string {
	return viper.GetStringSlice(c.Resolve(key))
}

func (c *configPrefix) GetStringMap(key string) map[string]interface{} {
	return viper.GetStringMap(c.Resolve(key))
}

func (c *configPrefix) GetBool(key string) bool { return viper.GetBool(c.Resolve(key)) }

func (c *configPrefix) GetInt(key string) int { return viper.GetInt(c.Resolve(key)) }

func (c *configPrefix) GetInt64(key string) int64 { return viper.GetInt64(c.Resolve(key)) }

func (c *configPrefix) GetUint(key string) uint { return viper.GetUint(c.Resolve(key)) }

func (c *configPrefix) GetFloat64(key string) float64 { return viper.GetFloat64(c.Resolve(key)) }

func (c *configPrefix) GetDuration(key string) time.Duration {
	return ParseDurationValue(viper.Get(c.Resolve(key)))
}

// GetByteSize reads sizes like "1MB" or "512Kb". Unparseable values are zero.
// GetByteSize parses sizes like "1Mb", with zero for anything unparseable
func (c *configPrefix) GetByteSize(key string) int64 {
	size, err := units.RAMInBytes(viper.GetString(c.Resolve(key)))
	if err != nil {
		return 0
	}
	return size
}

// UnmarshalKey decodes a section through JSON, so that targets use their json tags
func (c *configPrefix) UnmarshalKey(ctx context.Context, key string, rawVal interface{}) error {
	var section map[string]interface{}
	err := viper.UnmarshalKey(c.Resolve(key), &section)
	if err == nil {
		var b []byte
		if b, err = json.Marshal(section); err == nil {
			err = json.Unmarshal(b, rawVal)
		}
	}
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgConfigFailed, key)
	}
	return nil
}

// ParseDurationValue accepts a Go duration string, or a plain number of milliseconds.
// Unparseable values resolve to zero.
func ParseDurationValue(v interface{}) time.Duration {
	switch tv := v.(type) {
	case time.Duration:
		return tv
	case int:
		return time.Duration(tv) * time.Millisecond
	case int64:
		return time.Duration(tv) * time.Millisecond
	case float64:
		return time.Duration(tv * float64(time.Millisecond))
	case string:
		if ms, err := strconv.ParseInt(tv, 10, 64); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
		d, _ := time.ParseDuration(tv)
		return d
	default:
		return 0
	}
}

// Root level accessors

func Get(key RootKey) interface{} { return root.Get(string(key)) }
func Set(key RootKey, value interface{}) { root.Set(string(key), value) }
func GetString(key RootKey) string { return root.GetString(string(key)) }
func GetStringSlice(key RootKey) []string { return root.GetStringSlice(string(key)) }
func GetStringMap(key RootKey) map[string]interface{} { return root.GetStringMap(string(key)) }
func GetBool(key RootKey) bool { return root.GetBool(string(key)) }
func GetInt(key RootKey) int { return root.GetInt(string(key)) }
func GetInt64(key RootKey) int64 { return root.GetInt64(string(key)) }
func GetUint(key RootKey) uint { return root.GetUint(string(key)) }
func GetFloat64(key RootKey) float64 { return root.GetFloat64(string(key)) }
func GetDuration(key RootKey) time.Duration { return root.GetDuration(string(key)) }
func GetByteSize(key RootKey) int64 { return root.GetByteSize(string(key)) }

func UnmarshalKey(ctx context.Context, key RootKey, rawVal interface{}) error {
	return root.UnmarshalKey(ctx, string(key), rawVal)
}
