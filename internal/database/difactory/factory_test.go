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

package difactory

import (
	"context"
	"testing"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGetPlugin(t *testing.T) {
	for _, name := range PluginNames() {
		plugin, err := GetPlugin(context.Background(), name)
		assert.NoError(t, err)
		assert.Equal(t, name, plugin.Name())
	}
	assert.Equal(t, []string{"postgres", "sqlite"}, PluginNames())
}

func TestGetPluginUnknown(t *testing.T) {
	_, err := GetPlugin(context.Background(), "mysql")
	assert.Regexp(t, "TA10108.*mysql", err)
}

func TestInitPrefixRegistersEveryProvider(t *testing.T) {
	config.Reset()
	prefix := config.NewPluginConfig("database")
	InitPrefix(prefix)
	for _, name := range PluginNames() {
		assert.Equal(t, "./db/migrations/"+name, prefix.SubPrefix(name).GetString("migrations.directory"))
		assert.False(t, prefix.SubPrefix(name).GetBool("migrations.auto"))
	}
}
