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

package lfactory

import (
	"context"
	"sort"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/ledger/ethereum"
	"github.com/kaleido-io/ticketanchor/internal/ledger/localledger"
	"github.com/kaleido-io/ticketanchor/pkg/ledger"
)

var pluginsByName = map[string]func() ledger.Plugin{
	(*ethereum.Ethereum)(nil).Name():       func() ledger.Plugin { return &ethereum.Ethereum{} },
	(*localledger.LocalLedger)(nil).Name(): func() ledger.Plugin { return &localledger.LocalLedger{} },
}

func InitPrefix(prefix config.Prefix) {
	for name, plugin := range pluginsByName {
		plugin().InitPrefix(prefix.SubPrefix(name))
	}
}

func PluginNames() []string {
	names := make([]string, 0, len(pluginsByName))
	for name := range pluginsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func GetPlugin(ctx context.Context, pluginType string) (ledger.Plugin, error) {
	plugin, ok := pluginsByName[pluginType]
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgUnknownLedgerPlugin, pluginType)
	}
	return plugin(), nil
}
