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
	"path"

	"github.com/kaleido-io/ticketanchor/internal/config"
)

// Keys under database.<type>
const (
	SQLConfDatasourceURL       = "url"
	SQLConfMaxConnections      = "maxConns"
	SQLConfMaxIdleConns        = "maxIdleConns"
	SQLConfMaxConnLifetime     = "maxConnLifetime"
	SQLConfMigrationsAuto      = "migrations.auto"
	SQLConfMigrationsDirectory = "migrations.directory"
)

// InitPrefix registers the keys shared by every SQL provider. Migrations default
// to ./db/migrations/<name> relative to the working directory.
func (s *SQLCommon) InitPrefix(provider Provider, prefix config.Prefix) {
	prefix.AddKnownKey(SQLConfDatasourceURL)
	prefix.AddKnownKey(SQLConfMaxConnections)
	prefix.AddKnownKey(SQLConfMaxIdleConns)
	prefix.AddKnownKey(SQLConfMaxConnLifetime)
	prefix.AddKnownKey(SQLConfMigrationsAuto, false)
	prefix.AddKnownKey(SQLConfMigrationsDirectory, "./"+path.Join("db", "migrations", provider.Dialect().Name))
}
