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
	"database/sql"
	"os"
	"path"
	"testing"

	sq "github.com/Masterminds/squirrel"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/stretchr/testify/assert"

	// Import the pure Go SQLite driver
	_ "modernc.org/sqlite"
)

// sqliteTestProvider is a real on-disk database with the migrations applied
type sqliteTestProvider struct {
	SQLCommon

	prefix config.Prefix
	t      *testing.T
}

func newSQLiteTestProvider(t *testing.T) (*sqliteTestProvider, func()) {
	config.Reset()
	tp := &sqliteTestProvider{
		t:      t,
		prefix: config.NewPluginConfig("unittest.db"),
	}
	tp.SQLCommon.InitPrefix(tp, tp.prefix)
	dir, err := os.MkdirTemp("", "ticketanchor")
	assert.NoError(t, err)
	tp.prefix.Set(SQLConfDatasourceURL, path.Join(dir, "test.db"))
	tp.prefix.Set(SQLConfMigrationsAuto, true)
	tp.prefix.Set(SQLConfMigrationsDirectory, "../../../db/migrations/sqlite")
	tp.prefix.Set(SQLConfMaxConnections, 1)

	err = tp.Init(context.Background(), tp, tp.prefix, &database.Capabilities{})
	assert.NoError(tp.t, err)

	return tp, func() {
		tp.Close()
		_ = os.RemoveAll(dir)
	}
}

func (tp *sqliteTestProvider) Dialect() *Dialect {
	return &Dialect{Name: "sqlite", Placeholder: sq.Dollar}
}

func (tp *sqliteTestProvider) Open(url string) (*sql.DB, error) {
	return sql.Open("sqlite", url)
}

func (tp *sqliteTestProvider) MigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratesqlite.WithInstance(db, &migratesqlite.Config{})
}
