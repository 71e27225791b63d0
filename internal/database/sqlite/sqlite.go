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

package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/database/sqlcommon"
	"github.com/kaleido-io/ticketanchor/pkg/database"

	// registers the pure Go "sqlite" driver
	_ "modernc.org/sqlite"
)

// No table locks. Batch appends rely on the in-process batch lock plus the
// database level write lock, so a SQLite database must have a single replica.
var dialect = &sqlcommon.Dialect{
	Name:        "sqlite",
	Placeholder: sq.Dollar,
}

// SQLite is the embedded single process database
type SQLite struct {
	sqlcommon.SQLCommon
}

func (s *SQLite) Name() string { return dialect.Name }

func (s *SQLite) Dialect() *sqlcommon.Dialect { return dialect }

func (s *SQLite) InitPrefix(prefix config.Prefix) {
	s.SQLCommon.InitPrefix(s, prefix)
}

func (s *SQLite) Init(ctx context.Context, prefix config.Prefix) error {
	return s.SQLCommon.Init(ctx, s, prefix, &database.Capabilities{})
}

func (s *SQLite) Open(url string) (*sql.DB, error) {
	return sql.Open("sqlite", url)
}

func (s *SQLite) MigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratesqlite.WithInstance(db, &migratesqlite.Config{})
}
