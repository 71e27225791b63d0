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

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/database/sqlcommon"
	"github.com/kaleido-io/ticketanchor/pkg/database"

	// registers the "postgres" driver
	_ "github.com/lib/pq"
)

var dialect = &sqlcommon.Dialect{
	Name:        "postgres",
	Placeholder: sq.Dollar,
	// Serializes batch appends across replicas
	TableLockSQL: func(table string) string {
		return fmt.Sprintf(`LOCK TABLE "%s" IN EXCLUSIVE MODE;`, table)
	},
	ReturningSequence: true,
}

// Postgres is the shared database for multi-replica deployments
type Postgres struct {
	sqlcommon.SQLCommon
}

func (p *Postgres) Name() string { return dialect.Name }

func (p *Postgres) Dialect() *sqlcommon.Dialect { return dialect }

func (p *Postgres) InitPrefix(prefix config.Prefix) {
	p.SQLCommon.InitPrefix(p, prefix)
}

func (p *Postgres) Init(ctx context.Context, prefix config.Prefix) error {
	return p.SQLCommon.Init(ctx, p, prefix, &database.Capabilities{})
}

func (p *Postgres) Open(url string) (*sql.DB, error) {
	return sql.Open("postgres", url)
}

func (p *Postgres) MigrationDriver(db *sql.DB) (migratedb.Driver, error) {
	return migratepostgres.WithInstance(db, &migratepostgres.Config{})
}
