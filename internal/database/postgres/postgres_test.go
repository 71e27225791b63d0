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
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/database/sqlcommon"
	"github.com/stretchr/testify/assert"
)

const unreachable = "postgres://localhost:1/none?sslmode=disable&connect_timeout=1"

func TestPostgresDialect(t *testing.T) {
	p := &Postgres{}
	d := p.Dialect()
	assert.Equal(t, "postgres", p.Name())
	assert.Equal(t, sq.Dollar, d.Placeholder)
	assert.True(t, d.ReturningSequence)
	assert.Equal(t, `LOCK TABLE "batches" IN EXCLUSIVE MODE;`, d.TableLockSQL("batches"))
}

func TestPostgresInitWithoutServer(t *testing.T) {
	config.Reset()
	p := &Postgres{}
	prefix := config.NewPluginConfig("unittest.postgres")
	p.InitPrefix(prefix)
	assert.Equal(t, "./db/migrations/postgres", prefix.GetString(sqlcommon.SQLConfMigrationsDirectory))

	// connections are lazy, so init succeeds until something needs one
	prefix.Set(sqlcommon.SQLConfDatasourceURL, unreachable)
	err := p.Init(context.Background(), prefix)
	assert.NoError(t, err)
	defer p.Close()
	assert.True(t, p.Capabilities().ExclusiveLocks)

	_, err = p.MigrationDriver(p.DB())
	assert.Error(t, err)
}

func TestPostgresMigrationFails(t *testing.T) {
	config.Reset()
	p := &Postgres{}
	prefix := config.NewPluginConfig("unittest.postgres")
	p.InitPrefix(prefix)
	prefix.Set(sqlcommon.SQLConfDatasourceURL, unreachable)
	prefix.Set(sqlcommon.SQLConfMigrationsAuto, true)
	err := p.Init(context.Background(), prefix)
	assert.Regexp(t, "TA10120", err)
}
