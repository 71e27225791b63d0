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
	"path/filepath"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/database/sqlcommon"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/stretchr/testify/assert"
)

func TestSQLiteMigratesAndServes(t *testing.T) {
	config.Reset()
	s := &SQLite{}
	prefix := config.NewPluginConfig("unittest.sqlite")
	s.InitPrefix(prefix)
	assert.Equal(t, "./db/migrations/sqlite", prefix.GetString(sqlcommon.SQLConfMigrationsDirectory))

	prefix.Set(sqlcommon.SQLConfDatasourceURL, filepath.Join(t.TempDir(), "ticketanchor.db"))
	prefix.Set(sqlcommon.SQLConfMigrationsAuto, true)
	prefix.Set(sqlcommon.SQLConfMigrationsDirectory, "../../../db/migrations/sqlite")
	prefix.Set(sqlcommon.SQLConfMaxConnections, 1)
	err := s.Init(context.Background(), prefix)
	assert.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "sqlite", s.Name())
	assert.Equal(t, sq.Dollar, s.Dialect().Placeholder)
	assert.False(t, s.Dialect().ReturningSequence)
	assert.False(t, s.Capabilities().ExclusiveLocks)

	ticket, err := s.GetTicketByID(context.Background(), tktypes.NewUUID())
	assert.NoError(t, err)
	assert.Nil(t, ticket)
}

func TestSQLiteBadMigrationsDir(t *testing.T) {
	config.Reset()
	s := &SQLite{}
	prefix := config.NewPluginConfig("unittest.sqlite")
	s.InitPrefix(prefix)
	prefix.Set(sqlcommon.SQLConfDatasourceURL, filepath.Join(t.TempDir(), "ticketanchor.db"))
	prefix.Set(sqlcommon.SQLConfMigrationsAuto, true)
	prefix.Set(sqlcommon.SQLConfMigrationsDirectory, filepath.Join(t.TempDir(), "missing"))
	err := s.Init(context.Background(), prefix)
	assert.Regexp(t, "TA10120", err)
	s.Close()
}
