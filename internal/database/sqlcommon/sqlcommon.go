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

	"github.com/golang-migrate/migrate/v4"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/database"

	// file:// migration source
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// SQLCommon implements the persistence interface over any Provider. The
// providers embed it, supplying the Dialect and the driver.
type SQLCommon struct {
	db           *sql.DB
	dialect      *Dialect
	capabilities *database.Capabilities
}

func (s *SQLCommon) Init(ctx context.Context, provider Provider, prefix config.Prefix, capabilities *database.Capabilities) (err error) {
	if provider == nil || provider.Dialect() == nil || provider.Dialect().Placeholder == nil {
		log.L(ctx).Errorf("Invalid SQL provider %T", provider)
		return i18n.NewError(ctx, i18n.MsgDBInitFailed)
	}
	s.dialect = provider.Dialect()
	s.capabilities = capabilities
	s.capabilities.ExclusiveLocks = s.dialect.TableLockSQL != nil

	if s.db, err = provider.Open(prefix.GetString(SQLConfDatasourceURL)); err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgDBInitFailed)
	}
	s.configurePool(prefix)
	log.L(ctx).Infof("Opened %s database", s.dialect.Name)

	if prefix.GetBool(SQLConfMigrationsAuto) {
		return s.migrate(ctx, provider, prefix.GetString(SQLConfMigrationsDirectory))
	}
	return nil
}

func (s *SQLCommon) configurePool(prefix config.Prefix) {
	if n := prefix.GetInt(SQLConfMaxConnections); n > 0 {
		s.db.SetMaxOpenConns(n)
	}
	if n := prefix.GetInt(SQLConfMaxIdleConns); n > 0 {
		s.db.SetMaxIdleConns(n)
	}
	if d := prefix.GetDuration(SQLConfMaxConnLifetime); d > 0 {
		s.db.SetConnMaxLifetime(d)
	}
}

func (s *SQLCommon) migrate(ctx context.Context, provider Provider, dir string) error {
	driver, err := provider.MigrationDriver(s.db)
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgDBMigrationFailed)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, s.dialect.Name, driver)
	if err == nil {
		err = m.Up()
	}
	switch err {
	case nil:
		log.L(ctx).Infof("Applied migrations from %s", dir)
	case migrate.ErrNoChange:
		log.L(ctx).Debugf("Database schema is current")
	default:
		return i18n.WrapError(ctx, err, i18n.MsgDBMigrationFailed)
	}
	return nil
}

func (s *SQLCommon) Capabilities() *database.Capabilities { return s.capabilities }

func (s *SQLCommon) DB() *sql.DB { return s.db }

func (s *SQLCommon) Close() {
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		log.L(context.Background()).Warnf("Database close failed: %s", err)
	}
}
