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
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	migratedb "github.com/golang-migrate/migrate/v4/database"
)

const sequenceColumn = "seq"

// Dialect is what varies between the SQL databases behind SQLCommon
type Dialect struct {
	// Name is the database.type value, and the migrations sub-directory
	Name string
	// Placeholder rewrites the ? placeholders squirrel generates
	Placeholder sq.PlaceholderFormat
	// TableLockSQL is nil where the database has no exclusive table lock
	TableLockSQL func(table string) string
	// ReturningSequence uses INSERT ... RETURNING seq, rather than LastInsertId
	ReturningSequence bool
}

// Provider opens one kind of SQL database for SQLCommon
type Provider interface {
	Dialect() *Dialect
	Open(url string) (*sql.DB, error)
	MigrationDriver(db *sql.DB) (migratedb.Driver, error)
}
