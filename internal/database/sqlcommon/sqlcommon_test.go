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
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
)

func TestInitSQLCommon(t *testing.T) {
	s, cleanup := newSQLiteTestProvider(t)
	defer cleanup()
	assert.NotNil(t, s.Capabilities())
	assert.False(t, s.Capabilities().ExclusiveLocks)
	assert.NotNil(t, s.DB())
}

func TestInitSQLCommonMissingOptions(t *testing.T) {
	s := &SQLCommon{}
	err := s.Init(context.Background(), nil, nil, nil)
	assert.Regexp(t, "TA10111", err)
}

func TestInitSQLCommonOpenFailed(t *testing.T) {
	mp := newMockProvider()
	mp.openError = fmt.Errorf("pop")
	err := mp.SQLCommon.Init(context.Background(), mp, mp.prefix, mp.capabilities)
	assert.Regexp(t, "TA10111.*pop", err)
}

func TestInitSQLCommonMigrationOpenFailed(t *testing.T) {
	mp := newMockProvider()
	mp.prefix.Set(SQLConfMigrationsAuto, true)
	mp.migrationDriverErr = fmt.Errorf("pop")
	err := mp.SQLCommon.Init(context.Background(), mp, mp.prefix, mp.capabilities)
	assert.Regexp(t, "TA10120.*pop", err)
}

func TestInitSQLCommonConnLimits(t *testing.T) {
	mp := newMockProvider()
	mp.fakeTableLocks = true
	mp.prefix.Set(SQLConfMaxConnections, 5)
	mp.prefix.Set(SQLConfMaxIdleConns, 2)
	mp.prefix.Set(SQLConfMaxConnLifetime, "1m")
	err := mp.SQLCommon.Init(context.Background(), mp, mp.prefix, mp.capabilities)
	assert.NoError(t, err)
	assert.Equal(t, 5, mp.DB().Stats().MaxOpenConnections)
	assert.True(t, mp.Capabilities().ExclusiveLocks)
}

func TestQueryTxBadSQL(t *testing.T) {
	s, _ := newMockProvider().init()
	_, err := s.queryTx(context.Background(), nil, sq.SelectBuilder{})
	assert.Regexp(t, "TA10112", err)
}

func TestQueryTxFail(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectQuery("SELECT.*").WillReturnError(fmt.Errorf("pop"))
	_, err := s.query(context.Background(), sq.Select("*").From("tickets"))
	assert.Regexp(t, "TA10114.*pop", err)
	assert.NoError(t, mdb.ExpectationsWereMet())
}

func TestCountQueryFail(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectQuery("SELECT COUNT.*").WillReturnError(fmt.Errorf("pop"))
	_, err := s.countQuery(context.Background(), nil, "tickets", sq.Eq{"a": 1})
	assert.Regexp(t, "TA10114", err)
}

func TestCountQueryBadResult(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectQuery("SELECT COUNT.*").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow("not a number"))
	_, err := s.countQuery(context.Background(), nil, "tickets", nil)
	assert.Regexp(t, "TA10119.*tickets", err)
}

func TestInsertTxReturningSequence(t *testing.T) {
	mp := newMockProvider()
	mp.fakePSQLInsert = true
	s, mdb := mp.init()
	mdb.ExpectBegin()
	mdb.ExpectQuery("INSERT.*RETURNING seq").WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(12345))
	ctx, tx, _, err := s.beginOrUseTx(context.Background())
	assert.NoError(t, err)
	sequence, err := s.insertTx(ctx, tx, sq.Insert("table").Columns("col1").Values("val1"), nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(12345), sequence)
}

func TestInsertTxReturningSequenceFail(t *testing.T) {
	mp := newMockProvider()
	mp.fakePSQLInsert = true
	s, mdb := mp.init()
	mdb.ExpectBegin()
	mdb.ExpectQuery("INSERT.*").WillReturnError(fmt.Errorf("pop"))
	ctx, tx, _, err := s.beginOrUseTx(context.Background())
	assert.NoError(t, err)
	_, err = s.insertTx(ctx, tx, sq.Insert("table").Columns("col1").Values("val1"), nil)
	assert.Regexp(t, "TA10115", err)
}

func TestInsertTxBadSQL(t *testing.T) {
	s, _ := newMockProvider().init()
	_, err := s.insertTx(context.Background(), nil, sq.InsertBuilder{}, nil)
	assert.Regexp(t, "TA10112", err)
}

func TestUpdateTxBadSQL(t *testing.T) {
	s, _ := newMockProvider().init()
	_, err := s.updateTx(context.Background(), nil, sq.UpdateBuilder{}, nil)
	assert.Regexp(t, "TA10112", err)
}

func TestUpdateTxFail(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectBegin()
	mdb.ExpectExec("UPDATE.*").WillReturnError(fmt.Errorf("pop"))
	ctx, tx, _, err := s.beginOrUseTx(context.Background())
	assert.NoError(t, err)
	_, err = s.updateTx(ctx, tx, sq.Update("table").Set("col1", "val1"), nil)
	assert.Regexp(t, "TA10116.*pop", err)
}

func TestBeginFail(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectBegin().WillReturnError(fmt.Errorf("pop"))
	err := s.RunAsGroup(context.Background(), func(ctx context.Context) error { return nil })
	assert.Regexp(t, "TA10113.*pop", err)
}

func TestRunAsGroup(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectBegin()
	mdb.ExpectExec("INSERT.*").WillReturnResult(sqlmock.NewResult(1, 1))
	mdb.ExpectExec("INSERT.*").WillReturnResult(sqlmock.NewResult(2, 1))
	mdb.ExpectQuery("SELECT.*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mdb.ExpectCommit()

	postCommitCalled := false
	err := s.RunAsGroup(context.Background(), func(ctx context.Context) (err error) {
		// First insert
		ctx, tx, ac, err := s.beginOrUseTx(ctx)
		assert.NoError(t, err)
		assert.True(t, ac)
		_, err = s.insertTx(ctx, tx, sq.Insert("test").Columns("test").Values("test"), func() {
			postCommitCalled = true
		})
		assert.NoError(t, err)
		err = s.commitTx(ctx, tx, ac)
		assert.NoError(t, err)

		// Nested group joins the outer transaction
		err = s.RunAsGroup(ctx, func(ctx context.Context) error {
			ctx, tx, ac, err := s.beginOrUseTx(ctx)
			assert.NoError(t, err)
			_, err = s.insertTx(ctx, tx, sq.Insert("test").Columns("test").Values("test"), nil)
			assert.NoError(t, err)
			return s.commitTx(ctx, tx, ac)
		})
		assert.NoError(t, err)

		// Query uses the transaction on the context
		rows, err := s.query(ctx, sq.Select("test").From("test"))
		assert.NoError(t, err)
		rows.Close()

		assert.False(t, postCommitCalled)
		return nil
	})

	assert.NoError(t, mdb.ExpectationsWereMet())
	assert.NoError(t, err)
	assert.True(t, postCommitCalled)
}

func TestRunAsGroupFunctionFails(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectBegin()
	mdb.ExpectRollback()
	err := s.RunAsGroup(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("pop")
	})
	assert.Regexp(t, "pop", err)
	assert.NoError(t, mdb.ExpectationsWereMet())
}

func TestRollbackFail(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectBegin()
	mdb.ExpectRollback().WillReturnError(fmt.Errorf("pop"))
	err := s.RunAsGroup(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("fn failed")
	})
	assert.Regexp(t, "fn failed", err)
	assert.NoError(t, mdb.ExpectationsWereMet())
}

func TestCommitFail(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectBegin()
	mdb.ExpectCommit().WillReturnError(fmt.Errorf("pop"))
	err := s.RunAsGroup(context.Background(), func(ctx context.Context) error { return nil })
	assert.Regexp(t, "TA10118.*pop", err)
}

func TestLockBatchesNoTX(t *testing.T) {
	s, _ := newMockProvider().init()
	err := s.LockBatches(context.Background())
	assert.Regexp(t, "TA10121", err)
}

func TestLockBatchesNoopWithoutTableLocks(t *testing.T) {
	s, mdb := newMockProvider().init()
	mdb.ExpectBegin()
	mdb.ExpectCommit()
	err := s.RunAsGroup(context.Background(), s.LockBatches)
	assert.NoError(t, err)
	assert.NoError(t, mdb.ExpectationsWereMet())
}

func TestLockBatchesExclusive(t *testing.T) {
	mp := newMockProvider()
	mp.fakeTableLocks = true
	s, mdb := mp.init()
	mdb.ExpectBegin()
	mdb.ExpectExec(`LOCK TABLE "batches" IN EXCLUSIVE MODE;`).WillReturnResult(sqlmock.NewResult(0, 0))
	mdb.ExpectCommit()
	err := s.RunAsGroup(context.Background(), s.LockBatches)
	assert.NoError(t, err)
	assert.NoError(t, mdb.ExpectationsWereMet())
}

func TestLockBatchesFail(t *testing.T) {
	mp := newMockProvider()
	mp.fakeTableLocks = true
	s, mdb := mp.init()
	mdb.ExpectBegin()
	mdb.ExpectExec("LOCK TABLE.*").WillReturnError(fmt.Errorf("pop"))
	mdb.ExpectRollback()
	err := s.RunAsGroup(context.Background(), s.LockBatches)
	assert.Regexp(t, "TA10121.*pop", err)
}

func TestInitSQLCommonNoPlaceholder(t *testing.T) {
	s := &SQLCommon{}
	err := s.Init(context.Background(), &noPlaceholderProvider{}, nil, nil)
	assert.Regexp(t, "TA10111", err)
}

type noPlaceholderProvider struct{ mockProvider }

func (np *noPlaceholderProvider) Dialect() *Dialect { return &Dialect{Name: "broken"} }

func TestCloseNil(t *testing.T) {
	s := &SQLCommon{}
	s.Close()
}
