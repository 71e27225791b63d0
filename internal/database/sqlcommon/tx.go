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

	sq "github.com/Masterminds/squirrel"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/database"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

type txContextKey struct{}

// txWrapper is the transaction carried on the context, with callbacks to run only once it commits
type txWrapper struct {
	sqlTX      *sql.Tx
	postCommit []func()
}

func getTXFromContext(ctx context.Context) *txWrapper {
	tx, _ := ctx.Value(txContextKey{}).(*txWrapper)
	return tx
}

// RunAsGroup runs fn in a single transaction, which nested calls join
func (s *SQLCommon) RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, tx, autoCommit, err := s.beginOrUseTx(ctx)
	if err != nil {
		return err
	}
	defer s.rollbackTx(ctx, tx, autoCommit)
	if err := fn(ctx); err != nil {
		return err
	}
	return s.commitTx(ctx, tx, autoCommit)
}

// beginOrUseTx joins the transaction on the context if there is one, in which case
// autoCommit is true and commit/rollback are left to the owner of that transaction
func (s *SQLCommon) beginOrUseTx(ctx context.Context) (context.Context, *txWrapper, bool, error) {
	if tx := getTXFromContext(ctx); tx != nil {
		return ctx, tx, true, nil
	}
	ctx = log.WithLogField(ctx, "dbtx", tktypes.ShortID())
	sqlTX, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ctx, nil, false, i18n.WrapError(ctx, err, i18n.MsgDBBeginFailed)
	}
	log.L(ctx).Debugf("SQL-> begin")
	tx := &txWrapper{sqlTX: sqlTX}
	return context.WithValue(ctx, txContextKey{}, tx), tx, false, nil
}

// rollbackTx is deferred by every writer, and is a no-op once the transaction has committed
func (s *SQLCommon) rollbackTx(ctx context.Context, tx *txWrapper, autoCommit bool) {
	if autoCommit {
		return
	}
	switch err := tx.sqlTX.Rollback(); err {
	case nil:
		log.L(ctx).Warnf("SQL! rolled back")
	case sql.ErrTxDone:
	default:
		log.L(ctx).Errorf("SQL rollback failed: %s", err)
	}
}

func (s *SQLCommon) commitTx(ctx context.Context, tx *txWrapper, autoCommit bool) error {
	if autoCommit {
		return nil
	}
	if err := tx.sqlTX.Commit(); err != nil {
		log.L(ctx).Errorf("SQL commit failed: %s", err)
		return i18n.WrapError(ctx, err, i18n.MsgDBCommitFailed)
	}
	log.L(ctx).Debugf("SQL<- commit")
	for _, fn := range tx.postCommit {
		fn()
	}
	return nil
}

func (s *SQLCommon) afterCommit(tx *txWrapper, fn func()) {
	if fn != nil {
		tx.postCommit = append(tx.postCommit, fn)
	}
}

// toSQL renders a squirrel statement in the placeholder style of the dialect
func (s *SQLCommon) toSQL(ctx context.Context, q sq.Sqlizer) (string, []interface{}, error) {
	sqlStr, args, err := q.ToSql()
	if err == nil {
		sqlStr, err = s.dialect.Placeholder.ReplacePlaceholders(sqlStr)
	}
	if err != nil {
		return "", nil, i18n.WrapError(ctx, err, i18n.MsgDBQueryBuildFailed)
	}
	log.L(ctx).Debugf("SQL-> %s", sqlStr)
	log.L(ctx).Tracef("SQL-> args: %+v", args)
	return sqlStr, args, nil
}

// queryTx runs on tx, or the transaction on the context, so reads see uncommitted writes in the group
func (s *SQLCommon) queryTx(ctx context.Context, tx *txWrapper, q sq.SelectBuilder) (*sql.Rows, error) {
	sqlStr, args, err := s.toSQL(ctx, q)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		tx = getTXFromContext(ctx)
	}
	var rows *sql.Rows
	if tx != nil {
		rows, err = tx.sqlTX.QueryContext(ctx, sqlStr, args...)
	} else {
		rows, err = s.db.QueryContext(ctx, sqlStr, args...)
	}
	if err != nil {
		log.L(ctx).Errorf("SQL query failed: %s sql=[ %s ]", err, sqlStr)
		return nil, i18n.WrapError(ctx, err, i18n.MsgDBQueryFailed)
	}
	return rows, nil
}

func (s *SQLCommon) query(ctx context.Context, q sq.SelectBuilder) (*sql.Rows, error) {
	return s.queryTx(ctx, nil, q)
}

func (s *SQLCommon) countQuery(ctx context.Context, tx *txWrapper, table string, where sq.Sqlizer) (int64, error) {
	q := sq.Select("COUNT(*)").From(table)
	if where != nil {
		q = q.Where(where)
	}
	rows, err := s.queryTx(ctx, tx, q)
	if err != nil {
		return -1, err
	}
	defer rows.Close()
	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return -1, i18n.WrapError(ctx, err, i18n.MsgDBReadErr, table)
		}
	}
	return count, nil
}

// queryRes adds the total count to a filtered query result, when the filter asked for it
func (s *SQLCommon) queryRes(ctx context.Context, tx *txWrapper, table string, where sq.Sqlizer, fi *database.FilterInfo) (*database.FilterResult, error) {
	res := &database.FilterResult{}
	if !fi.Count {
		return res, nil
	}
	count, err := s.countQuery(ctx, tx, table, where)
	if err != nil {
		return nil, err
	}
	res.TotalCount = &count
	return res, nil
}

// insertTx returns the sequence of the new row
func (s *SQLCommon) insertTx(ctx context.Context, tx *txWrapper, q sq.InsertBuilder, postCommit func()) (int64, error) {
	if s.dialect.ReturningSequence {
		q = q.Suffix("RETURNING " + sequenceColumn)
	}
	sqlStr, args, err := s.toSQL(ctx, q)
	if err != nil {
		return -1, err
	}
	var seq int64
	if s.dialect.ReturningSequence {
		err = tx.sqlTX.QueryRowContext(ctx, sqlStr, args...).Scan(&seq)
	} else {
		var res sql.Result
		if res, err = tx.sqlTX.ExecContext(ctx, sqlStr, args...); err == nil {
			seq, _ = res.LastInsertId()
		}
	}
	if err != nil {
		log.L(ctx).Errorf("SQL insert failed: %s sql=[ %s ]", err, sqlStr)
		return -1, i18n.WrapError(ctx, err, i18n.MsgDBInsertFailed)
	}
	s.afterCommit(tx, postCommit)
	return seq, nil
}

// updateTx returns the rows affected, which guarded updates check to detect a lost race
func (s *SQLCommon) updateTx(ctx context.Context, tx *txWrapper, q sq.UpdateBuilder, postCommit func()) (int64, error) {
	sqlStr, args, err := s.toSQL(ctx, q)
	if err != nil {
		return -1, err
	}
	res, err := tx.sqlTX.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.L(ctx).Errorf("SQL update failed: %s sql=[ %s ]", err, sqlStr)
		return -1, i18n.WrapError(ctx, err, i18n.MsgDBUpdateFailed)
	}
	affected, _ := res.RowsAffected()
	log.L(ctx).Debugf("SQL<- updated %d", affected)
	s.afterCommit(tx, postCommit)
	return affected, nil
}

func (s *SQLCommon) lockTableExclusiveTx(ctx context.Context, tx *txWrapper, table string) error {
	if s.dialect.TableLockSQL == nil {
		return nil
	}
	lockSQL := s.dialect.TableLockSQL(table)
	log.L(ctx).Debugf("SQL-> %s", lockSQL)
	if _, err := tx.sqlTX.ExecContext(ctx, lockSQL); err != nil {
		log.L(ctx).Errorf("SQL lock failed: %s", err)
		return i18n.WrapError(ctx, err, i18n.MsgDBLockFailed)
	}
	return nil
}
