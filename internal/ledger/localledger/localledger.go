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

package localledger

import (
	"context"
	"database/sql"
	"math/big"
	"sync"
	"time"

	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/pkg/ledger"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"

	// Import the QL embedded database driver
	_ "modernc.org/ql/driver"
)

// LocalLedger is an in-process ledger on an embedded ql database. Each submission is mined
// into its own block, and a background ticker mines empty blocks so that confirmations
// accumulate the way they do on a real chain.
type LocalLedger struct {
	ctx    context.Context
	cancel context.CancelFunc
	db     *sql.DB
	cost   *big.Int

	mux    sync.Mutex
	height int64
	closed bool
	done   chan struct{}
}

func (l *LocalLedger) Name() string {
	return "localledger"
}

func (l *LocalLedger) Init(ctx context.Context, prefix config.Prefix) (err error) {
	l.ctx, l.cancel = context.WithCancel(ctx)
	l.cost = big.NewInt(prefix.GetInt64(LocalLedgerConfSubmissionCost))
	l.done = make(chan struct{})

	l.db, err = sql.Open("ql", prefix.GetString(LocalLedgerConfURL))
	var tx *sql.Tx
	if err == nil {
		tx, err = l.db.Begin()
	}
	if err == nil {
		defer func() { _ = tx.Rollback() }()
		_, err = tx.Exec("CREATE TABLE IF NOT EXISTS anchored ( root string, txhash string, block int64 );")
	}
	if err == nil {
		_, err = tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS anchored_root ON anchored(root);")
	}
	if err == nil {
		_, err = tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS anchored_txhash ON anchored(txhash);")
	}
	if err == nil {
		_, err = tx.Exec("CREATE TABLE IF NOT EXISTS chainhead ( height int64 );")
	}
	if err == nil {
		err = tx.Commit()
	}
	if err == nil {
		err = l.loadHead()
	}
	if err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgLocalLedgerInitFailed)
	}

	go l.blockLoop(prefix.GetDuration(LocalLedgerConfBlockInterval))
	return nil
}

func (l *LocalLedger) loadHead() error {
	err := l.db.QueryRow("SELECT height FROM chainhead;").Scan(&l.height)
	if err != sql.ErrNoRows {
		return err
	}
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err = tx.Exec("INSERT INTO chainhead (height) VALUES (0);"); err != nil {
		return err
	}
	l.height = 0
	return tx.Commit()
}

func (l *LocalLedger) blockLoop(interval time.Duration) {
	defer close(l.done)
	if interval <= 0 {
		<-l.ctx.Done()
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-l.ctx.Done():
			log.L(l.ctx).Debugf("Local ledger block loop exiting")
			return
		case <-ticker.C:
			if err := l.mine(nil, ""); err != nil {
				log.L(l.ctx).Errorf("Failed to mine block: %s", err)
			}
		}
	}
}

// mine advances the head by one block, optionally recording a root in that block
func (l *LocalLedger) mine(root *tktypes.Bytes32, txHash string) error {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.closed {
		return i18n.NewError(l.ctx, i18n.MsgLedgerUnreachable, l.Name())
	}

	next := l.height + 1
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if root != nil {
		if _, err = tx.Exec("INSERT INTO anchored (root, txhash, block) VALUES ($1, $2, $3);", root.String(), txHash, next); err != nil {
			return err
		}
	}
	if _, err = tx.Exec("UPDATE chainhead SET height = $1;", next); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	l.height = next
	return nil
}

func (l *LocalLedger) SubmitRoot(ctx context.Context, root *tktypes.Bytes32) (string, error) {
	exists, err := l.RootExists(ctx, root)
	if err != nil {
		return "", err
	}
	if exists {
		// The anchoring contract refuses to record a root twice
		return "", ledger.NewRejectionError(ctx, l.Name(), "root already anchored")
	}
	txHash := tktypes.NewRandB32().HexString()
	if err := l.mine(root, txHash); err != nil {
		if ledger.IsNetworkError(err) {
			return "", err
		}
		return "", ledger.NewNetworkError(ctx, l.Name(), err)
	}
	log.L(ctx).Infof("Local ledger anchored root %s in block %d tx=%s", root, l.Height(), txHash)
	return txHash, nil
}

func (l *LocalLedger) GetConfirmationCount(ctx context.Context, txHandle string) (int64, error) {
	var block int64
	err := l.db.QueryRowContext(ctx, "SELECT block FROM anchored WHERE txhash == $1;", txHandle).Scan(&block)
	switch {
	case err == sql.ErrNoRows:
		return 0, ledger.NewRejectionError(ctx, l.Name(), i18n.Expand(ctx, i18n.MsgLedgerTxNotFound, txHandle))
	case err != nil:
		return 0, ledger.NewNetworkError(ctx, l.Name(), err)
	}
	return l.Height() - block + 1, nil
}

func (l *LocalLedger) RootExists(ctx context.Context, root *tktypes.Bytes32) (bool, error) {
	var count int64
	err := l.db.QueryRowContext(ctx, "SELECT count(*) FROM anchored WHERE root == $1;", root.String()).Scan(&count)
	if err != nil {
		return false, ledger.NewNetworkError(ctx, l.Name(), err)
	}
	return count > 0, nil
}

func (l *LocalLedger) FindRootTransaction(ctx context.Context, root *tktypes.Bytes32) (string, error) {
	var txHash string
	err := l.db.QueryRowContext(ctx, "SELECT txhash FROM anchored WHERE root == $1;", root.String()).Scan(&txHash)
	switch {
	case err == sql.ErrNoRows:
		return "", nil
	case err != nil:
		return "", ledger.NewNetworkError(ctx, l.Name(), err)
	}
	return txHash, nil
}

func (l *LocalLedger) EstimateSubmissionCost(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(l.cost), nil
}

func (l *LocalLedger) IsReachable(ctx context.Context) bool {
	l.mux.Lock()
	defer l.mux.Unlock()
	return !l.closed && l.db.PingContext(ctx) == nil
}

// Height is the number of the latest mined block
func (l *LocalLedger) Height() int64 {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.height
}

func (l *LocalLedger) Close() {
	l.mux.Lock()
	if l.closed {
		l.mux.Unlock()
		return
	}
	l.closed = true
	l.mux.Unlock()
	l.cancel()
	<-l.done
	_ = l.db.Close()
}
