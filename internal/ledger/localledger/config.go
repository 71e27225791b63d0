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

import "github.com/kaleido-io/ticketanchor/internal/config"

const (
	// LocalLedgerConfURL is the ql datasource, memory:// for a throwaway chain or file:// to persist it
	LocalLedgerConfURL = "url"
	// LocalLedgerConfBlockInterval is how often an empty block is mined, so confirmations keep growing
	LocalLedgerConfBlockInterval = "blockInterval"
	// LocalLedgerConfSubmissionCost is the fixed cost reported for each submission
	LocalLedgerConfSubmissionCost = "submissionCost"
)

const (
	defaultURL            = "memory://localledger"
	defaultBlockInterval  = "1s"
	defaultSubmissionCost = 21000
)

func (l *LocalLedger) InitPrefix(prefix config.Prefix) {
	prefix.AddKnownKey(LocalLedgerConfURL, defaultURL)
	prefix.AddKnownKey(LocalLedgerConfBlockInterval, defaultBlockInterval)
	prefix.AddKnownKey(LocalLedgerConfSubmissionCost, defaultSubmissionCost)
}
