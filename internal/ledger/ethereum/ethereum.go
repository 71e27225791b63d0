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

package ethereum

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/i18n"
	"github.com/kaleido-io/ticketanchor/internal/log"
	"github.com/kaleido-io/ticketanchor/internal/restclient"
	"github.com/kaleido-io/ticketanchor/pkg/ledger"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
)

// Ethereum anchors roots through an ethconnect REST gateway in front of the anchoring contract,
// and tracks confirmations directly against a JSON-RPC node
type Ethereum struct {
	instancePath string
	from         string
	anchorMethod string
	queryMethod  string
	gasLimit     int64
	contract     string
	eventTopic   string
	client       *resty.Client
	rpc          *resty.Client
	rpcID        int64
}

type ethError struct {
	Error string `json:"error,omitempty"`
}

type ethconnectReceipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber,omitempty"`
	Status          string `json:"status,omitempty"`
}

type queryOutput struct {
	Output interface{} `json:"output"`
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcLog struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber"`
	Removed         bool   `json:"removed"`
}

type rpcReceipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber"`
	Status          string `json:"status"`
}

func (e *Ethereum) Name() string {
	return "ethereum"
}

func (e *Ethereum) Init(ctx context.Context, prefix config.Prefix) (err error) {

	ethconnectConf := prefix.SubPrefix(EthconnectConfigKey)
	rpcConf := prefix.SubPrefix(RPCConfigKey)

	if ethconnectConf.GetString(restclient.HTTPConfigURL) == "" {
		return i18n.NewError(ctx, i18n.MsgEthconnectMissingURL)
	}
	if rpcConf.GetString(restclient.HTTPConfigURL) == "" {
		return i18n.NewError(ctx, i18n.MsgEthRPCMissingURL)
	}

	e.instancePath = ethconnectConf.GetString(EthconnectConfigInstancePath)
	if e.instancePath == "" {
		return i18n.NewError(ctx, i18n.MsgEthconnectMissingInst)
	}
	if !strings.HasPrefix(e.instancePath, "/") {
		e.instancePath = "/" + e.instancePath
	}
	e.instancePath = strings.TrimSuffix(e.instancePath, "/")
	e.from = ethconnectConf.GetString(EthconnectConfigFrom)
	e.anchorMethod = ethconnectConf.GetString(EthconnectConfigAnchorMethod)
	e.queryMethod = ethconnectConf.GetString(EthconnectConfigQueryMethod)
	e.gasLimit = prefix.GetInt64(EthereumConfigGasLimit)
	e.contract = prefix.GetString(EthereumConfigContractAddress)
	if e.contract == "" {
		if last := e.instancePath[strings.LastIndex(e.instancePath, "/")+1:]; common.IsHexAddress(last) {
			e.contract = last
		}
	}
	e.eventTopic = crypto.Keccak256Hash([]byte(prefix.GetString(EthereumConfigAnchorEvent))).Hex()

	e.client = restclient.New(ctx, ethconnectConf)
	e.rpc = restclient.New(ctx, rpcConf)

	log.L(ctx).Infof("Ethereum ledger anchoring through %s%s", ethconnectConf.GetString(restclient.HTTPConfigURL), e.instancePath)
	return nil
}

// wrapError classifies a failed call. No response, or a server side status, leaves the
// outcome unknown and is retryable. A client side status is a definitive refusal.
func (e *Ethereum) wrapError(ctx context.Context, errRes *ethError, res *resty.Response, err error) error {
	if err != nil || res == nil {
		if err == nil {
			err = fmt.Errorf("no response")
		}
		return ledger.NewNetworkError(ctx, e.Name(), err)
	}
	detail := ""
	if errRes != nil && errRes.Error != "" {
		detail = errRes.Error
	}
	restErr := restclient.WrapRestErr(ctx, res, nil, i18n.MsgEthconnectRESTErr)
	if detail == "" {
		detail = restErr.Error()
	}
	if restclient.IsRetryable(res, nil) {
		return ledger.NewNetworkError(ctx, e.Name(), restErr)
	}
	return ledger.NewRejectionError(ctx, e.Name(), detail)
}

func isFailedStatus(status string) bool {
	switch strings.ToLower(status) {
	case "0", "0x0", "false":
		return true
	}
	return false
}

func (e *Ethereum) SubmitRoot(ctx context.Context, root *tktypes.Bytes32) (string, error) {
	var resErr ethError
	var receipt ethconnectReceipt
	res, err := e.client.R().
		SetContext(ctx).
		SetQueryParam("fly-from", e.from).
		SetQueryParam("fly-sync", "true").
		SetBody(map[string]interface{}{
			"root": root.HexString(),
		}).
		SetResult(&receipt).
		SetError(&resErr).
		Post(fmt.Sprintf("%s/%s", e.instancePath, e.anchorMethod))
	if err != nil || !res.IsSuccess() {
		return "", e.wrapError(ctx, &resErr, res, err)
	}
	if isFailedStatus(receipt.Status) {
		return "", ledger.NewRejectionError(ctx, e.Name(), i18n.Expand(ctx, i18n.MsgLedgerTxReverted, receipt.TransactionHash))
	}
	if receipt.TransactionHash == "" {
		return "", ledger.NewRejectionError(ctx, e.Name(), i18n.Expand(ctx, i18n.MsgEthconnectBadReceipt))
	}
	log.L(ctx).Infof("Submitted root %s in transaction %s", root.HexString(), receipt.TransactionHash)
	return receipt.TransactionHash, nil
}

func (e *Ethereum) RootExists(ctx context.Context, root *tktypes.Bytes32) (bool, error) {
	var resErr ethError
	var output queryOutput
	res, err := e.client.R().
		SetContext(ctx).
		SetQueryParam("root", root.HexString()).
		SetResult(&output).
		SetError(&resErr).
		Get(fmt.Sprintf("%s/%s", e.instancePath, e.queryMethod))
	if err != nil || !res.IsSuccess() {
		return false, e.wrapError(ctx, &resErr, res, err)
	}
	switch v := output.Output.(type) {
	case bool:
		return v, nil
	case string:
		return strings.EqualFold(v, "true"), nil
	default:
		return false, ledger.NewNetworkError(ctx, e.Name(), i18n.NewError(ctx, i18n.MsgEthRPCBadResult, e.queryMethod, res.String()))
	}
}

// FindRootTransaction searches the anchoring events of the contract for the root. A log
// removed by a reorg does not count.
func (e *Ethereum) FindRootTransaction(ctx context.Context, root *tktypes.Bytes32) (string, error) {
	if e.contract == "" {
		return "", ledger.NewRejectionError(ctx, e.Name(), i18n.Expand(ctx, i18n.MsgEthMissingContractAddr))
	}
	var logs []*rpcLog
	err := e.rpcCall(ctx, "eth_getLogs", &logs, map[string]interface{}{
		"address":   e.contract,
		"fromBlock": "earliest",
		"toBlock":   "latest",
		"topics":    []string{e.eventTopic, root.HexString()},
	})
	if err != nil {
		return "", err
	}
	for i := len(logs) - 1; i >= 0; i-- {
		if logs[i] != nil && !logs[i].Removed && logs[i].TransactionHash != "" {
			return logs[i].TransactionHash, nil
		}
	}
	return "", nil
}

func (e *Ethereum) rpcCall(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	req := &rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddInt64(&e.rpcID, 1),
		Method:  method,
		Params:  params,
	}
	var rpcRes rpcResponse
	res, err := e.rpc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&rpcRes).
		Post("/")
	if err != nil || !res.IsSuccess() {
		return e.wrapError(ctx, nil, res, err)
	}
	if rpcRes.Error != nil {
		return ledger.NewNetworkError(ctx, e.Name(), i18n.NewError(ctx, i18n.MsgEthRPCError, rpcRes.Error.Code, rpcRes.Error.Message))
	}
	if err := json.Unmarshal(rpcRes.Result, result); err != nil {
		return i18n.WrapError(ctx, err, i18n.MsgEthRPCBadResult, method, string(rpcRes.Result))
	}
	return nil
}

func (e *Ethereum) blockNumber(ctx context.Context) (uint64, error) {
	var headHex string
	if err := e.rpcCall(ctx, "eth_blockNumber", &headHex); err != nil {
		return 0, err
	}
	head, err := hexutil.DecodeUint64(headHex)
	if err != nil {
		return 0, i18n.WrapError(ctx, err, i18n.MsgEthRPCBadResult, "eth_blockNumber", headHex)
	}
	return head, nil
}

func (e *Ethereum) GetConfirmationCount(ctx context.Context, txHandle string) (int64, error) {
	var receipt *rpcReceipt
	if err := e.rpcCall(ctx, "eth_getTransactionReceipt", &receipt, txHandle); err != nil {
		return 0, err
	}
	if receipt == nil || receipt.BlockNumber == "" {
		// Not mined yet
		return 0, nil
	}
	if isFailedStatus(receipt.Status) {
		return 0, ledger.NewRejectionError(ctx, e.Name(), i18n.Expand(ctx, i18n.MsgLedgerTxReverted, txHandle))
	}
	txBlock, err := hexutil.DecodeUint64(receipt.BlockNumber)
	if err != nil {
		return 0, i18n.WrapError(ctx, err, i18n.MsgInvalidConfirmationCount, receipt.BlockNumber)
	}
	head, err := e.blockNumber(ctx)
	if err != nil {
		return 0, err
	}
	if head < txBlock {
		// Node behind the one that served the receipt
		return 0, nil
	}
	return int64(head-txBlock) + 1, nil
}

func (e *Ethereum) EstimateSubmissionCost(ctx context.Context) (*big.Int, error) {
	var gasPriceHex string
	if err := e.rpcCall(ctx, "eth_gasPrice", &gasPriceHex); err != nil {
		return nil, err
	}
	gasPrice, err := hexutil.DecodeBig(gasPriceHex)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgEthRPCBadResult, "eth_gasPrice", gasPriceHex)
	}
	return new(big.Int).Mul(gasPrice, big.NewInt(e.gasLimit)), nil
}

func (e *Ethereum) IsReachable(ctx context.Context) bool {
	_, err := e.blockNumber(ctx)
	if err != nil {
		log.L(ctx).Warnf("Ethereum node unreachable: %s", err)
		return false
	}
	return true
}
