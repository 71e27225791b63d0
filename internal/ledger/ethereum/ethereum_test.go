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
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jarcoal/httpmock"
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/restclient"
	"github.com/kaleido-io/ticketanchor/pkg/ledger"
	"github.com/kaleido-io/ticketanchor/pkg/tktypes"
	"github.com/stretchr/testify/assert"
)

var utConfPrefix = config.NewPluginConfig("eth_unit_tests")
var utEthconnectConf = utConfPrefix.SubPrefix(EthconnectConfigKey)
var utRPCConf = utConfPrefix.SubPrefix(RPCConfigKey)

const (
	testConnectURL = "http://localhost:12345"
	testRPCURL     = "http://localhost:8545"
)

func resetConf(e *Ethereum) {
	config.Reset()
	e.InitPrefix(utConfPrefix)
}

func newTestEthereum(t *testing.T) (*Ethereum, func()) {
	e := &Ethereum{}
	resetConf(e)
	utEthconnectConf.Set(restclient.HTTPConfigURL, testConnectURL)
	utEthconnectConf.Set(EthconnectConfigInstancePath, "instances/0x123")
	utEthconnectConf.Set(EthconnectConfigFrom, "0xabcd")
	utRPCConf.Set(restclient.HTTPConfigURL, testRPCURL)
	err := e.Init(context.Background(), utConfPrefix)
	assert.NoError(t, err)
	httpmock.ActivateNonDefault(e.client.GetClient())
	httpmock.ActivateNonDefault(e.rpc.GetClient())
	return e, httpmock.DeactivateAndReset
}

func rpcResponder(t *testing.T, results map[string]interface{}) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		var rpcReq rpcRequest
		b, _ := ioutil.ReadAll(req.Body)
		err := json.Unmarshal(b, &rpcReq)
		assert.NoError(t, err)
		assert.Equal(t, "2.0", rpcReq.JSONRPC)
		result, ok := results[rpcReq.Method]
		if !ok {
			return httpmock.NewJsonResponse(200, map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      rpcReq.ID,
				"error": map[string]interface{}{
					"code":    -32601,
					"message": fmt.Sprintf("method %s not found", rpcReq.Method),
				},
			})
		}
		return httpmock.NewJsonResponse(200, map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      rpcReq.ID,
			"result":  result,
		})
	}
}

func TestInitMissingURL(t *testing.T) {
	e := &Ethereum{}
	resetConf(e)
	err := e.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "TA10168", err)
}

func TestInitMissingRPCURL(t *testing.T) {
	e := &Ethereum{}
	resetConf(e)
	utEthconnectConf.Set(restclient.HTTPConfigURL, testConnectURL)
	err := e.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "TA10184", err)
}

func TestInitMissingInstance(t *testing.T) {
	e := &Ethereum{}
	resetConf(e)
	utEthconnectConf.Set(restclient.HTTPConfigURL, testConnectURL)
	utRPCConf.Set(restclient.HTTPConfigURL, testRPCURL)
	err := e.Init(context.Background(), utConfPrefix)
	assert.Regexp(t, "TA10169", err)
}

func TestInitDefaults(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()
	assert.Equal(t, "ethereum", e.Name())
	assert.Equal(t, "/instances/0x123", e.instancePath)
	assert.Equal(t, "anchorRoot", e.anchorMethod)
	assert.Equal(t, "isAnchored", e.queryMethod)
	assert.Equal(t, int64(60000), e.gasLimit)
}

func TestSubmitRootOK(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()
	root := tktypes.NewRandB32()

	httpmock.RegisterResponder("POST", "http://localhost:12345/instances/0x123/anchorRoot",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "0xabcd", req.URL.Query().Get("fly-from"))
			assert.Equal(t, "true", req.URL.Query().Get("fly-sync"))
			var body map[string]interface{}
			err := json.NewDecoder(req.Body).Decode(&body)
			assert.NoError(t, err)
			assert.Equal(t, root.HexString(), body["root"])
			return httpmock.NewJsonResponse(200, map[string]interface{}{
				"transactionHash": "0x7a1b",
				"blockNumber":     "12",
				"status":          "1",
			})
		})

	txHash, err := e.SubmitRoot(context.Background(), root)
	assert.NoError(t, err)
	assert.Equal(t, "0x7a1b", txHash)
}

func TestSubmitRootReverted(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/instances/0x123/anchorRoot",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"transactionHash": "0x7a1b",
			"status":          "0x0",
		}))

	_, err := e.SubmitRoot(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10149.*0x7a1b", err)
	assert.True(t, ledger.IsRejectionError(err))
}

func TestSubmitRootNoTxHash(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/instances/0x123/anchorRoot",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{}))

	_, err := e.SubmitRoot(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10149", err)
	assert.True(t, ledger.IsRejectionError(err))
}

func TestSubmitRootClientError(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/instances/0x123/anchorRoot",
		httpmock.NewJsonResponderOrPanic(400, map[string]interface{}{
			"error": "root already anchored",
		}))

	_, err := e.SubmitRoot(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10149.*root already anchored", err)
	assert.True(t, ledger.IsRejectionError(err))
}

func TestSubmitRootServerError(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/instances/0x123/anchorRoot",
		httpmock.NewStringResponder(503, "unavailable"))

	_, err := e.SubmitRoot(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10148", err)
	assert.True(t, ledger.IsNetworkError(err))
}

func TestSubmitRootConnectionError(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:12345/instances/0x123/anchorRoot",
		httpmock.NewErrorResponder(fmt.Errorf("pop")))

	_, err := e.SubmitRoot(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10148.*pop", err)
	assert.True(t, ledger.IsNetworkError(err))
}

func TestRootExists(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()
	root := tktypes.NewRandB32()

	httpmock.RegisterResponder("GET", "http://localhost:12345/instances/0x123/isAnchored",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, root.HexString(), req.URL.Query().Get("root"))
			return httpmock.NewJsonResponse(200, map[string]interface{}{
				"output": true,
			})
		})

	exists, err := e.RootExists(context.Background(), root)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestRootExistsStringOutput(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("GET", "http://localhost:12345/instances/0x123/isAnchored",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"output": "false",
		}))

	exists, err := e.RootExists(context.Background(), tktypes.NewRandB32())
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestRootExistsBadOutput(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("GET", "http://localhost:12345/instances/0x123/isAnchored",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"output": 42,
		}))

	_, err := e.RootExists(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10171", err)
}

func TestRootExistsFail(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("GET", "http://localhost:12345/instances/0x123/isAnchored",
		httpmock.NewStringResponder(500, "boom"))

	_, err := e.RootExists(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10148", err)
}

func TestFindRootTransaction(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()
	e.contract = "0x2a5c0b1ef0a4a3f4e2b8c1d9a7e6f5d4c3b2a190"
	root := tktypes.NewRandB32()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", func(req *http.Request) (*http.Response, error) {
		var rpcReq struct {
			ID     int64  `json:"id"`
			Method string `json:"method"`
			Params []struct {
				Address string   `json:"address"`
				Topics  []string `json:"topics"`
			} `json:"params"`
		}
		b, _ := ioutil.ReadAll(req.Body)
		err := json.Unmarshal(b, &rpcReq)
		assert.NoError(t, err)
		assert.Equal(t, "eth_getLogs", rpcReq.Method)
		assert.Equal(t, e.contract, rpcReq.Params[0].Address)
		assert.Equal(t, []string{e.eventTopic, root.HexString()}, rpcReq.Params[0].Topics)
		return httpmock.NewJsonResponse(200, map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      rpcReq.ID,
			"result": []map[string]interface{}{
				{"transactionHash": "0x7a1b", "blockNumber": "0x10"},
				{"transactionHash": "0x7a1c", "blockNumber": "0x11", "removed": true},
			},
		})
	})

	txHash, err := e.FindRootTransaction(context.Background(), root)
	assert.NoError(t, err)
	assert.Equal(t, "0x7a1b", txHash)
}

func TestFindRootTransactionNoLogs(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()
	e.contract = "0x2a5c0b1ef0a4a3f4e2b8c1d9a7e6f5d4c3b2a190"

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_getLogs": []interface{}{},
	}))

	txHash, err := e.FindRootTransaction(context.Background(), tktypes.NewRandB32())
	assert.NoError(t, err)
	assert.Empty(t, txHash)
}

func TestFindRootTransactionRPCError(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()
	e.contract = "0x2a5c0b1ef0a4a3f4e2b8c1d9a7e6f5d4c3b2a190"

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{}))

	_, err := e.FindRootTransaction(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10170.*eth_getLogs", err)
	assert.True(t, ledger.IsNetworkError(err))
}

func TestFindRootTransactionNoContract(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	_, err := e.FindRootTransaction(context.Background(), tktypes.NewRandB32())
	assert.Regexp(t, "TA10231", err)
	assert.True(t, ledger.IsRejectionError(err))
}

func TestInitContractFromInstancePath(t *testing.T) {
	e := &Ethereum{}
	resetConf(e)
	utEthconnectConf.Set(restclient.HTTPConfigURL, testConnectURL)
	utEthconnectConf.Set(EthconnectConfigInstancePath, "/instances/0x2a5c0b1ef0a4a3f4e2b8c1d9a7e6f5d4c3b2a190/")
	utRPCConf.Set(restclient.HTTPConfigURL, testRPCURL)
	err := e.Init(context.Background(), utConfPrefix)
	assert.NoError(t, err)
	assert.Equal(t, "0x2a5c0b1ef0a4a3f4e2b8c1d9a7e6f5d4c3b2a190", e.contract)
	assert.Equal(t, crypto.Keccak256Hash([]byte("RootAnchored(bytes32)")).Hex(), e.eventTopic)
}

func TestGetConfirmationCount(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"transactionHash": "0x7a1b",
			"blockNumber":     "0x10",
			"status":          "0x1",
		},
		"eth_blockNumber": "0x14",
	}))

	count, err := e.GetConfirmationCount(context.Background(), "0x7a1b")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestGetConfirmationCountNotMined(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_getTransactionReceipt": nil,
	}))

	count, err := e.GetConfirmationCount(context.Background(), "0x7a1b")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetConfirmationCountHeadBehind(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"blockNumber": "0x10",
			"status":      "0x1",
		},
		"eth_blockNumber": "0xf",
	}))

	count, err := e.GetConfirmationCount(context.Background(), "0x7a1b")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetConfirmationCountReverted(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"blockNumber": "0x10",
			"status":      "0x0",
		},
	}))

	_, err := e.GetConfirmationCount(context.Background(), "0x7a1b")
	assert.Regexp(t, "TA10149.*0x7a1b.*reverted", err)
	assert.True(t, ledger.IsRejectionError(err))
}

func TestGetConfirmationCountBadBlock(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"blockNumber": "sixteen",
			"status":      "0x1",
		},
	}))

	_, err := e.GetConfirmationCount(context.Background(), "0x7a1b")
	assert.Regexp(t, "TA10181", err)
}

func TestGetConfirmationCountBadHead(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"blockNumber": "0x10",
			"status":      "0x1",
		},
		"eth_blockNumber": "zz",
	}))

	_, err := e.GetConfirmationCount(context.Background(), "0x7a1b")
	assert.Regexp(t, "TA10171", err)
}

func TestGetConfirmationCountRPCError(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{}))

	_, err := e.GetConfirmationCount(context.Background(), "0x7a1b")
	assert.Regexp(t, "TA10148.*TA10170", err)
	assert.True(t, ledger.IsNetworkError(err))
}

func TestGetConfirmationCountBadResultType(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_getTransactionReceipt": "not an object",
	}))

	_, err := e.GetConfirmationCount(context.Background(), "0x7a1b")
	assert.Regexp(t, "TA10171", err)
}

func TestEstimateSubmissionCost(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_gasPrice": "0x3b9aca00",
	}))

	cost, err := e.EstimateSubmissionCost(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "60000000000000", cost.String())
}

func TestEstimateSubmissionCostBadPrice(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_gasPrice": "lots",
	}))

	_, err := e.EstimateSubmissionCost(context.Background())
	assert.Regexp(t, "TA10171", err)
}

func TestEstimateSubmissionCostFail(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", httpmock.NewStringResponder(502, "bad gateway"))

	_, err := e.EstimateSubmissionCost(context.Background())
	assert.Regexp(t, "TA10148", err)
}

func TestIsReachable(t *testing.T) {
	e, done := newTestEthereum(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/", rpcResponder(t, map[string]interface{}{
		"eth_blockNumber": "0x1",
	}))
	assert.True(t, e.IsReachable(context.Background()))

	httpmock.Reset()
	httpmock.RegisterResponder("POST", "http://localhost:8545/", httpmock.NewErrorResponder(fmt.Errorf("pop")))
	assert.False(t, e.IsReachable(context.Background()))
}
