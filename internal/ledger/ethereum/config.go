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
	"github.com/kaleido-io/ticketanchor/internal/config"
	"github.com/kaleido-io/ticketanchor/internal/restclient"
)

const (
	defaultAnchorMethod = "anchorRoot"
	defaultQueryMethod  = "isAnchored"
	defaultGasLimit     = 60000
	defaultAnchorEvent  = "RootAnchored(bytes32)"
)

const (
	// EthconnectConfigKey is a sub-key in the config to contain all the ethconnect specific config
	EthconnectConfigKey = "ethconnect"
	// RPCConfigKey is a sub-key for the JSON-RPC node used to track confirmations
	RPCConfigKey = "rpc"

	// EthconnectConfigInstancePath is the /contracts/... or /instances/... path of the anchoring contract
	EthconnectConfigInstancePath = "instance"
	// EthconnectConfigFrom is the signing address ethconnect submits from
	EthconnectConfigFrom = "from"
	// EthconnectConfigAnchorMethod is the contract method that records a root
	EthconnectConfigAnchorMethod = "anchorMethod"
	// EthconnectConfigQueryMethod is the contract method that reports whether a root is recorded
	EthconnectConfigQueryMethod = "queryMethod"
	// EthereumConfigGasLimit is the gas budget used for cost estimation
	EthereumConfigGasLimit = "gasLimit"
	// EthereumConfigContractAddress is the address of the anchoring contract, used to search its events. Defaults to the instance path when that ends in an address
	EthereumConfigContractAddress = "contractAddress"
	// EthereumConfigAnchorEvent is the signature of the event the contract emits for each recorded root, with the root as its first indexed argument
	EthereumConfigAnchorEvent = "anchorEvent"
)

func (e *Ethereum) InitPrefix(prefix config.Prefix) {
	ethconnectConf := prefix.SubPrefix(EthconnectConfigKey)
	restclient.InitPrefix(ethconnectConf)
	ethconnectConf.AddKnownKey(EthconnectConfigInstancePath)
	ethconnectConf.AddKnownKey(EthconnectConfigFrom)
	ethconnectConf.AddKnownKey(EthconnectConfigAnchorMethod, defaultAnchorMethod)
	ethconnectConf.AddKnownKey(EthconnectConfigQueryMethod, defaultQueryMethod)

	rpcConf := prefix.SubPrefix(RPCConfigKey)
	restclient.InitPrefix(rpcConf)

	prefix.AddKnownKey(EthereumConfigGasLimit, defaultGasLimit)
	prefix.AddKnownKey(EthereumConfigContractAddress)
	prefix.AddKnownKey(EthereumConfigAnchorEvent, defaultAnchorEvent)
}
