// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package network

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/onflow/flow-go/model/flow"
)

// Names of the supported networks.
const (
	EOS         = "eos"
	Telos       = "telos"
	Bitshares   = "bitshares"
	Flow        = "flow"
	FlowTestnet = "flow-testnet"
	Sandbox     = "sandbox"
)

// History sources of the EOS family of networks.
const (
	HistoryActions = "actions"
	HistoryPrivex  = "pvx"
)

// Profiles holds the capability records of all supported networks, indexed by
// network name.
var Profiles = make(map[string]Profile)

var (
	eosName       = regexp.MustCompile(`^[a-z1-5.]{1,12}$`)
	bitsharesName = regexp.MustCompile(`^[a-z][a-z0-9.-]{1,62}$`)
	sandboxName   = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)
)

func init() {

	// EOS tokens live in contracts, with the system token contract as the
	// default. Memo-correlated receipts can be loaded from the node's action
	// history, or from a Privex history API.
	eos := Profile{
		Name:            EOS,
		NativeSymbol:    "EOS",
		Endpoint:        Endpoint{Scheme: "https", Host: "eos.greymass.com", Port: 443},
		Precision:       4,
		ContractKey:     "contract",
		DefaultContract: "eosio.token",
		Memo:            true,
		MemoHistory:     true,
		Issue:           true,
		HistorySources:  []string{HistoryActions, HistoryPrivex},
		AddressCheck:    eosName.MatchString,
	}
	Profiles[eos.Name] = eos

	// Telos is an EOS fork; it shares the whole capability set of EOS and only
	// differs in its chain parameters.
	telos := eos
	telos.Name = Telos
	telos.NativeSymbol = "TLOS"
	telos.Endpoint = Endpoint{Scheme: "https", Host: "telos.caleos.io", Port: 443}
	Profiles[telos.Name] = telos

	// Bitshares user-issued assets are managed by their issuer account through
	// the asset registry, which we do not drive, so issuing is not supported.
	// Transfers carry encrypted memos which can not be correlated afterwards.
	bitshares := Profile{
		Name:           Bitshares,
		NativeSymbol:   "BTS",
		Endpoint:       Endpoint{Scheme: "wss", Host: "eu.nodes.bitshares.ws", Port: 443},
		Precision:      5,
		Memo:           true,
		MemoHistory:    false,
		Issue:          false,
		HistorySources: nil,
		AddressCheck:   bitsharesName.MatchString,
	}
	Profiles[bitshares.Name] = bitshares

	// Flow fungible tokens have no memo field, and minting requires a minter
	// resource held by the token administrator.
	flowMainnet := Profile{
		Name:         Flow,
		NativeSymbol: "FLOW",
		Endpoint:     Endpoint{Host: "access.mainnet.nodes.onflow.org", Port: 9000},
		Precision:    8,
		Memo:         false,
		MemoHistory:  false,
		Issue:        false,
		AddressCheck: flowAddress(flow.Mainnet),
	}
	Profiles[flowMainnet.Name] = flowMainnet

	flowTestnet := flowMainnet
	flowTestnet.Name = FlowTestnet
	flowTestnet.Endpoint = Endpoint{Host: "access.devnet.nodes.onflow.org", Port: 9000}
	flowTestnet.AddressCheck = flowAddress(flow.Testnet)
	Profiles[flowTestnet.Name] = flowTestnet

	// The sandbox is a local ledger with every capability enabled. Tokens may
	// be hosted under a contract, and native assets use the empty one.
	sandbox := Profile{
		Name:         Sandbox,
		NativeSymbol: "SBX",
		Precision:    4,
		ContractKey:  "contract",
		Memo:         true,
		MemoHistory:  true,
		Issue:        true,
		AddressCheck: sandboxName.MatchString,
	}
	Profiles[sandbox.Name] = sandbox
}

func flowAddress(chainID flow.ChainID) func(string) bool {
	chain := chainID.Chain()
	return func(address string) bool {
		address = strings.TrimPrefix(address, "0x")
		if len(address) == 0 || len(address) > 2*flow.AddressLength {
			return false
		}
		_, err := hex.DecodeString(strings.Repeat("0", len(address)%2) + address)
		if err != nil {
			return false
		}
		return chain.IsValid(flow.HexToAddress(address))
	}
}
