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

package source_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/service/source"
	"github.com/optakt/coin-dispatch/testing/mocks"
)

const coinsFile = `
coins:
  - symbol: eos
    network: eos
    operating_account: dispatcher1
    settings:
      host: eos.example.com
      port: 8443
      ssl: true
      load_method: pvx
  - symbol: SCR
    network: eos
    operating_account: dispatcher1
    precision: 6
    settings:
      contract: scrtokens
  - symbol: bts
    network: bitshares
    operating_account: dispatch-bts
    endpoint: wss://bts.example.com:443
    enabled: false
`

func TestDecode(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		coins, err := source.Decode(strings.NewReader(coinsFile))

		require.NoError(t, err)
		require.Len(t, coins, 3)

		eos := coins[0]
		assert.Equal(t, coin.Symbol("EOS"), eos.Symbol)
		assert.Equal(t, "eos", eos.Network)
		assert.Equal(t, "dispatcher1", eos.OperatingAccount)
		assert.Equal(t, "eos.example.com", eos.Settings.String("host", ""))
		assert.Equal(t, uint(8443), eos.Settings.Uint("port", 0))
		assert.True(t, eos.Settings.Bool("ssl", false))
		assert.Nil(t, eos.Precision)
		assert.True(t, eos.Active())

		scr := coins[1]
		require.NotNil(t, scr.Precision)
		assert.Equal(t, uint(6), scr.Decimals())
		assert.Equal(t, "scrtokens", scr.Settings.String("contract", ""))

		bts := coins[2]
		assert.Equal(t, coin.Symbol("BTS"), bts.Symbol)
		assert.Equal(t, "wss://bts.example.com:443", bts.Endpoint)
		assert.False(t, bts.Active())
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		coins, err := source.Decode(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, coins)
	})

	t.Run("keeps malformed symbols", func(t *testing.T) {
		t.Parallel()

		coins, err := source.Decode(strings.NewReader("coins:\n  - symbol: not a symbol\n    network: eos\n"))

		require.NoError(t, err)
		require.Len(t, coins, 1)
		assert.Equal(t, coin.Symbol("not a symbol"), coins[0].Symbol)
		assert.Error(t, coins[0].Validate())
	})

	t.Run("handles unknown fields", func(t *testing.T) {
		t.Parallel()

		_, err := source.Decode(strings.NewReader("coins:\n  - symbol: EOS\n    netwrok: eos\n"))

		assert.Error(t, err)
	})

	t.Run("handles invalid document", func(t *testing.T) {
		t.Parallel()

		_, err := source.Decode(strings.NewReader("coins: {"))

		assert.Error(t, err)
	})
}

func TestFile_Coins(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "coins.yaml")
		err := os.WriteFile(path, []byte(coinsFile), 0o600)
		require.NoError(t, err)

		file := source.NewFile(path)
		coins, err := file.Coins()

		require.NoError(t, err)
		assert.Len(t, coins, 3)
	})

	t.Run("reads changes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "coins.yaml")
		err := os.WriteFile(path, []byte("coins: []\n"), 0o600)
		require.NoError(t, err)

		file := source.NewFile(path)
		coins, err := file.Coins()
		require.NoError(t, err)
		assert.Empty(t, coins)

		err = os.WriteFile(path, []byte(coinsFile), 0o600)
		require.NoError(t, err)
		coins, err = file.Coins()
		require.NoError(t, err)
		assert.Len(t, coins, 3)
	})

	t.Run("handles missing file", func(t *testing.T) {
		t.Parallel()

		file := source.NewFile(filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := file.Coins()

		assert.Error(t, err)
	})
}

func TestStatic_Coins(t *testing.T) {

	static := source.NewStatic(mocks.GenericConfig())

	coins, err := static.Coins()
	require.NoError(t, err)
	require.Len(t, coins, 1)
	coins[0].Settings["contract"] = "changed"

	again, err := static.Coins()
	require.NoError(t, err)
	assert.Equal(t, mocks.GenericContract, again[0].Settings["contract"])
}
