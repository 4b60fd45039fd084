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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/optakt/coin-dispatch/chain/sandbox"
	"github.com/optakt/coin-dispatch/failure"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/service/registry"
	"github.com/optakt/coin-dispatch/service/source"
)

const (
	success = 0
	failed  = 1
)

const commands = "health, balance, deposit, validate, send, issue, send-or-issue"

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagAccount       string
		flagAmount        string
		flagCaseSensitive bool
		flagCoins         string
		flagFrom          string
		flagLevel         string
		flagMemo          string
		flagSandbox       string
		flagSeed          string
		flagSymbol        string
		flagTo            string
	)

	pflag.StringVar(&flagAccount, "account", "", "account for balance queries (default operating account)")
	pflag.StringVar(&flagAmount, "amount", "", "amount to send or issue")
	pflag.BoolVar(&flagCaseSensitive, "case-sensitive", false, "compare memos case-sensitively for balance queries")
	pflag.StringVarP(&flagCoins, "coins", "c", "coins.yaml", "path to the YAML file with the coin configurations")
	pflag.StringVar(&flagFrom, "from", "", "source account for sends (default operating account)")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVar(&flagMemo, "memo", "", "memo to attach, or to total received amounts for")
	pflag.StringVarP(&flagSandbox, "sandbox", "s", "sandbox", "database directory for the sandbox ledger")
	pflag.StringVar(&flagSeed, "seed", "", "path to a YAML seed to apply to the sandbox ledger first")
	pflag.StringVarP(&flagSymbol, "symbol", "y", "", "symbol of the coin to use")
	pflag.StringVar(&flagTo, "to", "", "destination address for sends and issues, or address to validate")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command>\n\nCommands: %s\n\nFlags:\n", os.Args[0], commands)
		pflag.PrintDefaults()
	}

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failed
	}
	log = log.Level(level)

	if pflag.NArg() != 1 {
		pflag.Usage()
		return failed
	}
	command := pflag.Arg(0)

	// Initialize the sandbox ledger the handlers operate on.
	db, err := badger.Open(sandbox.DefaultOptions(flagSandbox))
	if err != nil {
		log.Error().Str("sandbox", flagSandbox).Err(err).Msg("could not open sandbox database")
		return failed
	}
	defer db.Close()

	ledger := sandbox.New(log, db, sandbox.WithNode("sandbox://"+flagSandbox))
	if flagSeed != "" {
		err = ledger.SeedFile(flagSeed)
		if err != nil {
			log.Warn().Err(err).Msg("sandbox seed partially applied")
		}
	}

	coins := registry.New(log, source.NewFile(flagCoins), sandbox.NewDialer(ledger))
	_, err = coins.Refresh()
	if err != nil {
		log.Warn().Err(err).Msg("could not load all coins")
	}

	handler, err := coins.Resolve(coin.Symbol(flagSymbol))
	if err != nil {
		log.Error().Err(err).Str("symbol", flagSymbol).Msg("could not resolve symbol")
		return failed
	}

	amount := func() (decimal.Decimal, error) {
		if flagAmount == "" {
			return decimal.Zero, fmt.Errorf("amount is required for %s", command)
		}
		return decimal.NewFromString(flagAmount)
	}

	var output interface{}
	switch command {

	case "health":
		output = handler.Health()

	case "balance":
		query := coin.BalanceQuery{
			Account:       flagAccount,
			Memo:          flagMemo,
			CaseSensitive: flagCaseSensitive,
		}
		output = map[string]string{
			"symbol":  handler.Symbol().String(),
			"balance": handler.Balance(query).String(),
		}

	case "deposit":
		output = handler.DepositTarget()

	case "validate":
		output = map[string]interface{}{
			"address": flagTo,
			"valid":   handler.AddressValid(flagTo),
		}

	case "send", "issue", "send-or-issue":
		value, err := amount()
		if err != nil {
			log.Error().Err(err).Str("amount", flagAmount).Msg("invalid amount")
			return failed
		}
		var result coin.Result
		switch command {
		case "send":
			result, err = handler.Send(value, flagTo, flagMemo, flagFrom)
		case "issue":
			result, err = handler.Issue(value, flagTo, flagMemo)
		default:
			result, err = handler.SendOrIssue(value, flagTo, flagMemo)
		}
		var partial failure.PartialIssue
		if errors.As(err, &partial) {
			log.Error().Err(err).Str("issue", partial.IssueTxID).Msg("issued supply remains on operating account")
			return failed
		}
		if err != nil {
			log.Error().Err(err).Msg("could not move funds")
			return failed
		}
		output = result

	default:
		log.Error().Str("command", command).Str("commands", commands).Msg("unknown command")
		return failed
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("could not encode output")
		return failed
	}
	fmt.Println(strings.TrimSpace(string(data)))

	return success
}
