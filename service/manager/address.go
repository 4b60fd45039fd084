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

package manager

import (
	"errors"

	"github.com/optakt/coin-dispatch/failure"
)

// AddressValid returns whether the address exists on the network. It never
// fails: any error while checking results in the address being invalid.
func (m *Manager) AddressValid(address string) (valid bool) {

	log := m.log.With().Str("address", address).Logger()

	defer func() {
		r := recover()
		if r != nil {
			log.Error().Interface("panic", r).Msg("unhandled failure while validating address")
			valid = false
		}
	}()

	if !m.profile.ValidAddress(address) {
		log.Debug().Msg("address is not well-formed")
		return false
	}

	_, err := m.resolve.Account(address)
	var missing failure.AccountNotFound
	switch {
	case err == nil:
		return true
	case errors.As(err, &missing):
		log.Debug().Msg("address does not exist on chain")
		return false
	default:
		log.Warn().Err(err).Msg("could not check address, treating as invalid")
		return false
	}
}
