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

package coin

import (
	"fmt"
	"regexp"
	"strings"
)

// Symbol is the uppercase ticker of a token on a specific network.
type Symbol string

var symbolPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.]{0,15}$`)

// ParseSymbol normalizes the given ticker to uppercase and checks its format.
func ParseSymbol(ticker string) (Symbol, error) {
	upper := strings.ToUpper(strings.TrimSpace(ticker))
	if !symbolPattern.MatchString(upper) {
		return "", fmt.Errorf("invalid symbol format (ticker: %s)", ticker)
	}
	return Symbol(upper), nil
}

// Valid returns whether the symbol has the canonical uppercase format.
func (s Symbol) Valid() bool {
	return symbolPattern.MatchString(string(s))
}

func (s Symbol) String() string {
	return string(s)
}
