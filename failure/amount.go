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

package failure

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidPrecision is the error for a precision outside of the supported range.
type InvalidPrecision struct {
	Description Description
	Precision   int
}

// Error implements the error interface.
func (i InvalidPrecision) Error() string {
	return fmt.Sprintf("invalid precision (precision: %d): %s", i.Precision, i.Description)
}

// ArithmeticUnderflow is the error for an amount that rounds down to zero at
// the precision of its token.
type ArithmeticUnderflow struct {
	Description Description
	Amount      decimal.Decimal
	Precision   uint
}

// Error implements the error interface.
func (a ArithmeticUnderflow) Error() string {
	return fmt.Sprintf("arithmetic underflow (amount: %s, precision: %d): %s", a.Amount, a.Precision, a.Description)
}

// InsufficientBalance is the error for a transfer exceeding the balance of its
// source account.
type InsufficientBalance struct {
	Description Description
	Account     string
	Amount      decimal.Decimal
}

// Error implements the error interface.
func (i InsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient balance (account: %s, amount: %s): %s", i.Account, i.Amount, i.Description)
}
