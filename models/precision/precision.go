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

package precision

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/optakt/coin-dispatch/failure"
)

// MaxPrecision is the highest number of decimal places supported for a token.
const MaxPrecision = 18

// Check verifies that the precision is within the supported range.
func Check(precision int) error {
	if precision < 0 || precision > MaxPrecision {
		return failure.InvalidPrecision{
			Description: failure.NewDescription("precision must be between zero and the maximum",
				failure.WithInt("maximum", MaxPrecision),
			),
			Precision: precision,
		}
	}
	return nil
}

// Normalize truncates the amount to the given number of decimal places. It
// always rounds toward zero, so that a normalized amount never exceeds the raw
// amount.
func Normalize(amount decimal.Decimal, precision uint) (decimal.Decimal, error) {
	err := Check(int(precision))
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Truncate(int32(precision)), nil
}

// ToMinorUnits converts the amount to an integer number of minor units at the
// given precision. Any fraction smaller than a minor unit is truncated.
func ToMinorUnits(amount decimal.Decimal, precision uint) (*big.Int, error) {
	normalized, err := Normalize(amount, precision)
	if err != nil {
		return nil, err
	}
	return normalized.Shift(int32(precision)).BigInt(), nil
}

// FromMinorUnits converts an integer number of minor units at the given
// precision back into an amount. The conversion is exact.
func FromMinorUnits(units *big.Int, precision uint) (decimal.Decimal, error) {
	err := Check(int(precision))
	if err != nil {
		return decimal.Zero, err
	}
	if units == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(units, -int32(precision)), nil
}

// Smallest returns the smallest amount representable at the given precision.
func Smallest(precision uint) decimal.Decimal {
	return decimal.New(1, -int32(precision))
}

// Format renders the amount with thousands separators and exactly the given
// number of decimal places, truncating any extra digits.
func Format(amount decimal.Decimal, precision uint) string {

	text := amount.Truncate(int32(precision)).StringFixed(int32(precision))

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}

	whole, fraction := text, ""
	dot := strings.IndexByte(text, '.')
	if dot >= 0 {
		whole, fraction = text[:dot], text[dot:]
	}

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return sign + grouped.String() + fraction
}
