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
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const symbolTag = "symbol_format"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(configValidator, Config{})
	return v
}

func configValidator(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.Symbol != "" && !cfg.Symbol.Valid() {
		sl.ReportError(cfg.Symbol, "symbol", "Symbol", symbolTag, "")
	}
}

// Validate checks that the configuration is complete and well-formed.
func (c Config) Validate() error {

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("could not validate coin configuration: %w", err)
	}

	first := verrs[0]
	return fmt.Errorf("invalid coin configuration (symbol: %s, field: %s, check: %s)", c.Symbol, first.Field(), first.Tag())
}
