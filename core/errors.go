// Copyright 2025 Pedalworks Labs
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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidProduct indicates a Product failed validation.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrEmptyProductID indicates the product ID field is empty.
	ErrEmptyProductID = errors.New("product id cannot be empty")

	// ErrEmptyProductName indicates the product Name field is empty.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrEmptyCategory indicates the product Category field is empty.
	ErrEmptyCategory = errors.New("product category cannot be empty")

	// ErrInvalidPrice indicates a non-positive product price.
	ErrInvalidPrice = errors.New("product price must be positive")

	// ErrInvalidPowertrain indicates an incomplete powertrain extension.
	ErrInvalidPowertrain = errors.New("powertrain fields must all be positive")

	// ErrInvalidCargo indicates an invalid cargo extension.
	ErrInvalidCargo = errors.New("cargo max load must be positive")
)
