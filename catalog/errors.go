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


package catalog

import "errors"

var (
	// ErrParse indicates malformed or schema-violating catalog input.
	// It is fatal at startup; no partial catalog is accepted.
	ErrParse = errors.New("catalog parse failed")

	// ErrSourceRequired is returned when a catalog source is not provided.
	ErrSourceRequired = errors.New("catalog source required")

	// ErrNotFound indicates the catalog blob does not exist in the source.
	ErrNotFound = errors.New("catalog not found")
)
