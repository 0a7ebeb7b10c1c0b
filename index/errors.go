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


package index

import "errors"

var (
	// ErrRaggedMatrix indicates the input rows do not share one dimension.
	ErrRaggedMatrix = errors.New("embedding matrix rows have inconsistent dimensions")

	// ErrDimensionMismatch indicates a query vector whose dimension does
	// not match the indexed matrix.
	ErrDimensionMismatch = errors.New("query dimension does not match index")

	// ErrCorruptArtifact indicates serialized index bytes that cannot be
	// decoded back into a consistent index.
	ErrCorruptArtifact = errors.New("corrupt index artifact")
)
