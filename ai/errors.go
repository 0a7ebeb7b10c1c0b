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


package ai

import "errors"

var (
	// ErrEncoderUnavailable indicates the embedding capability could not
	// be constructed or stopped producing vectors. Without it neither
	// index building nor query encoding is possible.
	ErrEncoderUnavailable = errors.New("embedding encoder unavailable")

	// ErrEmptyEmbedding indicates the embedder returned no vector for a
	// non-empty input.
	ErrEmptyEmbedding = errors.New("embedder returned empty result")
)
