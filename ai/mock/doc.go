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


// Package mock provides test doubles for the ai package.
//
// The mock embedder produces deterministic bag-of-tokens vectors: each
// token of the input is hashed into a dimension bucket and the resulting
// count vector is normalized to unit length. Identical texts always map to
// identical unit vectors, and texts sharing tokens have positive cosine
// similarity, which lets tests exercise realistic ranking behavior without
// an external embedding service.
package mock
