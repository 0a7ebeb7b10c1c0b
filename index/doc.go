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


// Package index implements exact nearest-neighbor search over a dense
// embedding matrix.
//
// Flat normalizes every row to unit L2 norm at build time, so the inner
// product of a row with a unit-length query is exactly its cosine
// similarity. Queries score against every row; results are the top K by
// descending score, ties broken by ascending row position. Once built an
// index is immutable and safe to share across concurrent readers without
// synchronization.
package index
