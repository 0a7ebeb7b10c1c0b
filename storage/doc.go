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


// Package storage persists embedding artifacts as a crash-safe unit.
//
// A Store roots three artifacts in a cache directory: the raw embedding
// matrix, the serialized vector index, and the catalog fingerprint as
// plain text. Persist writes them in that order with the fingerprint
// strictly last, so a process killed mid-write leaves either no
// fingerprint (the next start re-detects "invalid, rebuild") or a fully
// written, self-consistent triple. A fresh fingerprint can never point at
// partial artifacts.
//
// Cache validity is a pure function: Observe gathers the four relevant
// observations from disk and Classify maps them to Valid, Missing or
// Stale without touching the filesystem, so the decision is independently
// testable.
package storage
