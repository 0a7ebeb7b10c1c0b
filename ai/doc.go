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


// Package ai provides the text-embedding abstraction consumed by the
// search core.
//
// The core does not own embedding model loading or lifecycle; it only
// requires an Embedder that maps text to fixed-dimension float32 vectors,
// deterministic for a given model configuration. The same Embedder encodes
// catalog product texts at build time and user queries at search time, so
// the vector space stays symmetric between the two.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible embedding
//     APIs (Ollama, LocalAI, vLLM, OpenAI itself)
//   - ai/mock: deterministic test double with behavior injection
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to enforce abstraction; mock constructors return concrete
// types so tests can inject behavior and assert call counts.
//
// An embedder that cannot be constructed or fails its first encode reports
// ErrEncoderUnavailable; the engine treats that as fatal, since query-time
// encoding depends on the same capability.
package ai
