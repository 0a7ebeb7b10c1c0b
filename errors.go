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


package velosearch

import "errors"

var (
	// ErrNotReady is returned by Search when the engine has not finished
	// initializing. Callers retry or reject the request; the engine does
	// not escalate it.
	ErrNotReady = errors.New("search engine not ready")

	// ErrAlreadyInitialized is returned by Initialize after the engine
	// has reached Ready; a changed catalog is only observed by a restart.
	ErrAlreadyInitialized = errors.New("search engine already initialized")

	// ErrStoreRequired is returned when a cache store is not provided.
	ErrStoreRequired = errors.New("cache store required")

	// ErrProviderRequired is returned when an embedding provider is not provided.
	ErrProviderRequired = errors.New("embedding provider required")
)
