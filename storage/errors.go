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


package storage

import "errors"

var (
	// ErrArtifactMissing indicates a load was attempted for an artifact
	// that does not exist on disk.
	ErrArtifactMissing = errors.New("cache artifact missing")

	// ErrCacheDirRequired is returned when a store is created without a
	// cache directory.
	ErrCacheDirRequired = errors.New("cache directory required")
)
