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


// Package catalog loads product catalogs from raw byte sources.
//
// A Source exposes the raw bytes of a catalog document; Load parses those
// bytes into an ordered core.Catalog and derives one searchable text per
// product. Parsing is strict: malformed or schema-violating input fails
// with ErrParse and no partial catalog is ever returned.
package catalog
