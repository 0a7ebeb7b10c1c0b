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

import (
	"fmt"

	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MarshalMatrix serializes an N×D float32 matrix: a varint row count and
// column count followed by the values row-major as little-endian float32.
func MarshalMatrix(matrix [][]float32) ([]byte, error) {
	rows := len(matrix)
	cols := 0
	if rows > 0 {
		cols = len(matrix[0])
	}

	size := varint.Int.Size(rows) + varint.Int.Size(cols)
	for i, row := range matrix {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedMatrix, i, len(row), cols)
		}
		for _, v := range row {
			size += raw.Float32.Size(v)
		}
	}

	buf := make([]byte, size)
	n := varint.Int.Marshal(rows, buf)
	n += varint.Int.Marshal(cols, buf[n:])
	for _, row := range matrix {
		for _, v := range row {
			n += raw.Float32.Marshal(v, buf[n:])
		}
	}
	return buf, nil
}

// UnmarshalMatrix deserializes a matrix produced by MarshalMatrix.
func UnmarshalMatrix(data []byte) ([][]float32, error) {
	rows, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: row count: %w", ErrCorruptArtifact, err)
	}
	cols, c, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: column count: %w", ErrCorruptArtifact, err)
	}
	n += c
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape %dx%d", ErrCorruptArtifact, rows, cols)
	}
	if want := n + rows*cols*raw.Float32.Size(0); len(data) != want {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d matrix, want %d", ErrCorruptArtifact, len(data), rows, cols, want)
	}

	matrix := make([][]float32, rows)
	for i := range matrix {
		row := make([]float32, cols)
		for j := range row {
			v, c, err := raw.Float32.Unmarshal(data[n:])
			if err != nil {
				return nil, fmt.Errorf("%w: value (%d,%d): %w", ErrCorruptArtifact, i, j, err)
			}
			row[j] = v
			n += c
		}
		matrix[i] = row
	}
	return matrix, nil
}

// Marshal serializes the index: the dimension followed by the normalized
// row matrix. The serialized form is sufficient to reconstruct exact query
// behavior without re-deriving normalization.
func (f *Flat) Marshal() ([]byte, error) {
	body, err := MarshalMatrix(f.rows)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, varint.Int.Size(f.dim)+len(body))
	n := varint.Int.Marshal(f.dim, buf)
	copy(buf[n:], body)
	return buf, nil
}

// Unmarshal deserializes an index produced by Marshal. Rows are loaded
// as-is; they were normalized before serialization.
func Unmarshal(data []byte) (*Flat, error) {
	dim, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: dimension: %w", ErrCorruptArtifact, err)
	}

	rows, err := UnmarshalMatrix(data[n:])
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) != dim {
		return nil, fmt.Errorf("%w: dimension %d does not match matrix width %d", ErrCorruptArtifact, dim, len(rows[0]))
	}
	if len(rows) == 0 {
		return &Flat{}, nil
	}

	return &Flat{dim: dim, rows: rows}, nil
}
