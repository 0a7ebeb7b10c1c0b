package index

import (
	"fmt"
	"math"
	"sort"
)

// Flat is an exact cosine-similarity index over a dense float32 matrix.
// Row i of the matrix keeps the identity of catalog position i. All rows
// are stored unit-normalized; the struct is immutable after construction.
type Flat struct {
	dim  int
	rows [][]float32
}

// Hit is a single nearest-neighbor result. Row is the original catalog
// position of the matched entry; Score is its cosine similarity to the
// query, in [-1, 1].
type Hit struct {
	Row   int
	Score float32
}

// New builds a Flat index from an N×D raw embedding matrix. Every row is
// copied and normalized to unit L2 norm, so lookups can use plain inner
// products. An empty matrix yields an empty index.
func New(matrix [][]float32) (*Flat, error) {
	if len(matrix) == 0 {
		return &Flat{}, nil
	}

	dim := len(matrix[0])
	rows := make([][]float32, len(matrix))
	for i, row := range matrix {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedMatrix, i, len(row), dim)
		}
		rows[i] = normalize(row)
	}

	return &Flat{dim: dim, rows: rows}, nil
}

// Search returns the top k rows by cosine similarity to query, ties broken
// by ascending row position. The query is normalized with the same pipeline
// as the indexed rows. k <= 0 returns an empty result; k larger than the
// index returns every row exactly once.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if k <= 0 || len(f.rows) == 0 {
		return []Hit{}, nil
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(query), f.dim)
	}

	q := normalize(query)
	hits := make([]Hit, len(f.rows))
	for i, row := range f.rows {
		hits[i] = Hit{Row: i, Score: dot(q, row)}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Row < hits[b].Row
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed rows.
func (f *Flat) Len() int {
	return len(f.rows)
}

// Dim returns the vector dimension, 0 for an empty index.
func (f *Flat) Dim() int {
	return f.dim
}

// normalize returns a unit-length copy of v. A zero vector stays zero.
func normalize(v []float32) []float32 {
	var magnitude float64
	for _, val := range v {
		magnitude += float64(val) * float64(val)
	}
	magnitude = math.Sqrt(magnitude)

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
