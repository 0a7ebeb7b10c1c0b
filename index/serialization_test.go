package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixRoundTrip(t *testing.T) {
	matrix := testMatrix()

	data, err := MarshalMatrix(matrix)
	require.NoError(t, err)

	got, err := UnmarshalMatrix(data)
	require.NoError(t, err)
	assert.Equal(t, matrix, got)
}

func TestMatrixRoundTripEmpty(t *testing.T) {
	data, err := MarshalMatrix(nil)
	require.NoError(t, err)

	got, err := UnmarshalMatrix(data)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMarshalMatrixRagged(t *testing.T) {
	_, err := MarshalMatrix([][]float32{{1}, {1, 2}})
	require.ErrorIs(t, err, ErrRaggedMatrix)
}

func TestUnmarshalMatrixTruncated(t *testing.T) {
	data, err := MarshalMatrix(testMatrix())
	require.NoError(t, err)

	_, err = UnmarshalMatrix(data[:len(data)-3])
	require.ErrorIs(t, err, ErrCorruptArtifact)
}

func TestUnmarshalMatrixGarbage(t *testing.T) {
	_, err := UnmarshalMatrix([]byte{0xff})
	require.ErrorIs(t, err, ErrCorruptArtifact)
}

func TestIndexRoundTripPreservesRanking(t *testing.T) {
	idx, err := New(testMatrix())
	require.NoError(t, err)

	data, err := idx.Marshal()
	require.NoError(t, err)

	restored, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, idx.Len(), restored.Len())
	require.Equal(t, idx.Dim(), restored.Dim())

	query := []float32{2, 1, 0.5}
	want, err := idx.Search(query, 4)
	require.NoError(t, err)
	got, err := restored.Search(query, 4)
	require.NoError(t, err)

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Row, got[i].Row)
		assert.InDelta(t, float64(want[i].Score), float64(got[i].Score), 1e-5)
	}
}

func TestIndexRoundTripEmpty(t *testing.T) {
	idx, err := New(nil)
	require.NoError(t, err)

	data, err := idx.Marshal()
	require.NoError(t, err)

	restored, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, 0, restored.Len())
}

func TestUnmarshalIndexCorrupt(t *testing.T) {
	idx, err := New(testMatrix())
	require.NoError(t, err)
	data, err := idx.Marshal()
	require.NoError(t, err)

	_, err = Unmarshal(data[:len(data)/2])
	require.ErrorIs(t, err, ErrCorruptArtifact)
}
