package graphio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distributed-apsp/pkg/matrix"
)

func TestWriteReadRoundTrip(t *testing.T) {
	m := matrix.FromData(3, []int{
		0, 1, 0,
		2, 0, 1,
		0, 3, 0,
	})

	path := filepath.Join(t.TempDir(), "out", "dist.txt")
	require.NoError(t, WriteMatrix(path, m), "writer must create parent directories")

	got, err := ReadMatrix(path)
	require.NoError(t, err)
	assert.True(t, got.Equal(m))
}

func TestWriteMatrixFormat(t *testing.T) {
	m := matrix.FromData(2, []int{0, 12, 3, 0})
	path := filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, WriteMatrix(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 12\n3 0\n", string(data), "row-major, space-separated, newline-terminated rows")
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadMatrixErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadMatrix(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ReadMatrix(writeFile(t, ""))
		assert.ErrorContains(t, err, "empty matrix")
	})

	t.Run("invalid integer", func(t *testing.T) {
		_, err := ReadMatrix(writeFile(t, "0 1\n2 x\n"))
		assert.ErrorContains(t, err, "line 2, column 2")
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := ReadMatrix(writeFile(t, "0 1\n2\n"))
		assert.ErrorContains(t, err, "expected 2 columns")
	})

	t.Run("too few rows", func(t *testing.T) {
		_, err := ReadMatrix(writeFile(t, "0 1 2\n3 0 4\n"))
		assert.ErrorContains(t, err, "expected 3 rows")
	})

	t.Run("too many rows", func(t *testing.T) {
		_, err := ReadMatrix(writeFile(t, "0 1\n2 0\n3 4\n"))
		assert.ErrorContains(t, err, "expected 2 rows")
	})
}

func TestReadMatrixSkipsBlankLines(t *testing.T) {
	got, err := ReadMatrix(writeFile(t, "0 1\n\n2 0\n\n"))
	require.NoError(t, err)
	assert.True(t, got.Equal(matrix.FromData(2, []int{0, 1, 2, 0})))
}
