package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/distributed-apsp/pkg/matrix"
)

func TestFletcher16KnownValues(t *testing.T) {
	assert.Equal(t, 0, Fletcher16(nil))
	assert.Equal(t, 0, Fletcher16([]int{0, 0, 0}))

	// sum1 runs 1,3; sum2 runs 1,4.
	assert.Equal(t, 4<<8|3, Fletcher16([]int{1, 2}))
}

func TestFletcher16OrderSensitive(t *testing.T) {
	assert.NotEqual(t, Fletcher16([]int{1, 2}), Fletcher16([]int{2, 1}))
}

func TestMatrixFlattensRowMajor(t *testing.T) {
	m := matrix.FromData(2, []int{0, 1, 2, 0})
	assert.Equal(t, Fletcher16([]int{0, 1, 2, 0}), Matrix(m))

	transposed := matrix.FromData(2, []int{0, 2, 1, 0})
	assert.NotEqual(t, Matrix(m), Matrix(transposed))
}
