// Package checksum verifies result reproducibility. The computation is
// all-integer, so two correct runs must agree bit for bit regardless of
// the process-grid shape; an order-sensitive rolling checksum over the
// flattened result catches any divergence cheaply.
package checksum

import "github.com/distributed-apsp/pkg/matrix"

// Fletcher16 computes the Fletcher-16 checksum of vals. It is sensitive
// to both values and their order.
func Fletcher16(vals []int) int {
	sum1, sum2 := 0, 0
	for _, v := range vals {
		sum1 = (sum1 + v) % 255
		sum2 = (sum2 + sum1) % 255
	}
	return sum2<<8 | sum1
}

// Matrix checksums m's entries in row-major order, the same flattening
// the kernel and the file format use.
func Matrix(m *matrix.Dense) int {
	return Fletcher16(m.Data)
}
