// Package graphio reads and writes distance matrices as plain text: one
// matrix row per line, entries as space-separated decimal integers, in
// the external convention. Rows and columns are written in the same
// row-major order the in-memory representation uses.
package graphio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/distributed-apsp/pkg/matrix"
)

// WriteMatrix writes m to filePath, creating parent directories as
// needed. Line i of the file is row i of the matrix.
func WriteMatrix(filePath string, m *matrix.Dense) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := 0; i < m.N; i++ {
		for j := 0; j < m.N; j++ {
			if j > 0 {
				if err := w.WriteByte(' '); err != nil {
					return fmt.Errorf("failed to write row %d: %w", i+1, err)
				}
			}
			if _, err := w.WriteString(strconv.Itoa(m.At(i, j))); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
