package graphio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/distributed-apsp/pkg/matrix"
)

// ReadMatrix parses a square matrix from the text format WriteMatrix
// produces. The dimension is taken from the first line; every line must
// have exactly that many entries and the file exactly that many lines.
func ReadMatrix(filename string) (*matrix.Dense, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var m *matrix.Dense
	lineNum := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lineNum++

		fields := strings.Fields(line)
		if m == nil {
			m = matrix.New(len(fields))
		}
		if lineNum > m.N {
			return nil, fmt.Errorf("line %d: expected %d rows", lineNum, m.N)
		}
		row, err := parseIntRecord(fields, lineNum)
		if err != nil {
			return nil, err
		}
		if err := validateRecordLength(row, m.N, lineNum); err != nil {
			return nil, err
		}
		copy(m.Data[(lineNum-1)*m.N:lineNum*m.N], row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("empty matrix file: %s", filename)
	}
	if lineNum != m.N {
		return nil, fmt.Errorf("expected %d rows, got %d", m.N, lineNum)
	}

	return m, nil
}

func parseIntRecord(record []string, lineNum int) ([]int, error) {
	result := make([]int, len(record))
	for i, field := range record {
		val, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("line %d, column %d: invalid integer: %w", lineNum, i+1, err)
		}
		result[i] = val
	}
	return result, nil
}

func validateRecordLength(record []int, expected, lineNum int) error {
	if len(record) != expected {
		return fmt.Errorf("line %d: expected %d columns, got %d", lineNum, expected, len(record))
	}
	return nil
}
