package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/distributed-apsp/pkg/checksum"
	"github.com/distributed-apsp/pkg/graphio"
)

func newChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <matrix-file>",
		Short: "Print the Fletcher-16 checksum of a matrix file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := graphio.ReadMatrix(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Check: %X\n", checksum.Matrix(m))
			return nil
		},
	}
}
