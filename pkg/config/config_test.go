package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
nodes: 200
edge_probability: 0.05
seed: 42
grid:
  npx: 2
  npy: 3
output: out/dist.txt
`))
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Nodes)
	assert.Equal(t, 0.05, cfg.EdgeProbability)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, Grid{NPX: 2, NPY: 3}, cfg.Grid)
	assert.Equal(t, 6, cfg.Procs, "procs defaults to the grid size")
	assert.Equal(t, "out/dist.txt", cfg.OutputPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "nodes: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing grid",
			cfg:     Config{Nodes: 10},
			wantErr: "grid shape is required",
		},
		{
			name:    "negative axis",
			cfg:     Config{Nodes: 10, Grid: Grid{NPX: -1, NPY: 2}},
			wantErr: "grid shape is required",
		},
		{
			name:    "procs mismatch",
			cfg:     Config{Nodes: 10, Grid: Grid{NPX: 2, NPY: 2}, Procs: 3},
			wantErr: "needs 4 processes, 3 configured",
		},
		{
			name:    "no nodes and no input",
			cfg:     Config{Grid: Grid{NPX: 1, NPY: 1}},
			wantErr: "nodes must be positive",
		},
		{
			name:    "bad probability",
			cfg:     Config{Nodes: 10, Grid: Grid{NPX: 1, NPY: 1}, EdgeProbability: 1.5},
			wantErr: "edge_probability",
		},
		{
			name: "input instead of nodes",
			cfg:  Config{Grid: Grid{NPX: 1, NPY: 1}, InputPath: "adj.txt"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("APSP_NODES", "50")
	t.Setenv("APSP_NPX", "2")
	t.Setenv("APSP_NPY", "2")
	t.Setenv("APSP_EDGE_PROBABILITY", "0.1")
	t.Setenv("APSP_OUTPUT", "dist.txt")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50, cfg.Nodes)
	assert.Equal(t, Grid{NPX: 2, NPY: 2}, cfg.Grid)
	assert.Equal(t, 4, cfg.Procs)
	assert.Equal(t, 0.1, cfg.EdgeProbability)
	assert.Equal(t, "dist.txt", cfg.OutputPath)
}

func TestFromEnvRequiresGrid(t *testing.T) {
	cfg := FromEnv()
	assert.Error(t, cfg.Validate(), "no default grid shape is ever assumed")
}
