package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRunConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadRunConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRunConfig(), cfg)
}

func TestLoadRunConfig_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	contents := "seed: 42\nmax_hyperperiods: 3\noutput_prefix: out\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.MaxHyperperiods)
	assert.Equal(t, "out", cfg.OutputPrefix)
	// fields absent from the YAML keep their DefaultRunConfig values
	assert.Equal(t, float64(1), cfg.LowerBoundRatio)
}

func TestLoadRunConfig_MissingFileReturnsError(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
