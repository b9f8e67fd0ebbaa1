package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	// Explicit path that does not exist is an error.
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eda.yaml")

	want := &Global{
		HighCardinalityThreshold: 42,
		ZeroThreshold:            0.3,
		OutDir:                   "out",
		MaxHistColumns:           3,
		TopKCategories:           5,
		MinMissingShare:          0.2,
		LogLevel:                 "debug",
	}
	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, got.HighCardinalityThreshold)
	assert.InDelta(t, 0.3, got.ZeroThreshold, 1e-9)
	assert.Equal(t, "out", got.OutDir)
	assert.Equal(t, "debug", got.LogLevel)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eda.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zero_threshold: 0.7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, cfg.ZeroThreshold, 1e-9)
	assert.Equal(t, 100, cfg.HighCardinalityThreshold)
	assert.Equal(t, "reports", cfg.OutDir)
}
