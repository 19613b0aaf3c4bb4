// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for YAML configuration loading

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// LoadConfigFile Tests
// =============================================================================

func TestLoadConfigFile_AllFields(t *testing.T) {
	path := writeConfig(t, `
port: 9000
data_file: /data/documents.csv
otel_endpoint: collector:4317
gin_mode: release
watch_source: true
`)

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/data/documents.csv", cfg.DataFile)
	assert.Equal(t, "collector:4317", cfg.OTelEndpoint)
	assert.Equal(t, "release", cfg.GinMode)
	assert.True(t, cfg.WatchSource)
}

func TestLoadConfigFile_PartialFileLeavesZeroValues(t *testing.T) {
	path := writeConfig(t, "port: 8080\n")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.DataFile)
	assert.False(t, cfg.WatchSource)
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat")
}

func TestLoadConfigFile_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "port: [not an int\n")

	_, err := LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadConfigFile_OversizedFile(t *testing.T) {
	big := make([]byte, MaxConfigFileSize+1)
	for i := range big {
		big[i] = '#'
	}
	path := writeConfig(t, string(big))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}
